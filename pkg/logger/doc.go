// Package logger builds slog loggers whose handlers inject
// request-scoped attributes from the context.
//
// Packages that store identifiers in the context expose a
// LoggerExtractor; registering those extractors here makes every log
// line carry the identifiers automatically:
//
//	log := logger.New(
//		logger.WithService("catalog", "production"),
//		logger.WithContextExtractors(
//			brand.LoggerExtractor(),
//			access.LoggerExtractor(),
//			requestid.LoggerExtractor(),
//		),
//	)
package logger
