// Package pg bootstraps the PostgreSQL layer behind the catalog
// datastore: a pooled pgx connection with retrying startup, goose schema
// migrations, a health probe, and error classification helpers
// (not-found, duplicate key, foreign key) used by the stores.
//
// Configuration is environment-driven via the struct tags on Config:
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil { ... }
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil { ... }
package pg
