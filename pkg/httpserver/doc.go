// Package httpserver runs an http.Server with graceful shutdown tied to
// context cancellation and termination signals, plus a probe handler
// for liveness and readiness checks.
//
//	srv := httpserver.New(cfg, log)
//	err := srv.Run(ctx, router)
package httpserver
