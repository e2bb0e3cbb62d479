// Package config loads typed configuration structs from environment
// variables, with optional .env support for local development.
//
// Each struct type is parsed once per process and cached, so separate
// components that load the same config type always agree on its values:
//
//	type PGConfig struct {
//		ConnURL string `env:"PG_CONN_URL,required"`
//	}
//
//	var cfg PGConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
package config
