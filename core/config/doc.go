// Package config provides configuration management for the travel admin service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port and API key
//   - Database: driver and connection details (mysql, postgres, sqlite)
//   - Storage: S3/MinIO credentials and bucket for archived reports
//   - Log: Logging level and format
//   - Reconcile: concurrency, per-operation timeout, baseline cache and archive settings
//   - Tracing: OTLP exporter settings
//
// Every leaf field declares its default in a `default` struct tag. Environment variables
// use the upper-cased dotted key with underscores, e.g. RECONCILE_MAX_CONCURRENCY.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
