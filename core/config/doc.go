// Package config provides configuration management for the HR evaluation backend.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details (sqlite for tests)
//   - Log: Logging level and format
//   - Hris: upstream HR directory API (base URL, API key, request timeout)
//   - Directory: sync subsystem tuning (enable flag, interval, TTLs)
//   - Storage: S3/MinIO credentials for the sync snapshot archive
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
