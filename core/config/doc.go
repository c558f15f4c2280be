// Package config provides configuration management for ordered-sync.
//
// Values come from environment variables, optionally loaded from a .env file
// with godotenv, and are decoded by Viper. Nested keys map to upper-case
// variables joined by underscores (database.host is DATABASE_HOST). Defaults
// come from the `default` struct tags of each section.
//
// # Sections
//
//   - Server: HTTP port, API key and run timeout
//   - Storage: S3/MinIO endpoint and credentials
//   - Log: level, format and output
//   - Database: mysql or sqlite connection
//   - Tables, Countries, Objects: settings of the three sync jobs
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
