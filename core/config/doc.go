// Package config provides configuration management for bg3-modsettings.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: hook server address and API key
//   - Log: level, format and optional rotated log file
//   - Game: extraction tool, profile, scratch and app data locations
//   - Storage: S3/MinIO credentials and bucket for backups
//   - Database: optional synthesis history (sqlite or mysql)
//   - Backup: object prefix for profile backups
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Game.ToolPath)
package config
