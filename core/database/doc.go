// Package database handles database connections for the synthesis history.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that configures either an
// embedded SQLite file or a MySQL server based on the application's configuration.
//
// # Connect
//
// Connect opens the configured dialect, tunes the connection pool and pings the server.
// SQLite uses a single connection so writers never contend for the file lock.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
