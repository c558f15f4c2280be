// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to open either a MySQL server or a SQLite
// file (or in-memory database) from the application's configuration. Table
// sync jobs read and write through the returned *gorm.DB.
//
// # Connect
//
// Connect picks the dialector from Config.Driver. MySQL connections get
// connect, read and write timeouts in the DSN and a pooled *sql.DB. SQLite
// connections are limited to one open connection, which keeps ":memory:"
// databases visible to every query.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table on either dialect and
// RequireColumns turns that into a pre-flight check for sync jobs.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	if err := database.RequireColumns(db, "target", "id", "value"); err != nil {
//	    return err
//	}
package database
