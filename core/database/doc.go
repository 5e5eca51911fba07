// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. SQLite (including in-memory) is
// supported as an alternative driver for tests.
//
// # Connect
//
// The Connect function establishes a connection to the database with sane
// pool settings and verifies it with a ping. Duplicate-key errors are
// translated so callers can rely on gorm.ErrDuplicatedKey.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. The directory
// feature uses them at startup to verify that the employees table carries
// the columns its unique constraints depend on.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "employees")
package database
