// Package database handles database connections and schema inspection.
//
// It wraps GORM and selects the dialector from configuration: MySQL, PostgreSQL or
// SQLite. Connections translate driver errors (gorm.ErrDuplicatedKey) and can carry the
// OpenTelemetry gorm plugin.
//
// # Connect
//
// Connect opens the database, applies pool settings and pings it. SQLite connections are
// capped at one so that ":memory:" databases are shared by every goroutine.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live column list of a table. The link
// feature uses them to verify that every relation table exposes the columns it needs.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "hotel_amenities", "hotel_id", "amenity_id")
package database
