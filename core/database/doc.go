// Package database opens the optional audit ledger database.
//
// It wraps GORM and supports two drivers: MySQL for a shared ledger and SQLite
// (pure Go, no cgo) for a local file next to the scan output.
//
// # Connect
//
// Connect builds the dialector for the configured driver, applies pool settings
// and pings the database before returning it.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table definition so that the
// integrity preflight can report a ledger whose schema drifted from the models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "scan_runs", []string{"run_id"})
package database
