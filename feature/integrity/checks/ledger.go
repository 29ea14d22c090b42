package checks

import (
	"fmt"
	"sort"

	"content-sweeper/core/audit"
	"content-sweeper/core/database"

	"gorm.io/gorm"
)

// LedgerReport strictly types the result of an audit ledger schema check.
type LedgerReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"`
}

// CheckLedger verifies that every ledger table has the columns the recorder writes.
func CheckLedger(db *gorm.DB) (*LedgerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &LedgerReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	tables := make([]string, 0, len(audit.Tables))
	for name := range audit.Tables {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	for _, table := range tables {
		missing, err := database.MissingColumns(db, table, audit.Tables[table])
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, Status: StatusOK}
		if len(missing) > 0 {
			tbl.MissingColumns = missing
			tbl.Status = StatusError
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
