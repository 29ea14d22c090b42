// Package audit keeps an optional ledger of scans and deletions.
//
// When the database is enabled every scan adds a ScanRun row and every destroy
// run adds one DeletionRecord per attempted key. The ledger is informational:
// callers log recorder errors and never let them change the outcome of a run.
package audit
