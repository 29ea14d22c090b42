// Package integrity provides preflight checks for a sweep.
//
// It validates the environment a scan depends on rather than the scan itself.
//
// # Checks Provided
//
//   - Bucket: The bucket exists and its first listing page can be fetched.
//   - Content: The content root exists; reports how many files discovery matches.
//   - Output: The output directory can be created and written to.
//   - Ledger: When the audit database is enabled, its tables have every column the recorder writes.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/bucket : Runs the bucket check.
//   - GET /integrity/content : Runs the content check.
//   - GET /integrity/output : Runs the output check.
//   - GET /integrity/ledger : Runs the ledger schema check.
package integrity
