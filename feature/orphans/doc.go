// Package orphans ties the sweep together.
//
// Service.Scan lists the bucket and loads the content corpus in parallel, scans
// the corpus for every object id, compares, and writes the report and manifest
// to the output directory. Service.Destroy reads that manifest back and hands it
// to the cleanup executor; it never lists the bucket.
//
// # HTTP Endpoints
//
//   - GET /orphans : The current manifest.
//   - GET /orphans/summary : Manifest metadata only.
//   - GET /orphans/report : The narrative report as text.
//   - GET /orphans/history : Recent scans, when the audit ledger is enabled.
//
// No endpoint deletes objects.
package orphans
