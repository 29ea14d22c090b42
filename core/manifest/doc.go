// Package manifest persists scan results and loads them back for deletion.
//
// A scan writes two files into the output directory:
//
//   - orphaned-files-report.txt: a narrative report for human review.
//   - orphaned-files-data.json: the orphan manifest, the only input the destroy
//     phase accepts.
//
// Both files are replaced atomically on every scan. Read validates the manifest
// shape before returning it and reports ErrManifestMissing or ErrManifestCorrupt.
package manifest
