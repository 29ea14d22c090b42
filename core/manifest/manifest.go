package manifest

import (
	"errors"
	"time"

	"content-sweeper/core/reconcile"
)

const (
	// ReportFile is the narrative report written next to the manifest.
	ReportFile = "orphaned-files-report.txt"
	// ManifestFile is the machine-readable orphan manifest.
	ManifestFile = "orphaned-files-data.json"
	// StatusOrphaned is the only status a manifest entry may carry.
	StatusOrphaned = "orphaned"
)

var (
	// ErrManifestMissing is returned when no manifest exists in the output directory.
	ErrManifestMissing = errors.New("manifest not found")
	// ErrManifestCorrupt is returned when the manifest cannot be parsed or fails validation.
	ErrManifestCorrupt = errors.New("manifest is corrupt")
)

// Summary holds the counts of the scan that produced a manifest.
type Summary struct {
	TotalContentFiles      int   `json:"totalContentFiles" validate:"min=0"`
	TotalS3Files           int   `json:"totalS3Files" validate:"min=0"`
	TotalContentReferences int   `json:"totalContentReferences" validate:"min=0"`
	ReferencedInContent    int   `json:"referencedInContent" validate:"min=0"`
	OrphanedFiles          int   `json:"orphanedFiles" validate:"min=0"`
	OrphanedBytes          int64 `json:"orphanedBytes" validate:"min=0"`
}

// Metadata describes the scan run.
type Metadata struct {
	Generated time.Time `json:"generated"`
	RunID     string    `json:"runId,omitempty"`
	// Bucket is empty for manifests written before the bucket was recorded.
	Bucket  string  `json:"bucket,omitempty"`
	Summary Summary `json:"summary"`
}

// Entry is one object eligible for deletion.
type Entry struct {
	ID       int    `json:"id" validate:"min=1"`
	Filename string `json:"filename" validate:"required"`
	S3Key    string `json:"s3Key" validate:"required,endsnotwith=/"`
	Status   string `json:"status" validate:"eq=orphaned"`
	Size     int64  `json:"size,omitempty" validate:"min=0"`
}

// Manifest is the persisted list of orphans. Referenced objects are never included.
type Manifest struct {
	Metadata      Metadata `json:"metadata"`
	OrphanedFiles []Entry  `json:"orphanedFiles" validate:"dive"`
}

// New builds a manifest from a comparison result. Entries are numbered from 1 in
// the order of result.Orphaned.
func New(result reconcile.Result, generated time.Time, runID, bucket string) *Manifest {
	entries := make([]Entry, 0, len(result.Orphaned))
	for i, o := range result.Orphaned {
		entries = append(entries, Entry{
			ID:       i + 1,
			Filename: o.ID,
			S3Key:    o.Key,
			Status:   StatusOrphaned,
			Size:     o.Size,
		})
	}

	return &Manifest{
		Metadata: Metadata{
			Generated: generated.UTC(),
			RunID:     runID,
			Bucket:    bucket,
			Summary: Summary{
				TotalContentFiles:      result.TotalContentFiles,
				TotalS3Files:           result.TotalObjects,
				TotalContentReferences: result.TotalReferences,
				ReferencedInContent:    len(result.Referenced),
				OrphanedFiles:          len(result.Orphaned),
				OrphanedBytes:          result.OrphanedBytes,
			},
		},
		OrphanedFiles: entries,
	}
}

// Keys returns the object keys listed in the manifest, in manifest order.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.OrphanedFiles))
	for _, e := range m.OrphanedFiles {
		keys = append(keys, e.S3Key)
	}
	return keys
}
