package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Writer persists manifests and reports into an output directory.
type Writer struct {
	dir    string
	logger *zap.Logger
}

// NewWriter creates a Writer for dir. A nil logger disables logging.
func NewWriter(dir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, logger: logger}
}

// ReportPath returns the path of the narrative report.
func (w *Writer) ReportPath() string {
	return filepath.Join(w.dir, ReportFile)
}

// ManifestPath returns the path of the JSON manifest.
func (w *Writer) ManifestPath() string {
	return filepath.Join(w.dir, ManifestFile)
}

// Write replaces the report and the manifest. Each file is written to a temporary
// file and renamed into place, so readers never observe a partial manifest. The
// manifest is written last.
func (w *Writer) Write(m *Manifest) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeAtomic(w.dir, ReportFile, []byte(RenderReport(m))); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := writeAtomic(w.dir, ManifestFile, data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	w.logger.Info("Output files saved",
		zap.String("report", w.ReportPath()),
		zap.String("manifest", w.ManifestPath()),
		zap.Int("orphans", len(m.OrphanedFiles)),
	)
	return nil
}

func writeAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// RenderReport formats the human readable report for m.
func RenderReport(m *Manifest) string {
	s := m.Metadata.Summary
	var b strings.Builder

	b.WriteString("S3 ORPHANED FILES REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", m.Metadata.Generated.UTC().Format(time.RFC3339))
	if m.Metadata.Bucket != "" {
		fmt.Fprintf(&b, "Bucket: %s\n", m.Metadata.Bucket)
	}
	b.WriteString("\n")
	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "  Total content files scanned: %d\n", s.TotalContentFiles)
	fmt.Fprintf(&b, "  Total S3 files: %d\n", s.TotalS3Files)
	fmt.Fprintf(&b, "  Total S3 references found in content: %d\n", s.TotalContentReferences)
	fmt.Fprintf(&b, "  S3 files referenced in content: %d\n", s.ReferencedInContent)
	fmt.Fprintf(&b, "  S3 files that appear to be orphaned: %d\n", s.OrphanedFiles)
	fmt.Fprintf(&b, "  Orphaned storage: %s\n", humanize.Bytes(uint64(s.OrphanedBytes)))
	b.WriteString("\n")

	if len(m.OrphanedFiles) == 0 {
		b.WriteString("All S3 files are referenced in content! No orphaned files found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "ORPHANED FILES (%d):\n", len(m.OrphanedFiles))
	b.WriteString("These S3 files exist but are not referenced in any content files:\n\n")
	for _, e := range m.OrphanedFiles {
		fmt.Fprintf(&b, "%d. %s\n", e.ID, e.Filename)
	}
	b.WriteString("\n")
	b.WriteString("RECOMMENDATION:\n")
	b.WriteString("Review these files to ensure they are truly orphaned before deletion.\n")
	b.WriteString("You can use 'content-sweeper destroy' to delete these files after review.\n")

	return b.String()
}
