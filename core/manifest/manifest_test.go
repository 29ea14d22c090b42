package manifest_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"content-sweeper/core/manifest"
	"content-sweeper/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generated = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func scenarioResult() reconcile.Result {
	return reconcile.Result{
		Referenced:        []reconcile.Entry{{ID: "a.png", Key: "attachments/a.png", Size: 10}},
		Orphaned:          []reconcile.Entry{{ID: "b.png", Key: "attachments/b.png", Size: 2048}},
		TotalObjects:      2,
		TotalContentFiles: 1,
		TotalReferences:   1,
		OrphanedBytes:     2048,
	}
}

func TestNew(t *testing.T) {
	m := manifest.New(scenarioResult(), generated, "run-1", "bkt")

	assert.Equal(t, []manifest.Entry{{
		ID:       1,
		Filename: "b.png",
		S3Key:    "attachments/b.png",
		Status:   manifest.StatusOrphaned,
		Size:     2048,
	}}, m.OrphanedFiles)
	assert.Equal(t, manifest.Summary{
		TotalContentFiles:      1,
		TotalS3Files:           2,
		TotalContentReferences: 1,
		ReferencedInContent:    1,
		OrphanedFiles:          1,
		OrphanedBytes:          2048,
	}, m.Metadata.Summary)
	assert.Equal(t, []string{"attachments/b.png"}, m.Keys())
}

func TestNew_KeepsListedKey(t *testing.T) {
	result := reconcile.Result{Orphaned: []reconcile.Entry{{ID: "c.pdf", Key: "uploads/2024/c.pdf"}}}

	m := manifest.New(result, generated, "", "")
	assert.Equal(t, "uploads/2024/c.pdf", m.OrphanedFiles[0].S3Key)
	assert.Equal(t, "c.pdf", m.OrphanedFiles[0].Filename)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	w := manifest.NewWriter(dir, nil)

	m := manifest.New(scenarioResult(), generated, "run-1", "bkt")
	require.NoError(t, w.Write(m))

	loaded, err := manifest.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	// The manifest never mentions referenced objects
	raw, err := os.ReadFile(w.ManifestPath())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "a.png")

	var shape map[string]any
	require.NoError(t, json.Unmarshal(raw, &shape))
	assert.Contains(t, shape, "metadata")
	assert.Contains(t, shape, "orphanedFiles")

	// No temporary files remain
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	w := manifest.NewWriter(dir, nil)

	require.NoError(t, w.Write(manifest.New(scenarioResult(), generated, "run-1", "bkt")))
	require.NoError(t, w.Write(manifest.New(reconcile.Result{TotalObjects: 1}, generated, "run-2", "bkt")))

	loaded, err := manifest.Read(dir)
	require.NoError(t, err)
	assert.Empty(t, loaded.OrphanedFiles)
	assert.NotNil(t, loaded.OrphanedFiles)
	assert.Equal(t, "run-2", loaded.Metadata.RunID)
}

func TestWrite_Idempotent(t *testing.T) {
	dir1, dir2 := t.TempDir(), t.TempDir()
	m := manifest.New(scenarioResult(), generated, "run-1", "bkt")

	require.NoError(t, manifest.NewWriter(dir1, nil).Write(m))
	require.NoError(t, manifest.NewWriter(dir2, nil).Write(m))

	for _, name := range []string{manifest.ManifestFile, manifest.ReportFile} {
		a, err := os.ReadFile(filepath.Join(dir1, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir2, name))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestRenderReport(t *testing.T) {
	t.Run("WithOrphans", func(t *testing.T) {
		report := manifest.RenderReport(manifest.New(scenarioResult(), generated, "run-1", "bkt"))

		assert.Contains(t, report, "S3 ORPHANED FILES REPORT\n")
		assert.Contains(t, report, "Generated: 2026-03-14T09:26:53Z\n")
		assert.Contains(t, report, "SUMMARY:\n")
		assert.Contains(t, report, "  Total content files scanned: 1\n")
		assert.Contains(t, report, "  Total S3 files: 2\n")
		assert.Contains(t, report, "  Total S3 references found in content: 1\n")
		assert.Contains(t, report, "  S3 files referenced in content: 1\n")
		assert.Contains(t, report, "  S3 files that appear to be orphaned: 1\n")
		assert.Contains(t, report, "  Orphaned storage: 2.0 kB\n")
		assert.Contains(t, report, "ORPHANED FILES (1):\n")
		assert.Contains(t, report, "1. b.png\n")
		assert.Contains(t, report, "RECOMMENDATION:\n")
		assert.NotContains(t, report, "a.png")
	})

	t.Run("NoOrphans", func(t *testing.T) {
		report := manifest.RenderReport(manifest.New(reconcile.Result{TotalObjects: 3}, generated, "", ""))

		assert.Contains(t, report, "No orphaned files found.")
		assert.NotContains(t, report, "ORPHANED FILES (")
		assert.NotContains(t, report, "RECOMMENDATION:")
	})
}

func TestRead_Errors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := manifest.Read(t.TempDir())
		assert.ErrorIs(t, err, manifest.ErrManifestMissing)
	})

	valid := `{
  "metadata": {"generated": "2024-01-01T00:00:00.000Z", "summary": {"totalContentFiles": 1, "totalS3Files": 2, "totalContentReferences": 1, "referencedInContent": 1, "orphanedFiles": %d}},
  "orphanedFiles": %s
}`

	tests := []struct {
		name    string
		content string
	}{
		{"NotJSON", "not json"},
		{"Truncated", `{"metadata": {"generated": "2024-01-01T00:00:00Z"`},
		{"NoEntries", `{"metadata": {"generated": "2024-01-01T00:00:00Z", "summary": {}}}`},
		{"NoGenerated", `{"metadata": {"summary": {}}, "orphanedFiles": []}`},
		{"EmptyKey", fmt.Sprintf(valid, 1, `[{"id": 1, "filename": "b.png", "s3Key": "", "status": "orphaned"}]`)},
		{"MarkerKey", fmt.Sprintf(valid, 1, `[{"id": 1, "filename": "b.png", "s3Key": "attachments/", "status": "orphaned"}]`)},
		{"WrongStatus", fmt.Sprintf(valid, 1, `[{"id": 1, "filename": "b.png", "s3Key": "attachments/b.png", "status": "referenced"}]`)},
		{"BadSequence", fmt.Sprintf(valid, 2, `[{"id": 1, "filename": "b.png", "s3Key": "attachments/b.png", "status": "orphaned"}, {"id": 3, "filename": "c.png", "s3Key": "attachments/c.png", "status": "orphaned"}]`)},
		{"SummaryMismatch", fmt.Sprintf(valid, 5, `[{"id": 1, "filename": "b.png", "s3Key": "attachments/b.png", "status": "orphaned"}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.ManifestFile), []byte(tt.content), 0o644))

			m, err := manifest.Read(dir)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, manifest.ErrManifestCorrupt)
		})
	}
}

func TestRead_LegacyManifest(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "metadata": {
    "generated": "2024-01-01T00:00:00.000Z",
    "summary": {"totalContentFiles": 1, "totalS3Files": 2, "totalContentReferences": 1, "referencedInContent": 1, "orphanedFiles": 1}
  },
  "orphanedFiles": [{"id": 1, "filename": "b.png", "s3Key": "attachments/b.png", "status": "orphaned"}]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.ManifestFile), []byte(content), 0o644))

	m, err := manifest.Read(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Metadata.Bucket)
	assert.Equal(t, []string{"attachments/b.png"}, m.Keys())
}
