package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"content-sweeper/core/cleanup"
	"content-sweeper/core/corpus"
	"content-sweeper/core/manifest"
	"content-sweeper/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func sampleManifest(orphans int) *manifest.Manifest {
	result := reconcile.Result{TotalObjects: orphans + 1, TotalContentFiles: 3}
	for i := 0; i < orphans; i++ {
		id := fmt.Sprintf("file%03d.png", i)
		result.Orphaned = append(result.Orphaned, reconcile.Entry{ID: id, Key: "attachments/" + id, Size: 1500})
		result.OrphanedBytes += 1500
	}
	return manifest.New(result, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "run", "bkt")
}

func TestPrintScanSummary(t *testing.T) {
	t.Run("WithOrphans", func(t *testing.T) {
		out := new(bytes.Buffer)
		skipped := []*corpus.ReadError{{Path: "broken.md", Err: errors.New("permission denied")}}

		printScanSummary(out, sampleManifest(maxListed+2), skipped)

		text := out.String()
		assert.Contains(t, text, "COMPARISON REPORT")
		assert.Contains(t, text, "bkt")
		assert.Contains(t, text, "broken.md: permission denied")
		assert.Contains(t, text, fmt.Sprintf("ORPHANED FILES (%d)", maxListed+2))
		assert.Contains(t, text, "attachments/file000.png")
		assert.NotContains(t, text, fmt.Sprintf("file%03d.png", maxListed))
		assert.Contains(t, text, "... and 2 more")
	})

	t.Run("NoOrphans", func(t *testing.T) {
		out := new(bytes.Buffer)
		printScanSummary(out, sampleManifest(0), nil)

		assert.Contains(t, out.String(), "All S3 files are referenced in content.")
		assert.NotContains(t, out.String(), "ORPHANED FILES")
	})
}

func TestPrintDestroySummary(t *testing.T) {
	m := sampleManifest(2)
	report := &cleanup.Report{
		State:        cleanup.StateCompleted,
		Total:        2,
		DeletedCount: 1,
		FailedCount:  1,
		Outcomes: []cleanup.Outcome{
			{Entry: m.OrphanedFiles[0]},
			{Entry: m.OrphanedFiles[1], Err: errors.New("connection reset")},
		},
	}

	out := new(bytes.Buffer)
	printDestroySummary(out, report)

	text := out.String()
	assert.Contains(t, text, "CLEANUP SUMMARY")
	assert.Contains(t, text, "FAILED DELETIONS")
	assert.Contains(t, text, "attachments/file001.png")
	assert.Contains(t, text, "connection reset")
	assert.NotContains(t, text, "attachments/file000.png")
}
