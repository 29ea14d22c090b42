package cmd

import (
	"fmt"
	"io"
	"strconv"

	"content-sweeper/core/cleanup"
	"content-sweeper/core/corpus"
	"content-sweeper/core/manifest"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// maxListed bounds the orphan rows printed to the console; the report file has them all.
const maxListed = 50

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

// printScanSummary writes the comparison summary and the orphan list of m.
func printScanSummary(w io.Writer, m *manifest.Manifest, skipped []*corpus.ReadError) {
	s := m.Metadata.Summary

	fmt.Fprintln(w, "\nCOMPARISON REPORT")
	summary := newTable(w)
	summary.AppendBulk([][]string{
		{"Bucket", m.Metadata.Bucket},
		{"Content files scanned", strconv.Itoa(s.TotalContentFiles)},
		{"S3 files", strconv.Itoa(s.TotalS3Files)},
		{"References found in content", strconv.Itoa(s.TotalContentReferences)},
		{"S3 files referenced", strconv.Itoa(s.ReferencedInContent)},
		{"Orphaned S3 files", strconv.Itoa(s.OrphanedFiles)},
		{"Orphaned storage", humanize.Bytes(uint64(s.OrphanedBytes))},
	})
	summary.Render()

	if len(skipped) > 0 {
		fmt.Fprintf(w, "\nWARNING: %d content files could not be read and were skipped:\n", len(skipped))
		for _, e := range skipped {
			fmt.Fprintf(w, "   %s: %v\n", e.Path, e.Err)
		}
	}

	if len(m.OrphanedFiles) == 0 {
		fmt.Fprintln(w, "\nAll S3 files are referenced in content.")
		return
	}

	fmt.Fprintf(w, "\nORPHANED FILES (%d):\n", len(m.OrphanedFiles))
	list := newTable(w)
	list.SetHeader([]string{"#", "FILENAME", "S3 KEY", "SIZE"})
	for i, e := range m.OrphanedFiles {
		if i == maxListed {
			break
		}
		list.Append([]string{strconv.Itoa(e.ID), e.Filename, e.S3Key, humanize.Bytes(uint64(e.Size))})
	}
	list.Render()
	if len(m.OrphanedFiles) > maxListed {
		fmt.Fprintf(w, "   ... and %d more, see the report file\n", len(m.OrphanedFiles)-maxListed)
	}
}

// printDestroySummary writes the outcome of a destroy run.
func printDestroySummary(w io.Writer, report *cleanup.Report) {
	fmt.Fprintln(w, "\nCLEANUP SUMMARY")
	table := newTable(w)
	table.AppendBulk([][]string{
		{"Successfully deleted", strconv.Itoa(report.DeletedCount)},
		{"Errors", strconv.Itoa(report.FailedCount)},
		{"Total processed", strconv.Itoa(report.Total)},
	})
	table.Render()

	if report.FailedCount == 0 {
		return
	}

	fmt.Fprintln(w, "\nFAILED DELETIONS:")
	failed := newTable(w)
	failed.SetHeader([]string{"S3 KEY", "ERROR"})
	for _, o := range report.Outcomes {
		if !o.Deleted() {
			failed.Append([]string{o.Entry.S3Key, o.Err.Error()})
		}
	}
	failed.Render()
}
