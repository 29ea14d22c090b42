package cleanup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"content-sweeper/core/manifest"
)

// Token is the literal the operator must type to allow deletion.
const Token = "DELETE"

// PreviewLimit is the number of filenames shown before asking for confirmation.
const PreviewLimit = 5

// Confirmer decides whether the deletion of a manifest may proceed.
type Confirmer interface {
	Confirm(ctx context.Context, m *manifest.Manifest) (bool, error)
}

// PromptConfirmer shows a preview on Out and reads one line from In.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm returns true only when the line read equals Token. Only the line
// terminator is stripped; surrounding spaces make the answer a decline.
func (p *PromptConfirmer) Confirm(ctx context.Context, m *manifest.Manifest) (bool, error) {
	WritePreview(p.Out, m)
	fmt.Fprintf(p.Out, "\n⚠️  Type '%s' to confirm deletion: ", Token)

	reader := bufio.NewReader(p.In)
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	response = strings.TrimSuffix(response, "\n")
	response = strings.TrimSuffix(response, "\r")
	return response == Token, nil
}

// TokenConfirmer confirms when it holds Token. It backs non-interactive runs.
type TokenConfirmer string

// Confirm implements Confirmer.
func (t TokenConfirmer) Confirm(ctx context.Context, m *manifest.Manifest) (bool, error) {
	return string(t) == Token, nil
}

// WritePreview prints the scan summary and the first PreviewLimit filenames of m.
func WritePreview(w io.Writer, m *manifest.Manifest) {
	s := m.Metadata.Summary

	fmt.Fprintln(w, "Scan Summary:")
	fmt.Fprintf(w, "   Generated: %s\n", m.Metadata.Generated.UTC().Format(time.RFC3339))
	if m.Metadata.Bucket != "" {
		fmt.Fprintf(w, "   Bucket: %s\n", m.Metadata.Bucket)
	}
	fmt.Fprintf(w, "   Total content files: %d\n", s.TotalContentFiles)
	fmt.Fprintf(w, "   Total S3 files: %d\n", s.TotalS3Files)
	fmt.Fprintf(w, "   Orphaned files: %d\n", s.OrphanedFiles)

	fmt.Fprintf(w, "\nWARNING: About to delete %d orphaned S3 files!\n", len(m.OrphanedFiles))
	fmt.Fprintln(w, "   This action cannot be undone.")
	fmt.Fprintln(w, "\n   Orphaned files to be deleted:")
	for i, e := range m.OrphanedFiles {
		if i == PreviewLimit {
			break
		}
		fmt.Fprintf(w, "     - %s\n", e.Filename)
	}
	if len(m.OrphanedFiles) > PreviewLimit {
		fmt.Fprintf(w, "     ... and %d more files\n", len(m.OrphanedFiles)-PreviewLimit)
	}
}
