package checks

import (
	"context"

	"content-sweeper/core/corpus"
)

// ContentReport is the result of the content check.
type ContentReport struct {
	Root   string `json:"root"`
	Files  int    `json:"files"`
	Status string `json:"status"`
}

// CheckContent counts the content files discovery would load. An empty corpus
// is a warning: every object would be reported as orphaned.
func CheckContent(ctx context.Context, c *corpus.Corpus) (*ContentReport, error) {
	n, err := c.Count(ctx)
	if err != nil {
		return nil, err
	}

	report := &ContentReport{Root: c.Root(), Files: n, Status: StatusOK}
	if n == 0 {
		report.Status = StatusWarning
	}
	return report, nil
}
