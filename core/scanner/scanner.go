package scanner

import (
	"context"
	"strings"

	"content-sweeper/core/corpus"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AttachmentsPath is the path segment between the base URL and an object id.
const AttachmentsPath = "/attachments/"

// Reference records the first content file that mentions an object id.
type Reference struct {
	ObjectID string
	URL      string
	Path     string
}

// ExpectedURL builds the exact string content must contain to reference id.
// The base URL is used verbatim; a trailing slash is not trimmed.
func ExpectedURL(baseURL, id string) string {
	return baseURL + AttachmentsPath + id
}

// Scanner searches content files for literal object URLs.
type Scanner struct {
	baseURL string
	workers int
	logger  *zap.Logger
}

// New creates a Scanner. A nil logger disables logging.
func New(baseURL string, workers int, logger *zap.Logger) *Scanner {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{baseURL: baseURL, workers: workers, logger: logger}
}

// Scan returns at most one Reference per id, in the order ids were given.
// Ids are searched concurrently; for a single id files are checked in order and
// the first file containing the exact, case-sensitive URL wins.
func (s *Scanner) Scan(ctx context.Context, files []corpus.File, ids []string) ([]Reference, error) {
	found := make([]*Reference, len(ids))

	g, ctxGroup := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, id := range ids {
		g.Go(func() error {
			if err := ctxGroup.Err(); err != nil {
				return err
			}
			url := ExpectedURL(s.baseURL, id)
			for _, f := range files {
				if strings.Contains(f.Body, url) {
					found[i] = &Reference{ObjectID: id, URL: url, Path: f.Path}
					return nil
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	refs := make([]Reference, 0, len(ids))
	for _, ref := range found {
		if ref == nil {
			continue
		}
		s.logger.Debug("Found reference", zap.String("id", ref.ObjectID), zap.String("file", ref.Path))
		refs = append(refs, *ref)
	}

	s.logger.Info("Scanned content for references",
		zap.Int("ids", len(ids)),
		zap.Int("files", len(files)),
		zap.Int("references", len(refs)),
	)

	return refs, nil
}
