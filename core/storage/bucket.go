package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrStoreUnavailable wraps every listing or deletion failure reported by the store.
var ErrStoreUnavailable = errors.New("object store unavailable")

// Object is a stored object as reported by a listing.
type Object struct {
	Key  string
	Size int64
}

// IsDirectoryMarker reports whether key is a folder placeholder rather than an object.
func IsDirectoryMarker(key string) bool {
	return strings.HasSuffix(key, "/")
}

// Bucket binds a Client to one bucket and key prefix.
type Bucket struct {
	client Client
	name   string
	prefix string
	logger *zap.Logger
}

// NewBucket creates a Bucket. A nil logger disables logging.
func NewBucket(client Client, name, prefix string, logger *zap.Logger) *Bucket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bucket{client: client, name: name, prefix: prefix, logger: logger}
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Exists checks that the bucket is reachable and present.
func (b *Bucket) Exists(ctx context.Context) (bool, error) {
	exists, err := b.client.BucketExists(ctx, b.name)
	if err != nil {
		return false, fmt.Errorf("%w: bucket %s: %v", ErrStoreUnavailable, b.name, err)
	}
	return exists, nil
}

// ListAll follows the continuation cursor until the store reports no further pages
// and returns every non-marker object in store order. Any failed page discards the
// whole listing; a partial object universe is never returned.
func (b *Bucket) ListAll(ctx context.Context) ([]Object, error) {
	var (
		objects []Object
		cursor  string
		pages   int
	)

	for {
		page, err := b.client.ListPage(ctx, b.name, b.prefix, cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: listing bucket %s (page %d): %v", ErrStoreUnavailable, b.name, pages+1, err)
		}
		pages++

		for _, obj := range page.Objects {
			if obj.Key == "" || IsDirectoryMarker(obj.Key) {
				continue
			}
			objects = append(objects, obj)
		}

		if page.NextCursor == "" {
			break
		}
		if page.NextCursor == cursor {
			return nil, fmt.Errorf("%w: listing bucket %s: store repeated cursor %q", ErrStoreUnavailable, b.name, cursor)
		}
		cursor = page.NextCursor
	}

	b.logger.Info("Listed bucket",
		zap.String("bucket", b.name),
		zap.Int("objects", len(objects)),
		zap.Int("pages", pages),
	)

	return objects, nil
}

// Delete removes a single object by its exact key.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	if err := b.client.RemoveObject(ctx, b.name, key); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStoreUnavailable, key, err)
	}
	return nil
}
