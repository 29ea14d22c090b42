package storage

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Page is one listing response.
type Page struct {
	// Objects holds the keys returned by the store, in store order.
	Objects []Object
	// NextCursor continues the listing. Empty when the store reports no more pages.
	NextCursor string
}

// Client defines the interface for storage operations.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// ListPage returns one page of objects under prefix, starting at cursor.
	// An empty cursor starts a fresh listing.
	ListPage(ctx context.Context, bucketName, prefix, cursor string) (Page, error)
	// RemoveObject deletes a single object from a bucket.
	RemoveObject(ctx context.Context, bucketName, objectName string) error
}

// NewClient creates a storage client for the configured driver.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Driver {
	case DriverMinio:
		return newMinioClient(cfg)
	case DriverS3, "":
		return newS3Client(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// newTransport builds the HTTP transport shared by both drivers.
func newTransport(cfg Config) *http.Transport {
	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration, // Wait for first response byte timeout
	}
}

func pageSize(cfg Config) int {
	if cfg.PageSize <= 0 || cfg.PageSize > 1000 {
		return 1000
	}
	return cfg.PageSize
}
