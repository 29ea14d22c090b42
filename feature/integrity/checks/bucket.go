package checks

import (
	"context"
	"fmt"

	"content-sweeper/core/storage"
)

// BucketReport is the result of the bucket check.
type BucketReport struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix,omitempty"`
	Exists bool   `json:"exists"`
	// Listable is true when the first listing page could be fetched.
	Listable bool `json:"listable"`
	// FirstPage is the number of objects on the first listing page.
	FirstPage int    `json:"first_page"`
	Status    string `json:"status"`
}

// CheckBucket verifies that the bucket exists and can be listed with the
// configured credentials. Only the first page is fetched.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string) (*BucketReport, error) {
	report := &BucketReport{Bucket: bucket, Prefix: prefix, Status: StatusError}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check bucket existence: %v", storage.ErrStoreUnavailable, err)
	}
	if !exists {
		return report, nil
	}
	report.Exists = true

	page, err := client.ListPage(ctx, bucket, prefix, "")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list bucket %s: %v", storage.ErrStoreUnavailable, bucket, err)
	}
	report.Listable = true
	report.FirstPage = len(page.Objects)
	report.Status = StatusOK

	return report, nil
}
