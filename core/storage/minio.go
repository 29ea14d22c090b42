package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioAPI is the subset of *minio.Client used by the minio driver.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// minioClient pages through minio's channel listing using StartAfter as the cursor.
type minioClient struct {
	api      minioAPI
	pageSize int
}

func newMinioClient(cfg Config) (Client, error) {
	client, err := minio.New(cfg.endpointHost(), &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// Minio connects lazily; the transport timeouts keep the first request from hanging.

	return &minioClient{api: client, pageSize: pageSize(cfg)}, nil
}

func (c *minioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return c.api.BucketExists(ctx, bucketName)
}

func (c *minioClient) ListPage(ctx context.Context, bucketName, prefix, cursor string) (Page, error) {
	// Cancelling stops minio's background lister once the page is full.
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:     prefix,
		Recursive:  true,
		MaxKeys:    c.pageSize,
		StartAfter: cursor,
	}

	var page Page
	for obj := range c.api.ListObjects(listCtx, bucketName, opts) {
		if obj.Err != nil {
			return Page{}, obj.Err
		}
		page.Objects = append(page.Objects, Object{Key: obj.Key, Size: obj.Size})
		if len(page.Objects) == c.pageSize {
			page.NextCursor = obj.Key
			break
		}
	}

	return page, nil
}

func (c *minioClient) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	return c.api.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
}
