package mocks

import (
	"context"

	"content-sweeper/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) ListPage(ctx context.Context, bucketName, prefix, cursor string) (storage.Page, error) {
	args := m.Called(ctx, bucketName, prefix, cursor)
	if page, ok := args.Get(0).(storage.Page); ok {
		return page, args.Error(1)
	}
	return storage.Page{}, args.Error(1)
}

func (m *Client) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}
