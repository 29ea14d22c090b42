package storage_test

import (
	"context"
	"errors"
	"testing"

	"content-sweeper/core/storage"
	"content-sweeper/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBucket_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("FollowsCursorInStoreOrder", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListPage", mock.Anything, "bkt", "", "").Return(storage.Page{
			Objects:    []storage.Object{{Key: "attachments/z.png"}, {Key: "attachments/"}},
			NextCursor: "tok-1",
		}, nil).Once()
		client.On("ListPage", mock.Anything, "bkt", "", "tok-1").Return(storage.Page{
			Objects: []storage.Object{{Key: "attachments/a.png", Size: 10}, {Key: "b.txt"}},
		}, nil).Once()

		objects, err := storage.NewBucket(client, "bkt", "", nil).ListAll(ctx)
		require.NoError(t, err)

		keys := make([]string, 0, len(objects))
		for _, o := range objects {
			keys = append(keys, o.Key)
		}
		// Store order is kept and the directory marker is dropped
		assert.Equal(t, []string{"attachments/z.png", "attachments/a.png", "b.txt"}, keys)
		assert.Equal(t, int64(10), objects[1].Size)
		client.AssertExpectations(t)
	})

	t.Run("EmptyBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListPage", mock.Anything, "bkt", "", "").Return(storage.Page{}, nil).Once()

		objects, err := storage.NewBucket(client, "bkt", "", nil).ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, objects)
	})

	t.Run("FailedPageDiscardsListing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListPage", mock.Anything, "bkt", "", "").Return(storage.Page{
			Objects:    []storage.Object{{Key: "attachments/a.png"}},
			NextCursor: "tok-1",
		}, nil).Once()
		client.On("ListPage", mock.Anything, "bkt", "", "tok-1").
			Return(storage.Page{}, errors.New("access denied")).Once()

		objects, err := storage.NewBucket(client, "bkt", "", nil).ListAll(ctx)
		assert.Nil(t, objects)
		assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("RepeatedCursorIsUnavailable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListPage", mock.Anything, "bkt", "", "").
			Return(storage.Page{NextCursor: "loop"}, nil).Once()
		client.On("ListPage", mock.Anything, "bkt", "", "loop").
			Return(storage.Page{NextCursor: "loop"}, nil).Once()

		objects, err := storage.NewBucket(client, "bkt", "", nil).ListAll(ctx)
		assert.Nil(t, objects)
		assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
	})

	t.Run("PassesPrefix", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListPage", mock.Anything, "bkt", "attachments/", "").
			Return(storage.Page{Objects: []storage.Object{{Key: "attachments/a.png"}}}, nil).Once()

		objects, err := storage.NewBucket(client, "bkt", "attachments/", nil).ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, objects, 1)
	})
}

func TestBucket_Delete(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("RemoveObject", mock.Anything, "bkt", "attachments/a.png").Return(nil).Once()
	client.On("RemoveObject", mock.Anything, "bkt", "attachments/b.png").Return(errors.New("timeout")).Once()

	bucket := storage.NewBucket(client, "bkt", "", nil)
	assert.NoError(t, bucket.Delete(ctx, "attachments/a.png"))

	err := bucket.Delete(ctx, "attachments/b.png")
	assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
	client.AssertExpectations(t)
}

func TestBucket_Exists(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bkt").Return(true, nil).Once()
	client.On("BucketExists", mock.Anything, "gone").Return(false, errors.New("dial tcp")).Once()

	exists, err := storage.NewBucket(client, "bkt", "", nil).Exists(ctx)
	assert.NoError(t, err)
	assert.True(t, exists)

	_, err = storage.NewBucket(client, "gone", "", nil).Exists(ctx)
	assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
}
