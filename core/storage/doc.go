// Package storage provides an abstraction layer for object storage services.
//
// Two drivers sit behind the Client interface: "s3" (aws-sdk-go-v2, ListObjectsV2
// continuation tokens) and "minio" (minio-go, StartAfter cursors). Both expose the
// same page-at-a-time listing so that pagination is handled in one place.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Bucket
//
// Bucket binds a Client to a bucket name and prefix:
//
//   - ListAll: follows the cursor until the store reports no more pages, drops
//     directory markers, and fails as a whole if any page fails.
//   - Delete: removes exactly one key.
//   - Exists: verifies access to the target bucket.
//
// Every store failure is wrapped with ErrStoreUnavailable.
//
// # Usage
//
//	client, err := storage.NewClient(ctx, cfg.Storage)
//	bucket := storage.NewBucket(client, cfg.Storage.Bucket, cfg.Storage.Prefix, logger)
//	objects, err := bucket.ListAll(ctx)
package storage
