package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of *s3.Client used by the s3 driver.
type s3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3Client drives ListObjectsV2 continuation tokens directly.
type s3Client struct {
	api      s3API
	pageSize int32
}

func newS3Client(ctx context.Context, cfg Config) (Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithHTTPClient(&http.Client{Transport: newTransport(cfg)}),
	}

	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	// Static credentials win over the default chain when configured
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if endpoint := cfg.endpointURL(); endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return &s3Client{
		api:      s3.NewFromConfig(awsCfg, s3Opts...),
		pageSize: int32(pageSize(cfg)),
	}, nil
}

func (c *s3Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &notFound) || errors.As(err, &noSuchBucket) {
		return false, nil
	}
	return false, fmt.Errorf("s3 head bucket: %w", err)
}

func (c *s3Client) ListPage(ctx context.Context, bucketName, prefix, cursor string) (Page, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucketName),
		MaxKeys: aws.Int32(c.pageSize),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	if cursor != "" {
		input.ContinuationToken = aws.String(cursor)
	}

	out, err := c.api.ListObjectsV2(ctx, input)
	if err != nil {
		return Page{}, fmt.Errorf("s3 list objects: %w", err)
	}

	page := Page{Objects: make([]Object, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, Object{
			Key:  aws.ToString(obj.Key),
			Size: aws.ToInt64(obj.Size),
		})
	}

	if aws.ToBool(out.IsTruncated) {
		page.NextCursor = aws.ToString(out.NextContinuationToken)
		// A truncated page without a token would silently end the listing early
		if page.NextCursor == "" {
			return Page{}, fmt.Errorf("s3 list objects: truncated page without continuation token")
		}
	}

	return page, nil
}

func (c *s3Client) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object: %w", err)
	}
	return nil
}
