package storage

import (
	"fmt"
	"strings"
)

const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Driver selects the client implementation (s3, minio).
	Driver string `mapstructure:"driver" default:"s3" validate:"oneof=s3 minio"`
	// Endpoint is the URL of the storage service. Empty means AWS for the s3 driver.
	Endpoint string `mapstructure:"endpoint" default:"" validate:"required_if=Driver minio"`
	// AccessKey is the access key ID for authentication. The s3 driver falls back to
	// the default AWS credential chain when it is empty.
	AccessKey string `mapstructure:"access_key" default:"" env:"AWS_ACCESS_KEY_ID" validate:"required_if=Driver minio,required_with=SecretKey"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"" env:"AWS_SECRET_ACCESS_KEY" validate:"required_if=Driver minio,required_with=AccessKey"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Bucket is the name of the bucket holding the attachments.
	Bucket string `mapstructure:"bucket" default:"" env:"S3_BUCKET_NAME" validate:"required"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:"" env:"AWS_REGION" validate:"required"`
	// Prefix restricts listing to keys under this prefix.
	Prefix string `mapstructure:"prefix" default:""`
	// PageSize is the number of keys requested per listing page.
	PageSize int `mapstructure:"page_size" default:"1000" validate:"min=1,max=1000"`
	// ForcePathStyle forces path-style addressing (MinIO, Localstack).
	ForcePathStyle bool `mapstructure:"force_path_style" default:"false"`
	// PublicBaseURL overrides the derived https://<bucket>.s3.<region>.amazonaws.com base URL.
	PublicBaseURL string `mapstructure:"public_base_url" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// BaseURL returns the public URL prefix under which content links to objects.
func (c Config) BaseURL() string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
}

// endpointHost strips any scheme from the endpoint (minio expects host:port).
func (c Config) endpointHost() string {
	endpoint := strings.TrimPrefix(c.Endpoint, "http://")
	return strings.TrimPrefix(endpoint, "https://")
}

// endpointURL returns the endpoint with a scheme (aws-sdk expects a full URL).
func (c Config) endpointURL() string {
	if c.Endpoint == "" {
		return ""
	}
	if strings.HasPrefix(c.Endpoint, "http://") || strings.HasPrefix(c.Endpoint, "https://") {
		return c.Endpoint
	}
	if c.UseSSL {
		return "https://" + c.Endpoint
	}
	return "http://" + c.Endpoint
}
