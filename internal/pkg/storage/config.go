package storage

import (
	"errors"
	"fmt"

	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/env"
)

// Config holds object storage configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	Enabled         bool
}

// LoadConfig loads object storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("S3_STORAGE_ENABLED", "false") == "true",
	}

	// Validate required fields if object storage is enabled
	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when object storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when object storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when object storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if object storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// GetBucketName returns the bucket name as configured (no automatic prefixing)
func (c *Config) GetBucketName() string {
	return c.BucketName
}

// LogoKey builds the per-account object key for a company logo. Keys are
// namespaced by account so folder-level access policy applies.
func LogoKey(userID uint, fileExtension string) string {
	return fmt.Sprintf("accounts/%d/logo/logo%s", userID, fileExtension)
}

// DocumentKey builds the per-account object key for a generated quote
// document.
func DocumentKey(userID, quoteID uint, year, month int) string {
	return fmt.Sprintf("accounts/%d/documents/%04d/%02d/quote-%d.html", userID, year, month, quoteID)
}

// GetAppEnv returns the current application environment
func GetAppEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}
