package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/stackops/stackctl/internal/config"
	"github.com/stackops/stackctl/internal/platform/s3"
	"github.com/stackops/stackctl/internal/util/retry"
)

// BucketClient is the subset of the S3 client the state handlers need.
type BucketClient interface {
	CreateBucket(ctx context.Context, bucketName string) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error)
	DeleteBucket(ctx context.Context, bucketName string) error
}

// Factory function variables for state - can be replaced in tests.
var (
	// newBucketClient creates the object-storage client.
	newBucketClient = func(endpoint, region, accessKey, secretKey string) (BucketClient, error) {
		return s3.NewClient(endpoint, region, accessKey, secretKey)
	}

	// bucketRetryDelay is the initial backoff while waiting for a new
	// bucket to become visible.
	bucketRetryDelay = time.Second
)

// StateBootstrap creates the remote-state bucket for a cloud.
//
// The bucket is named <project>-tfstate-<cloud>. Creation is idempotent;
// after creating, the handler polls until the bucket is visible since
// S3-compatible stores surface new buckets with a delay.
func StateBootstrap(ctx context.Context, cloudArg, configPath string) error {
	cloud := config.Cloud(cloudArg)
	if !cloud.IsValid() {
		return fmt.Errorf("invalid cloud %q: valid clouds are %v", cloudArg, config.ValidClouds())
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return errors.New("project is not set: run 'stackctl init' to create stackctl.yaml")
	}

	client, err := bucketClientFromEnv(cfg)
	if err != nil {
		return err
	}

	bucket := cfg.StateBucketName(cloud)
	log.Printf("Creating state bucket %s", bucket)

	if err := client.CreateBucket(ctx, bucket); err != nil {
		return fmt.Errorf("failed to create state bucket: %w", err)
	}

	err = retry.Do(ctx, func() error {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("bucket %s not yet visible", bucket)
		}
		return nil
	}, retry.WithInitialDelay(bucketRetryDelay))
	if err != nil {
		return fmt.Errorf("state bucket did not become visible: %w", err)
	}

	fmt.Printf("State bucket ready: %s\n", bucket)
	return nil
}

// StateStatus reports, per cloud, whether the state bucket exists and how
// many state objects it holds.
func StateStatus(ctx context.Context, configPath string) error {
	return stateStatus(ctx, os.Stdout, configPath)
}

func stateStatus(ctx context.Context, w io.Writer, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return errors.New("project is not set: run 'stackctl init' to create stackctl.yaml")
	}

	client, err := bucketClientFromEnv(cfg)
	if err != nil {
		return err
	}

	for _, cloud := range config.ValidClouds() {
		bucket := cfg.StateBucketName(cloud)
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}

		status := "missing"
		if exists {
			objects, err := client.ListObjects(ctx, bucket, "")
			if err != nil {
				return fmt.Errorf("failed to list bucket %s: %w", bucket, err)
			}
			status = fmt.Sprintf("ok (%d state objects)", len(objects))
		}
		fmt.Fprintf(w, "  %-8s %-40s %s\n", string(cloud), bucket, status)
	}

	return nil
}

// StateDestroy deletes a cloud's state bucket. The bucket must be empty;
// a bucket that still holds state objects is refused so terraform state
// cannot be dropped by accident.
func StateDestroy(ctx context.Context, cloudArg, configPath string) error {
	cloud := config.Cloud(cloudArg)
	if !cloud.IsValid() {
		return fmt.Errorf("invalid cloud %q: valid clouds are %v", cloudArg, config.ValidClouds())
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return errors.New("project is not set: run 'stackctl init' to create stackctl.yaml")
	}

	client, err := bucketClientFromEnv(cfg)
	if err != nil {
		return err
	}

	bucket := cfg.StateBucketName(cloud)
	objects, err := client.ListObjects(ctx, bucket, "")
	if err != nil {
		return fmt.Errorf("failed to list bucket %s: %w", bucket, err)
	}
	if len(objects) > 0 {
		return fmt.Errorf("state bucket %s still holds %d objects: destroy the stack first", bucket, len(objects))
	}

	if err := client.DeleteBucket(ctx, bucket); err != nil {
		return fmt.Errorf("failed to delete state bucket: %w", err)
	}

	fmt.Printf("State bucket deleted: %s\n", bucket)
	return nil
}

// bucketClientFromEnv builds the object-storage client from config plus
// environment credentials.
func bucketClientFromEnv(cfg *config.Config) (BucketClient, error) {
	accessKey := os.Getenv("STACKCTL_S3_ACCESS_KEY")
	secretKey := os.Getenv("STACKCTL_S3_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("STACKCTL_S3_ACCESS_KEY and STACKCTL_S3_SECRET_KEY must be set")
	}

	region := cfg.State.Region
	if region == "" {
		region = "us-east-1"
	}

	client, err := newBucketClient(cfg.State.Endpoint, region, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}
