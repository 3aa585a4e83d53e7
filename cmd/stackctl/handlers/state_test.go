package handlers

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackops/stackctl/internal/config"
)

// fakeBucketClient simulates an eventually consistent object store.
type fakeBucketClient struct {
	created     []string
	deleted     []string
	objects     map[string][]string // bucket -> object keys
	existsAfter int                 // number of BucketExists calls before the bucket shows up
	existsCalls int
	createErr   error
	existsErr   error
}

func (c *fakeBucketClient) CreateBucket(_ context.Context, name string) error {
	if c.createErr != nil {
		return c.createErr
	}
	c.created = append(c.created, name)
	return nil
}

func (c *fakeBucketClient) BucketExists(_ context.Context, _ string) (bool, error) {
	if c.existsErr != nil {
		return false, c.existsErr
	}
	c.existsCalls++
	return c.existsCalls > c.existsAfter, nil
}

func (c *fakeBucketClient) ListObjects(_ context.Context, name, _ string) ([]string, error) {
	return c.objects[name], nil
}

func (c *fakeBucketClient) DeleteBucket(_ context.Context, name string) error {
	c.deleted = append(c.deleted, name)
	return nil
}

func stubStateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STACKCTL_S3_ACCESS_KEY", "minio")
	t.Setenv("STACKCTL_S3_SECRET_KEY", "minio123")
}

func stubProjectConfig() {
	loadConfigFile = func(_ string) (*config.Config, error) {
		return &config.Config{
			Project: "monitoring-stack",
			State:   config.StateConfig{Endpoint: "http://minio:9000", Region: "eu-central-1"},
		}, nil
	}
}

func TestStateBootstrap(t *testing.T) {
	saveAndRestoreFactories(t)
	stubStateEnv(t)
	stubProjectConfig()
	bucketRetryDelay = time.Millisecond

	client := &fakeBucketClient{}
	var gotEndpoint, gotRegion string
	newBucketClient = func(endpoint, region, _, _ string) (BucketClient, error) {
		gotEndpoint, gotRegion = endpoint, region
		return client, nil
	}

	err := StateBootstrap(context.Background(), "aws", "stackctl.yaml")
	require.NoError(t, err)

	assert.Equal(t, "http://minio:9000", gotEndpoint)
	assert.Equal(t, "eu-central-1", gotRegion)
	assert.Equal(t, []string{"monitoring-stack-tfstate-aws"}, client.created)
}

func TestStateBootstrap_WaitsForVisibility(t *testing.T) {
	saveAndRestoreFactories(t)
	stubStateEnv(t)
	stubProjectConfig()
	bucketRetryDelay = time.Millisecond

	client := &fakeBucketClient{existsAfter: 2}
	newBucketClient = func(_, _, _, _ string) (BucketClient, error) { return client, nil }

	err := StateBootstrap(context.Background(), "gcp", "stackctl.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, client.existsCalls)
}

func TestStateBootstrap_InvalidCloud(t *testing.T) {
	err := StateBootstrap(context.Background(), "openstack", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cloud")
}

func TestStateBootstrap_MissingCredentials(t *testing.T) {
	saveAndRestoreFactories(t)
	stubProjectConfig()
	t.Setenv("STACKCTL_S3_ACCESS_KEY", "")
	t.Setenv("STACKCTL_S3_SECRET_KEY", "")

	err := StateBootstrap(context.Background(), "aws", "stackctl.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STACKCTL_S3_ACCESS_KEY")
}

func TestStateBootstrap_NoProject(t *testing.T) {
	saveAndRestoreFactories(t)
	stubStateEnv(t)
	findConfigFile = func() (string, error) { return "", errors.New("not found") }

	err := StateBootstrap(context.Background(), "aws", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project is not set")
}

func TestStateBootstrap_CreateFails(t *testing.T) {
	saveAndRestoreFactories(t)
	stubStateEnv(t)
	stubProjectConfig()

	client := &fakeBucketClient{createErr: errors.New("access denied")}
	newBucketClient = func(_, _, _, _ string) (BucketClient, error) { return client, nil }

	err := StateBootstrap(context.Background(), "azure", "stackctl.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create state bucket")
}

func TestStateStatus(t *testing.T) {
	saveAndRestoreFactories(t)
	stubStateEnv(t)
	stubProjectConfig()

	client := &fakeBucketClient{
		objects: map[string][]string{
			"monitoring-stack-tfstate-aws": {"networking/terraform.tfstate", "kubernetes/terraform.tfstate"},
		},
	}
	newBucketClient = func(_, _, _, _ string) (BucketClient, error) { return client, nil }

	var buf bytes.Buffer
	err := stateStatus(context.Background(), &buf, "stackctl.yaml")
	require.NoError(t, err)

	// One existence check per cloud.
	assert.Equal(t, 3, client.existsCalls)

	out := buf.String()
	assert.Contains(t, out, "monitoring-stack-tfstate-aws")
	assert.Contains(t, out, "ok (2 state objects)")
	assert.Contains(t, out, "ok (0 state objects)")
	// Rows start with the short cloud id, not the verbose description.
	assert.Contains(t, out, "  aws    ")
	assert.NotContains(t, out, "Amazon Web Services")
}

func TestStateDestroy(t *testing.T) {
	saveAndRestoreFactories(t)
	stubStateEnv(t)
	stubProjectConfig()

	client := &fakeBucketClient{}
	newBucketClient = func(_, _, _, _ string) (BucketClient, error) { return client, nil }

	err := StateDestroy(context.Background(), "aws", "stackctl.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"monitoring-stack-tfstate-aws"}, client.deleted)
}

func TestStateDestroy_RefusesNonEmptyBucket(t *testing.T) {
	saveAndRestoreFactories(t)
	stubStateEnv(t)
	stubProjectConfig()

	client := &fakeBucketClient{
		objects: map[string][]string{
			"monitoring-stack-tfstate-aws": {"networking/terraform.tfstate"},
		},
	}
	newBucketClient = func(_, _, _, _ string) (BucketClient, error) { return client, nil }

	err := StateDestroy(context.Background(), "aws", "stackctl.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still holds 1 objects")
	assert.Empty(t, client.deleted)
}

func TestStateDestroy_InvalidCloud(t *testing.T) {
	err := StateDestroy(context.Background(), "openstack", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cloud")
}
