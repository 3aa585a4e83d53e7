package s3

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("https://s3.eu-central-1.amazonaws.com", "eu-central-1", "key", "secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "eu-central-1", client.region)
}

func TestIsBucketAlreadyOwnedByYou(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed owned", &types.BucketAlreadyOwnedByYou{}, true},
		{"typed exists", &types.BucketAlreadyExists{}, true},
		{"api code owned", &smithy.GenericAPIError{Code: "BucketAlreadyOwnedByYou"}, true},
		{"api code exists", &smithy.GenericAPIError{Code: "BucketAlreadyExists"}, true},
		{"api code other", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBucketAlreadyOwnedByYou(tt.err))
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed no such bucket", &types.NoSuchBucket{}, true},
		{"typed not found", &types.NotFound{}, true},
		{"api code not found", &smithy.GenericAPIError{Code: "NotFound"}, true},
		{"api code 404", &smithy.GenericAPIError{Code: "404"}, true},
		{"api code other", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotFoundError(tt.err))
		})
	}
}
