package aws

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateSharedConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
}

func TestCreateClient_DefaultsToSupportRegion(t *testing.T) {
	isolateSharedConfig(t)

	client, err := CreateClient(context.Background(), AuthConfig{Profile: "default"})

	require.NoError(t, err)
	assert.Equal(t, SupportRegion, client.region)
}

func TestCreateClient_WithAssumeRole(t *testing.T) {
	isolateSharedConfig(t)

	client, err := CreateClient(context.Background(), AuthConfig{
		Profile: "default",
		Region:  "us-east-1",
		AssumeRole: &AssumeRoleCredentials{
			RoleARN:     "arn:aws:iam::123456789012:role/monitoring",
			SessionName: "check-session",
			Duration:    900,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "us-east-1", client.region)
}

func TestCreateClient_MissingProfile(t *testing.T) {
	isolateSharedConfig(t)

	_, err := CreateClient(context.Background(), AuthConfig{Profile: "does-not-exist", Region: "us-east-1"})

	require.Error(t, err)
	var customErr *Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, ErrorTypePermission, customErr.Type)
	assert.Contains(t, err.Error(), "does-not-exist")
}
