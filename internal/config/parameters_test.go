package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/isometry/lw-quarantine-app/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
global:
  mode: lambda-http
azure:
  subscriptionId: sub-1
  keyVaultName: kv-test
lacework:
  tenant: example.lacework.net
tagging:
  name: compromised
service:
  port: "9090"
`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	require.NoError(t, config.LoadFromFile(path))
	require.NoError(t, config.SetDefaults())

	assert.Equal(t, config.ModeLambdaHTTP, config.Global.Mode)
	assert.Equal(t, "sub-1", config.Azure.SubscriptionID)
	assert.Equal(t, "kv-test", config.Azure.KeyVaultName)
	assert.Equal(t, "2021-04-01", config.Azure.APIVersion)
	assert.Equal(t, "example.lacework.net", config.Lacework.Tenant)
	assert.Equal(t, "Azure", config.Lacework.CSP)
	assert.Equal(t, "compromised", config.Tagging.Name)
	assert.Equal(t, config.SecretsProviderKeyVault, config.Secrets.Provider)
	assert.Equal(t, "lwapi-secrets", config.Secrets.KeyIDName)
	assert.Equal(t, "x-lw-uaks", config.Secrets.UAKSName)
	assert.Equal(t, "9090", config.Service.Port)
	assert.Equal(t, 30*time.Second, config.Service.Timeout)
}

func TestLoadFromFile_Errors(t *testing.T) {
	testCases := []struct {
		Name        string
		Path        func(t *testing.T) string
		ExpectError bool
	}{
		{
			Name:        "empty_path",
			Path:        func(*testing.T) string { return "" },
			ExpectError: false,
		},
		{
			Name:        "missing_file",
			Path:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
			ExpectError: false,
		},
		{
			Name:        "directory",
			Path:        func(t *testing.T) string { return t.TempDir() },
			ExpectError: true,
		},
		{
			Name: "invalid_yaml",
			Path: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte("global: [unterminated"), 0o600))
				return path
			},
			ExpectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := config.LoadFromFile(tc.Path(t))
			assert.Equal(t, tc.ExpectError, err != nil, "error: %v", err)
		})
	}
}
