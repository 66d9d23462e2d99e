package cmd

import (
	"testing"

	"github.com/isometry/lw-quarantine-app/internal/config"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
	"github.com/isometry/lw-quarantine-app/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecretStore(t *testing.T) {
	testCases := []struct {
		Name         string
		Provider     string
		KeyVaultName string
		ExpectError  bool
	}{
		{
			Name:     "env",
			Provider: config.SecretsProviderEnv,
		},
		{
			Name:        "keyvault_without_name",
			Provider:    config.SecretsProviderKeyVault,
			ExpectError: true,
		},
		{
			Name:         "keyvault_without_controller",
			Provider:     config.SecretsProviderKeyVault,
			KeyVaultName: "kv-test",
			ExpectError:  true,
		},
		{
			Name:        "unknown",
			Provider:    "vault",
			ExpectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			prevSecrets, prevAzure := config.Secrets, config.Azure
			t.Cleanup(func() { config.Secrets, config.Azure = prevSecrets, prevAzure })
			config.Secrets.Provider = tc.Provider
			config.Azure.KeyVaultName = tc.KeyVaultName

			store, err := newSecretStore(t.Context(), helpers.NewNoopLogger(), nil)
			if tc.ExpectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &secrets.EnvStore{}, store)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "AZURE_SUBSCRIPTION_ID", envKey(boundEnvVar[string]{Name: "azure-subscription-id", Env: helpers.Ptr("AZURE_SUBSCRIPTION_ID")}))
	assert.Equal(t, "KEY_VAULT_NAME", envKey(boundEnvVar[string]{Name: "key-vault-name", Env: helpers.Ptr("KEY_VAULT_NAME")}))
	assert.Equal(t, "SERVICE_HOST_PORT", envKey(boundEnvVar[string]{Name: "service-host-port"}))
	assert.Equal(t, "TAG_NAME", envKey(boundEnvVar[string]{Name: "tag-name"}))
}
