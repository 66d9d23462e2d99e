package cmd

import (
	"github.com/isometry/lw-quarantine-app/internal/config"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'service', 'lambda-http' and 'lambda-event'",
		Short:       helpers.Ptr("m"),
	},
	&config.Azure.SubscriptionID: {
		Name:        "azure-subscription-id",
		Description: "The Azure subscription the tagged resources belong to",
		Env:         helpers.Ptr("AZURE_SUBSCRIPTION_ID"),
	},
	&config.Azure.ClientID: {
		Name:        "azure-client-id",
		Description: "The managed identity client ID. If not specified, the default Azure credential chain is used",
		Env:         helpers.Ptr("AZURE_CLIENT_ID"),
	},
	&config.Azure.KeyVaultName: {
		Name:        "key-vault-name",
		Description: "The Azure Key Vault holding the Lacework API credentials",
		Env:         helpers.Ptr("KEY_VAULT_NAME"),
	},
	&config.Azure.APIVersion: {
		Name:        "azure-api-version",
		Description: "The resource API version used to read and update tags",
	},
	&config.Secrets.Provider: {
		Name:        "secrets-provider",
		Description: "Secret store for the Lacework API credentials. Supported values are 'keyvault', 'ssm' and 'env'",
		Short:       helpers.Ptr("S"),
	},
	&config.Secrets.KeyIDName: {
		Name:        "secret-key-id-name",
		Description: "The name of the secret holding the Lacework API key ID",
	},
	&config.Secrets.UAKSName: {
		Name:        "secret-uaks-name",
		Description: "The name of the secret holding the Lacework API secret (x-lw-uaks)",
	},
	&config.Secrets.SSMPrefix: {
		Name:        "ssm-prefix",
		Description: "Prefix prepended to secret names when reading from SSM, e.g. '/lacework/'",
	},
	&config.Lacework.Tenant: {
		Name:        "lacework-tenant",
		Description: "The Lacework tenant hostname, e.g. example.lacework.net",
		Short:       helpers.Ptr("T"),
	},
	&config.Lacework.CSP: {
		Name:        "lacework-csp",
		Description: "The cloud provider filter used in inventory searches",
	},
	&config.Tagging.Name: {
		Name:        "tag-name",
		Description: "The name of the tag set to 'true' on compromised resources",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}
