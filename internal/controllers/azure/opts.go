package azure

import (
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

// WithLogger sets a custom slog.Logger instance for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithCredential sets the credential used by every Azure client.
func WithCredential(cred azcore.TokenCredential) Option {
	return func(c *Controller) {
		c.credential = cred
	}
}

// WithClientID sets the managed identity client ID used when no credential is given.
func WithClientID(clientID string) Option {
	return func(c *Controller) {
		c.clientID = clientID
	}
}

// WithSubscriptionID sets the subscription the resources client is bound to.
func WithSubscriptionID(id string) Option {
	return func(c *Controller) {
		c.subscriptionID = id
	}
}

// WithKeyVaultName enables the Key Vault client for the named vault.
func WithKeyVaultName(name string) Option {
	return func(c *Controller) {
		c.keyVaultName = name
	}
}

// WithAPIVersion sets the resource API version used for tag reads and updates.
func WithAPIVersion(version string) Option {
	return func(c *Controller) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithClientOptions sets the ARM client options, e.g. a sovereign cloud configuration.
func WithClientOptions(options *arm.ClientOptions) Option {
	return func(c *Controller) {
		c.clientOptions = options
	}
}

// WithResourceClient replaces the ARM generic resources client.
func WithResourceClient(client ResourceClient) Option {
	return func(c *Controller) {
		c.resources = client
	}
}

// WithSecretGetter replaces the Key Vault secrets client.
func WithSecretGetter(client SecretGetter) Option {
	return func(c *Controller) {
		c.secrets = client
	}
}
