// Package azure provides a Controller that wraps the Azure SDK clients used to read Key Vault secrets and tag resources.
package azure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	azlog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
	"github.com/pkg/errors"
)

// DefaultAPIVersion is the resource API version used for reading and updating tags.
const DefaultAPIVersion = "2021-04-01"

// ResourceClient is the subset of the ARM generic resources API used by the Controller.
type ResourceClient interface {
	GetByID(ctx context.Context, resourceID string, apiVersion string, options *armresources.ClientGetByIDOptions) (armresources.ClientGetByIDResponse, error)
	BeginUpdateByID(ctx context.Context, resourceID string, apiVersion string, parameters armresources.GenericResource, options *armresources.ClientBeginUpdateByIDOptions) (*runtime.Poller[armresources.ClientUpdateByIDResponse], error)
}

// SecretGetter is the subset of the Key Vault secrets API used by the Controller.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// Controller holds the process-wide Azure clients. They carry no per-request state and are safe to reuse across invocations.
type Controller struct {
	logger *slog.Logger

	credential     azcore.TokenCredential
	clientID       string
	subscriptionID string
	keyVaultName   string
	apiVersion     string
	clientOptions  *arm.ClientOptions

	resources ResourceClient
	secrets   SecretGetter
}

// Option defines a function type used to configure an instance of the Controller struct.
type Option func(*Controller)

// NewController initializes a Controller. A Key Vault client is only created when a vault name is configured.
func NewController(opts ...Option) (*Controller, error) {
	_inst := &Controller{apiVersion: DefaultAPIVersion}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("controller", "azure")
	bridgeSDKLogger(_inst.logger)

	if _inst.credential == nil && (_inst.resources == nil || (_inst.secrets == nil && _inst.keyVaultName != "")) {
		cred, err := NewCredential(_inst.clientID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create Azure credential")
		}
		_inst.credential = cred
	}

	if _inst.resources == nil {
		if _inst.subscriptionID == "" {
			return nil, errors.New("missing Azure subscription ID")
		}
		client, err := armresources.NewClient(_inst.subscriptionID, _inst.credential, _inst.clientOptions)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create resources client")
		}
		_inst.resources = client
	}

	if _inst.secrets == nil && _inst.keyVaultName != "" {
		client, err := azsecrets.NewClient(KeyVaultURL(_inst.keyVaultName), _inst.credential, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create Key Vault client")
		}
		_inst.secrets = client
	}
	return _inst, nil
}

// NewCredential returns a managed identity credential for clientID, falling back to the default credential chain.
// With an empty clientID only the default chain is used.
func NewCredential(clientID string) (azcore.TokenCredential, error) {
	defaultCred, err := azidentity.NewDefaultAzureCredential(nil)
	if clientID == "" {
		if err != nil {
			return nil, err
		}
		return defaultCred, nil
	}
	managed, mErr := azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
		ID: azidentity.ClientID(clientID),
	})
	if mErr != nil {
		return nil, mErr
	}
	sources := []azcore.TokenCredential{managed}
	if err == nil {
		sources = append(sources, defaultCred)
	}
	return azidentity.NewChainedTokenCredential(sources, nil)
}

// KeyVaultURL returns the vault URI for name. Full URLs are returned unchanged.
func KeyVaultURL(name string) string {
	if strings.Contains(name, "://") {
		return name
	}
	return fmt.Sprintf("https://%s.vault.azure.net", name)
}

// bridgeSDKLogger forwards Azure SDK diagnostics to logger at debug level.
func bridgeSDKLogger(logger *slog.Logger) {
	azlog.SetEvents(azlog.EventRequest, azlog.EventResponse, azlog.EventRetryPolicy, azlog.EventLRO)
	azlog.SetListener(func(event azlog.Event, msg string) {
		logger.Debug(fmt.Sprintf("[%s] %s", event, msg))
	})
}
