package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/isometry/lw-quarantine-app/internal/config"
	"github.com/isometry/lw-quarantine-app/internal/controllers/aws"
	"github.com/isometry/lw-quarantine-app/internal/controllers/azure"
	"github.com/isometry/lw-quarantine-app/internal/controllers/lacework"
	"github.com/isometry/lw-quarantine-app/internal/handler"
	"github.com/isometry/lw-quarantine-app/internal/runtime"
	"github.com/isometry/lw-quarantine-app/internal/secrets"
	"github.com/pkg/errors"
)

// setup wires the service objects for a single process from the loaded configuration.
func setup(ctx context.Context, logger *slog.Logger) (*runtime.Runtime, error) {
	logger.Debug("creating azure controller...")
	azureCtl, err := azure.NewController(
		azure.WithLogger(logger),
		azure.WithClientID(config.Azure.ClientID),
		azure.WithSubscriptionID(config.Azure.SubscriptionID),
		azure.WithKeyVaultName(config.Azure.KeyVaultName),
		azure.WithAPIVersion(config.Azure.APIVersion))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create azure controller")
	}

	store, err := newSecretStore(ctx, logger, azureCtl)
	if err != nil {
		return nil, err
	}

	logger.Debug("creating lacework controller...")
	lwCtl, err := lacework.NewController(config.Lacework.Tenant,
		lacework.WithLogger(logger),
		lacework.WithCSP(config.Lacework.CSP))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create lacework controller")
	}

	logger.Debug("creating quarantine handler...")
	hdl, err := handler.NewQuarantineHandler(
		handler.WithLogger(logger.With("component", "quarantine-handler")),
		handler.WithSecretStore(store),
		handler.WithLacework(lwCtl),
		handler.WithTagger(azureCtl),
		handler.WithTagName(config.Tagging.Name),
		handler.WithSecretNames(config.Secrets.KeyIDName, config.Secrets.UAKSName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create quarantine handler")
	}

	logger.Debug("creating runtime...")
	return runtime.NewRuntime(hdl,
		runtime.WithLogger(logger.With("component", "runtime")),
		runtime.WithLambdaPayloadType(config.Lambda.PayloadType)), nil
}

func newSecretStore(ctx context.Context, logger *slog.Logger, azureCtl *azure.Controller) (secrets.Store, error) {
	logger.Debug("creating secret store...", "provider", config.Secrets.Provider)
	switch config.Secrets.Provider {
	case config.SecretsProviderKeyVault:
		if config.Azure.KeyVaultName == "" || azureCtl == nil {
			return nil, errors.New("the keyvault secrets provider requires a key vault name")
		}
		return azureCtl, nil
	case config.SecretsProviderSSM:
		awsCtl, err := aws.NewController(
			aws.WithContext(ctx),
			aws.WithLogger(logger),
			aws.WithPrefix(config.Secrets.SSMPrefix))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create aws controller")
		}
		return awsCtl, nil
	case config.SecretsProviderEnv:
		return secrets.NewEnvStore(), nil
	default:
		return nil, fmt.Errorf("unsupported secrets provider: %s", config.Secrets.Provider)
	}
}
