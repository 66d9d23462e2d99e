// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

const (
	// ModeService runs the handler behind a standalone HTTP server.
	ModeService = "service"
	// ModeLambdaHTTP runs the handler as a Lambda behind API Gateway or a function URL.
	ModeLambdaHTTP = "lambda-http"
	// ModeLambdaEvent runs the handler as a Lambda invoked with an EventBridge event.
	ModeLambdaEvent = "lambda-event"
)

const (
	// SecretsProviderKeyVault reads secrets from Azure Key Vault.
	SecretsProviderKeyVault = "keyvault"
	// SecretsProviderSSM reads secrets from AWS SSM Parameter Store.
	SecretsProviderSSM = "ssm"
	// SecretsProviderEnv reads secrets from the process environment.
	SecretsProviderEnv = "env"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Azure is a struct that contains the configuration for the Azure controllers.
	Azure azure
	// Secrets is a struct that contains the configuration for the secret store.
	Secrets secrets
	// Lacework is a struct that contains the configuration for the Lacework API client.
	Lacework lacework
	// Tagging is a struct that contains the configuration for the quarantine tag.
	Tagging tagging
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"service"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type azure struct {
	SubscriptionID string `yaml:"subscriptionId,omitempty"`
	// ClientID is the managed identity client ID. If empty, the default credential chain is used.
	ClientID     string `yaml:"clientId,omitempty"`
	KeyVaultName string `yaml:"keyVaultName,omitempty"`
	// APIVersion is the resource provider API version used to read and update tags.
	APIVersion string `yaml:"apiVersion,omitempty" default:"2021-04-01"`
}

type secrets struct {
	Provider string `yaml:"provider,omitempty" default:"keyvault"`
	// KeyIDName is the name of the secret holding the Lacework API key ID.
	KeyIDName string `yaml:"keyIdName,omitempty" default:"lwapi-secrets"`
	// UAKSName is the name of the secret holding the Lacework API secret (x-lw-uaks).
	UAKSName string `yaml:"uaksName,omitempty" default:"x-lw-uaks"`
	// SSMPrefix is prepended to secret names when the ssm provider is used.
	SSMPrefix string `yaml:"ssmPrefix,omitempty"`
}

type lacework struct {
	// Tenant is the Lacework account hostname, e.g. example.lacework.net.
	Tenant string `yaml:"tenant,omitempty"`
	// CSP is the cloud provider filter applied to inventory searches.
	CSP string `yaml:"csp,omitempty" default:"Azure"`
}

type tagging struct {
	Name string `yaml:"name,omitempty" default:"malware"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"30s"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Azure),
		defaults.Set(&Secrets),
		defaults.Set(&Lacework),
		defaults.Set(&Tagging),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global   global   `yaml:"global,omitempty"`
		Azure    azure    `yaml:"azure,omitempty"`
		Secrets  secrets  `yaml:"secrets,omitempty"`
		Lacework lacework `yaml:"lacework,omitempty"`
		Tagging  tagging  `yaml:"tagging,omitempty"`
		Service  service  `yaml:"service,omitempty"`
		Lambda   lambda   `yaml:"lambda,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Azure = a.Azure
	Secrets = a.Secrets
	Lacework = a.Lacework
	Tagging = a.Tagging
	Service = a.Service
	Lambda = a.Lambda

	return nil
}
