package aws

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// WithLogger sets a custom slog.Logger instance for the Controller struct to use for logging operations.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Controller) {
		a.logger = logger
	}
}

// WithContext sets the context used while loading the AWS configuration.
func WithContext(ctx context.Context) Option {
	return func(a *Controller) {
		a.ctx = ctx
	}
}

// WithConfig sets an explicit AWS configuration instead of the default chain.
func WithConfig(cfg *aws.Config) Option {
	return func(a *Controller) {
		a.config = cfg
	}
}

// WithParameterGetter replaces the SSM client.
func WithParameterGetter(client ParameterGetter) Option {
	return func(a *Controller) {
		a.ssmClient = client
	}
}

// WithPrefix sets a prefix prepended to every parameter name, e.g. /lacework/.
func WithPrefix(prefix string) Option {
	return func(a *Controller) {
		a.prefix = prefix
	}
}
