// Package secrets defines the secret store contract shared by the Key Vault, SSM and environment backends.
package secrets

import (
	"context"
	"os"

	"github.com/isometry/lw-quarantine-app/internal/errs"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
)

// Store returns the current value of a named secret. Values are fetched on every call and never cached.
type Store interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// EnvStore reads secrets from environment variables named after the secret, e.g. x-lw-uaks -> X_LW_UAKS.
type EnvStore struct {
	lookup func(string) (string, bool)
}

// NewEnvStore returns an EnvStore backed by the process environment.
func NewEnvStore() *EnvStore {
	return &EnvStore{lookup: os.LookupEnv}
}

// NewMapStore returns an EnvStore backed by a fixed map keyed by environment variable name.
func NewMapStore(values map[string]string) *EnvStore {
	return &EnvStore{lookup: func(k string) (string, bool) {
		v, ok := values[k]
		return v, ok
	}}
}

// GetSecret implements Store.
func (s *EnvStore) GetSecret(_ context.Context, name string) (string, error) {
	key := helpers.EnvName(name)
	v, ok := s.lookup(key)
	if !ok {
		return "", errs.New(errs.KindSecretRetrieval, "secret %s not found in environment [%s]", name, key)
	}
	if v == "" {
		return "", errs.New(errs.KindSecretRetrieval, "secret %s is empty", name)
	}
	return v, nil
}
