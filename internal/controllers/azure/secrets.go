package azure

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/isometry/lw-quarantine-app/internal/errs"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
	"github.com/pkg/errors"
)

// GetSecret returns the latest version of the named Key Vault secret.
func (c *Controller) GetSecret(ctx context.Context, name string) (string, error) {
	if c.secrets == nil {
		return "", errs.New(errs.KindSecretRetrieval, "Key Vault is not configured")
	}
	resp, err := c.secrets.GetSecret(ctx, name, "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return "", errs.Wrap(errs.KindSecretRetrieval, err, "secret "+name+" not found")
		}
		return "", errs.Wrap(errs.KindSecretRetrieval, err, "failed to retrieve secret "+name)
	}
	if helpers.Deref(resp.Value) == "" {
		return "", errs.New(errs.KindSecretRetrieval, "secret %s is empty", name)
	}
	c.logger.Info("retrieved secret", slog.String("name", name))
	return *resp.Value, nil
}
