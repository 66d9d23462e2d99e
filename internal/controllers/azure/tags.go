package azure

import (
	"context"
	"log/slog"
	"maps"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/isometry/lw-quarantine-app/internal/errs"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
	"github.com/pkg/errors"
)

// MergeTags returns a copy of existing with name set to value. Other entries are preserved.
func MergeTags(existing map[string]*string, name, value string) map[string]*string {
	merged := make(map[string]*string, len(existing)+1)
	maps.Copy(merged, existing)
	merged[name] = helpers.Ptr(value)
	return merged
}

// TagResource reads the current tags of the resource identified by urn, merges name=value into them
// and waits for the update to complete. It returns the tag set that was written.
func (c *Controller) TagResource(ctx context.Context, urn, name, value string) (map[string]*string, error) {
	logger := c.logger.With(slog.String("urn", urn))
	logger.Info("starting to add the tag to resource...", slog.String("tag", name))

	resource, err := c.resources.GetByID(ctx, urn, c.apiVersion, nil)
	if err != nil {
		return nil, c.classify(logger, err, "failed to get resource "+urn)
	}

	tags := MergeTags(resource.Tags, name, value)
	poller, err := c.resources.BeginUpdateByID(ctx, urn, c.apiVersion, armresources.GenericResource{Tags: tags}, nil)
	if err != nil {
		return nil, c.classify(logger, err, "failed to update tags of "+urn)
	}
	if _, err = poller.PollUntilDone(ctx, nil); err != nil {
		return nil, c.classify(logger, err, "tag update of "+urn+" did not complete")
	}

	logger.Info("tag added successfully", slog.String("tag", name), slog.String("value", value))
	return tags, nil
}

func (c *Controller) classify(logger *slog.Logger, err error, message string) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		logger.Warn("resource manager request failed",
			slog.Int("status", respErr.StatusCode),
			slog.String("code", respErr.ErrorCode))
	}
	return errs.Wrap(errs.KindExternalAPI, err, message)
}
