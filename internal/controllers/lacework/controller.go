// Package lacework provides a Controller for the Lacework API: access token exchange and the Events and Inventory searches.
package lacework

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/isometry/lw-quarantine-app/internal/errs"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
	"github.com/isometry/lw-quarantine-app/internal/models"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	tokensPath    = "/api/v2/access/tokens"
	eventsPath    = "/api/v2/Events/search"
	inventoryPath = "/api/v2/Inventory/search"

	// UAKSHeader carries the API secret during token exchange.
	UAKSHeader = "x-lw-uaks"

	logBodyLimit = 512
)

// Controller calls the Lacework API of a single tenant.
type Controller struct {
	baseURL    string
	csp        string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option defines a function type used to configure an instance of the Controller struct.
type Option func(*Controller)

// NewController returns a Controller for tenant. tenant is a hostname such as example.lacework.net, or a full base URL.
func NewController(tenant string, opts ...Option) (*Controller, error) {
	tenant = strings.TrimSpace(tenant)
	if tenant == "" {
		return nil, errors.New("missing Lacework tenant")
	}
	_inst := &Controller{baseURL: BaseURL(tenant), csp: "Azure"}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.httpClient == nil {
		_inst.httpClient = http.DefaultClient
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("controller", "lacework")
	return _inst, nil
}

// BaseURL normalises a tenant hostname into an API base URL.
func BaseURL(tenant string) string {
	tenant = strings.TrimRight(tenant, "/")
	if strings.Contains(tenant, "://") {
		return tenant
	}
	return "https://" + tenant
}

// Authenticate exchanges the API key ID and secret for a short-lived bearer token.
func (c *Controller) Authenticate(ctx context.Context, keyID, uaks string) (string, error) {
	c.logger.Debug("requesting access token...")
	var resp models.TokenResponse
	err := c.post(ctx, c.httpClient, tokensPath, map[string]string{UAKSHeader: uaks}, models.TokenRequest{KeyID: keyID}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errs.New(errs.KindAuth, "no token in the response")
	}
	c.logger.Debug("access token obtained", slog.String("expiresAt", resp.ExpiresAt))
	return resp.Token, nil
}

// SearchEvents returns the InstanceId machine tag of the event identified by eventID.
func (c *Controller) SearchEvents(ctx context.Context, token, eventID string) (string, error) {
	req := models.SearchRequest{
		Filters: []models.Filter{{Field: "id", Expression: "eq", Value: eventID}},
		Returns: []string{"srcEvent"},
	}
	c.logger.Info("calling event search...", slog.Any("body", req))
	var resp models.EventSearchResponse
	if err := c.post(ctx, c.bearerClient(ctx, token), eventsPath, nil, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", errs.New(errs.KindNotFound, "no event found with id %s", eventID)
	}
	src := resp.Data[0].SrcEvent
	if src == nil || src.MachineTags == nil || src.MachineTags.InstanceID == "" {
		return "", errs.New(errs.KindNotFound, "event %s has no InstanceId machine tag", eventID)
	}
	return src.MachineTags.InstanceID, nil
}

// SearchInventory returns the URN of the VM whose resourceConfig.vmId is instanceID.
func (c *Controller) SearchInventory(ctx context.Context, token, instanceID string) (string, error) {
	req := models.SearchRequest{
		Filters: []models.Filter{{Field: "resourceConfig.vmId", Expression: "eq", Value: instanceID}},
		Returns: []string{"urn"},
		CSP:     c.csp,
	}
	c.logger.Info("calling inventory search...", slog.Any("body", req))
	var resp models.InventorySearchResponse
	if err := c.post(ctx, c.bearerClient(ctx, token), inventoryPath, nil, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URN == "" {
		return "", errs.New(errs.KindNotFound, "no inventory resource found with vmId %s", instanceID)
	}
	return resp.Data[0].URN, nil
}

// bearerClient returns an HTTP client that attaches token as a bearer Authorization header.
func (c *Controller) bearerClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

func (c *Controller) post(ctx context.Context, client *http.Client, path string, headers map[string]string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errs.Wrap(errs.KindUnexpected, err, "failed to encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(errs.KindUnexpected, err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errs.Wrap(errs.KindExternalAPI, err, "POST "+path)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Wrap(errs.KindExternalAPI, err, "failed to read response from "+path)
	}
	c.logger.Debug("received response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("body", helpers.Truncate(string(body), logBodyLimit)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errs.New(errs.KindExternalAPI, "POST %s returned %d", path, resp.StatusCode)
	}
	if err = json.Unmarshal(body, out); err != nil {
		return errs.Wrap(errs.KindUnexpected, err, "failed to decode response from "+path)
	}
	return nil
}
