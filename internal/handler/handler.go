// Package handler implements the quarantine workflow: resolve the VM behind a Lacework event and tag it as compromised.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
	"github.com/isometry/lw-quarantine-app/internal/models"
	"github.com/isometry/lw-quarantine-app/internal/secrets"
	"github.com/isometry/lw-quarantine-app/internal/validation"
	"github.com/pkg/errors"
)

const (
	// DefaultTagName is the tag applied when none is configured.
	DefaultTagName = "malware"
	// TagValue is the value written under the configured tag name.
	TagValue = "true"
	// DefaultKeyIDSecret names the secret holding the Lacework API key ID.
	DefaultKeyIDSecret = "lwapi-secrets"
	// DefaultUAKSSecret names the secret holding the Lacework API secret.
	DefaultUAKSSecret = "x-lw-uaks"
)

// Lacework resolves an event identifier to a resource URN.
type Lacework interface {
	Authenticate(ctx context.Context, keyID, uaks string) (string, error)
	SearchEvents(ctx context.Context, token, eventID string) (string, error)
	SearchInventory(ctx context.Context, token, instanceID string) (string, error)
}

// Tagger merges a tag into the tag set of a cloud resource.
type Tagger interface {
	TagResource(ctx context.Context, urn, name, value string) (map[string]*string, error)
}

// Option is a functional option used to configure a Handler.
type Option func(*Handler)

// Handler runs one quarantine per request. Its collaborators are constructed once per process and shared across requests.
type Handler struct {
	logger      *slog.Logger
	secrets     secrets.Store
	lacework    Lacework
	tagger      Tagger
	tagName     string
	keyIDSecret string
	uaksSecret  string
}

// NewQuarantineHandler returns a Handler. The secret store, Lacework controller and tagger are required.
func NewQuarantineHandler(options ...Option) (*Handler, error) {
	_inst := &Handler{
		logger:      helpers.NewNoopLogger(),
		tagName:     DefaultTagName,
		keyIDSecret: DefaultKeyIDSecret,
		uaksSecret:  DefaultUAKSSecret,
	}
	for _, opt := range options {
		opt(_inst)
	}

	switch {
	case _inst.secrets == nil:
		return nil, errors.New("missing secret store")
	case _inst.lacework == nil:
		return nil, errors.New("missing Lacework controller")
	case _inst.tagger == nil:
		return nil, errors.New("missing resource tagger")
	}
	return _inst, nil
}

// Process runs the workflow for a single request body and returns the response to send.
// The returned error is the classified failure, if any, for the caller's logs; the response already reflects it.
func (h *Handler) Process(ctx context.Context, body []byte) (models.Response, error) {
	logger := h.logger.With(slog.String("invocationId", uuid.NewString()))

	urn, err := h.quarantine(ctx, logger, body)
	if err != nil {
		return ErrorResponse(logger, err), err
	}
	return jsonResponse(http.StatusOK, models.SuccessBody{InstanceID: urn, Message: MessageTagged}), nil
}

func (h *Handler) quarantine(ctx context.Context, logger *slog.Logger, body []byte) (string, error) {
	payload, err := validation.ParsePayload(body)
	if err != nil {
		return "", err
	}
	logger = logger.With(slog.String("eventId", payload.EventID))
	logger.Info("extracted event_id")

	keyID, err := h.secrets.GetSecret(ctx, h.keyIDSecret)
	if err != nil {
		return "", err
	}
	uaks, err := h.secrets.GetSecret(ctx, h.uaksSecret)
	if err != nil {
		return "", err
	}
	logger.Info("successfully retrieved credentials")

	token, err := h.lacework.Authenticate(ctx, keyID, uaks)
	if err != nil {
		return "", err
	}
	logger.Info("successfully obtained bearer token")

	instanceID, err := h.lacework.SearchEvents(ctx, token, payload.EventID)
	if err != nil {
		return "", err
	}
	logger = logger.With(slog.String("instanceId", instanceID))
	logger.Info("extracted InstanceId")

	urn, err := h.lacework.SearchInventory(ctx, token, instanceID)
	if err != nil {
		return "", err
	}
	logger = logger.With(slog.String("urn", urn))
	logger.Info("resolved resource URN")

	if _, err = h.tagger.TagResource(ctx, urn, h.tagName, TagValue); err != nil {
		return "", err
	}
	logger.Info("tag added successfully", slog.String("tag", h.tagName))
	return urn, nil
}

func jsonResponse(status int, body any) models.Response {
	b, _ := json.Marshal(body)
	return models.Response{
		Body:       string(b),
		Headers:    map[string]string{"Content-Type": "application/json"},
		StatusCode: status,
	}
}
