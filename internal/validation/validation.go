// Package validation provides parsing and validation of inbound security-event payloads.
package validation

import (
	"bytes"
	"encoding/json"

	"github.com/isometry/lw-quarantine-app/internal/errs"
	"github.com/isometry/lw-quarantine-app/internal/models"
	"github.com/pkg/errors"
)

const (
	// MessageInvalidJSON is returned when the body cannot be decoded.
	MessageInvalidJSON = "Invalid JSON payload."
	// MessageMissingEventID is returned when event_id is absent, empty or not a string.
	MessageMissingEventID = "event_id not found in payload."
)

// ParsePayload decodes body and checks that it carries a non-empty event_id.
func ParsePayload(body []byte) (*models.Payload, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errs.InvalidPayload(MessageInvalidJSON, errors.New("empty request body"))
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		// Valid JSON that is not an object carries no event_id.
		if json.Valid(body) {
			return nil, errs.InvalidPayload(MessageMissingEventID, errors.Wrap(err, "payload is not an object"))
		}
		return nil, errs.InvalidPayload(MessageInvalidJSON, errors.Wrap(err, "failed to decode payload"))
	}

	eventID, _ := raw["event_id"].(string)
	if eventID == "" {
		return nil, errs.InvalidPayload(MessageMissingEventID, nil)
	}
	return &models.Payload{EventID: eventID}, nil
}
