package validation_test

import (
	"testing"

	"github.com/isometry/lw-quarantine-app/internal/errs"
	"github.com/isometry/lw-quarantine-app/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	testCases := []struct {
		Name            string
		Body            string
		ExpectedEventID string
		ExpectedMessage string
	}{
		{
			Name:            "valid",
			Body:            `{"event_id": "evt-123"}`,
			ExpectedEventID: "evt-123",
		},
		{
			Name:            "extra_fields",
			Body:            `{"event_id": "evt-123", "severity": 1}`,
			ExpectedEventID: "evt-123",
		},
		{
			Name:            "empty_body",
			Body:            "",
			ExpectedMessage: validation.MessageInvalidJSON,
		},
		{
			Name:            "malformed_json",
			Body:            `{"event_id": `,
			ExpectedMessage: validation.MessageInvalidJSON,
		},
		{
			Name:            "missing_event_id",
			Body:            `{"id": "evt-123"}`,
			ExpectedMessage: validation.MessageMissingEventID,
		},
		{
			Name:            "empty_event_id",
			Body:            `{"event_id": ""}`,
			ExpectedMessage: validation.MessageMissingEventID,
		},
		{
			Name:            "null_event_id",
			Body:            `{"event_id": null}`,
			ExpectedMessage: validation.MessageMissingEventID,
		},
		{
			Name:            "numeric_event_id",
			Body:            `{"event_id": 123}`,
			ExpectedMessage: validation.MessageMissingEventID,
		},
		{
			Name:            "array_payload",
			Body:            `["evt-123"]`,
			ExpectedMessage: validation.MessageMissingEventID,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			payload, err := validation.ParsePayload([]byte(tc.Body))
			if tc.ExpectedMessage != "" {
				require.Error(t, err)
				assert.Nil(t, payload)
				assert.Equal(t, errs.KindInvalidPayload, errs.KindOf(err))
				assert.Equal(t, tc.ExpectedMessage, errs.PublicMessage(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedEventID, payload.EventID)
		})
	}
}
