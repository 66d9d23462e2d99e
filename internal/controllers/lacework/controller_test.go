package lacework_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isometry/lw-quarantine-app/internal/controllers/lacework"
	"github.com/isometry/lw-quarantine-app/internal/errs"
	"github.com/isometry/lw-quarantine-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, handler http.HandlerFunc) *lacework.Controller {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ctl, err := lacework.NewController(srv.URL, lacework.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return ctl
}

func TestBaseURL(t *testing.T) {
	testCases := []struct {
		Name     string
		Tenant   string
		Expected string
	}{
		{
			Name:     "hostname",
			Tenant:   "partner-demo.lacework.net",
			Expected: "https://partner-demo.lacework.net",
		},
		{
			Name:     "full_url",
			Tenant:   "http://127.0.0.1:8080/",
			Expected: "http://127.0.0.1:8080",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, lacework.BaseURL(tc.Tenant))
		})
	}
}

func TestNewController_MissingTenant(t *testing.T) {
	_, err := lacework.NewController("  ")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	testCases := []struct {
		Name          string
		Status        int
		Body          string
		ExpectedToken string
		ExpectedKind  errs.Kind
	}{
		{
			Name:          "token_returned",
			Status:        http.StatusCreated,
			Body:          `{"token": "tok-abc", "expiresAt": "2026-10-19T12:00:00Z"}`,
			ExpectedToken: "tok-abc",
		},
		{
			Name:         "missing_token",
			Status:       http.StatusOK,
			Body:         `{"expiresAt": "2026-10-19T12:00:00Z"}`,
			ExpectedKind: errs.KindAuth,
		},
		{
			Name:         "unauthorized",
			Status:       http.StatusUnauthorized,
			Body:         `{"message": "invalid key"}`,
			ExpectedKind: errs.KindExternalAPI,
		},
		{
			Name:         "malformed_body",
			Status:       http.StatusOK,
			Body:         `not-json`,
			ExpectedKind: errs.KindUnexpected,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctl := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v2/access/tokens", r.URL.Path)
				assert.Equal(t, "u1", r.Header.Get(lacework.UAKSHeader))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Empty(t, r.Header.Get("Authorization"))

				var req models.TokenRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "k1", req.KeyID)

				w.WriteHeader(tc.Status)
				_, _ = w.Write([]byte(tc.Body))
			})

			token, err := ctl.Authenticate(t.Context(), "k1", "u1")
			if tc.ExpectedToken == "" {
				require.Error(t, err)
				assert.Equal(t, tc.ExpectedKind, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedToken, token)
		})
	}
}

func TestAuthenticate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	ctl, err := lacework.NewController(srv.URL, lacework.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	srv.Close()

	_, err = ctl.Authenticate(t.Context(), "k1", "u1")
	require.Error(t, err)
	assert.Equal(t, errs.KindExternalAPI, errs.KindOf(err))
}

func TestSearchEvents(t *testing.T) {
	testCases := []struct {
		Name             string
		Status           int
		Body             string
		ExpectedInstance string
		ExpectedKind     errs.Kind
	}{
		{
			Name:             "instance_found",
			Status:           http.StatusOK,
			Body:             `{"data": [{"srcEvent": {"machine_tags": {"InstanceId": "i-0abc"}}}]}`,
			ExpectedInstance: "i-0abc",
		},
		{
			Name:         "empty_data",
			Status:       http.StatusOK,
			Body:         `{"data": []}`,
			ExpectedKind: errs.KindNotFound,
		},
		{
			Name:         "missing_machine_tags",
			Status:       http.StatusOK,
			Body:         `{"data": [{"srcEvent": {}}]}`,
			ExpectedKind: errs.KindNotFound,
		},
		{
			Name:         "server_error",
			Status:       http.StatusInternalServerError,
			Body:         `{}`,
			ExpectedKind: errs.KindExternalAPI,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctl := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v2/Events/search", r.URL.Path)
				assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

				var req models.SearchRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, []models.Filter{{Field: "id", Expression: "eq", Value: "evt-123"}}, req.Filters)
				assert.Equal(t, []string{"srcEvent"}, req.Returns)
				assert.Empty(t, req.CSP)

				w.WriteHeader(tc.Status)
				_, _ = w.Write([]byte(tc.Body))
			})

			instanceID, err := ctl.SearchEvents(t.Context(), "tok-abc", "evt-123")
			if tc.ExpectedInstance == "" {
				require.Error(t, err)
				assert.Equal(t, tc.ExpectedKind, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedInstance, instanceID)
		})
	}
}

func TestSearchInventory(t *testing.T) {
	testCases := []struct {
		Name         string
		Status       int
		Body         string
		ExpectedURN  string
		ExpectedKind errs.Kind
	}{
		{
			Name:        "urn_found",
			Status:      http.StatusOK,
			Body:        `{"data": [{"urn": "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Compute/virtualMachines/vm1"}]}`,
			ExpectedURN: "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Compute/virtualMachines/vm1",
		},
		{
			Name:         "empty_data",
			Status:       http.StatusOK,
			Body:         `{"data": []}`,
			ExpectedKind: errs.KindNotFound,
		},
		{
			Name:         "forbidden",
			Status:       http.StatusForbidden,
			Body:         `{}`,
			ExpectedKind: errs.KindExternalAPI,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctl := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v2/Inventory/search", r.URL.Path)
				assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

				var req models.SearchRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, []models.Filter{{Field: "resourceConfig.vmId", Expression: "eq", Value: "i-0abc"}}, req.Filters)
				assert.Equal(t, []string{"urn"}, req.Returns)
				assert.Equal(t, "Azure", req.CSP)

				w.WriteHeader(tc.Status)
				_, _ = w.Write([]byte(tc.Body))
			})

			urn, err := ctl.SearchInventory(t.Context(), "tok-abc", "i-0abc")
			if tc.ExpectedURN == "" {
				require.Error(t, err)
				assert.Equal(t, tc.ExpectedKind, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedURN, urn)
		})
	}
}
