package models

// Filter is a single Lacework search filter.
type Filter struct {
	Field      string `json:"field"`
	Expression string `json:"expression"`
	Value      string `json:"value"`
}

// TokenRequest is the body of an access token request.
type TokenRequest struct {
	KeyID string `json:"keyId"`
}

// TokenResponse is the body returned by the access token endpoint.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// SearchRequest is the body of an Events or Inventory search.
type SearchRequest struct {
	Filters []Filter `json:"filters"`
	Returns []string `json:"returns"`
	CSP     string   `json:"csp,omitempty"`
}

// EventSearchResponse holds the fields consumed from an Events search.
type EventSearchResponse struct {
	Data []struct {
		SrcEvent *struct {
			MachineTags *struct {
				InstanceID string `json:"InstanceId"`
			} `json:"machine_tags"`
		} `json:"srcEvent"`
	} `json:"data"`
}

// InventorySearchResponse holds the fields consumed from an Inventory search.
type InventorySearchResponse struct {
	Data []struct {
		URN string `json:"urn"`
	} `json:"data"`
}
