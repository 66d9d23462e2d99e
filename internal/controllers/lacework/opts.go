package lacework

import (
	"log/slog"
	"net/http"
)

// WithLogger sets a custom slog.Logger instance for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used for every call. Bearer authentication is layered on top of its transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) {
		c.httpClient = client
	}
}

// WithCSP sets the cloud provider filter applied to inventory searches.
func WithCSP(csp string) Option {
	return func(c *Controller) {
		if csp != "" {
			c.csp = csp
		}
	}
}
