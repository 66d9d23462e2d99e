package handler

import (
	"log/slog"

	"github.com/isometry/lw-quarantine-app/internal/secrets"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithSecretStore sets the store the Lacework credentials are read from on every request.
func WithSecretStore(store secrets.Store) Option {
	return func(h *Handler) {
		h.secrets = store
	}
}

// WithLacework sets the Lacework controller.
func WithLacework(lacework Lacework) Option {
	return func(h *Handler) {
		h.lacework = lacework
	}
}

// WithTagger sets the resource tagger.
func WithTagger(tagger Tagger) Option {
	return func(h *Handler) {
		h.tagger = tagger
	}
}

// WithTagName sets the name of the tag marking a resource as compromised.
func WithTagName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.tagName = name
		}
	}
}

// WithSecretNames overrides the names of the key ID and UAKS secrets.
func WithSecretNames(keyID, uaks string) Option {
	return func(h *Handler) {
		if keyID != "" {
			h.keyIDSecret = keyID
		}
		if uaks != "" {
			h.uaksSecret = uaks
		}
	}
}
