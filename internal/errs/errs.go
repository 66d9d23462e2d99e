// Package errs defines the failure classes raised while quarantining a resource.
// Every step returns an *Error; the handler maps its Kind to a client response at a single boundary.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates failure classes.
type Kind int

const (
	// KindUnexpected covers anything not classified below.
	KindUnexpected Kind = iota
	// KindInvalidPayload is malformed JSON or a missing event_id.
	KindInvalidPayload
	// KindSecretRetrieval is a missing, empty or unreadable secret.
	KindSecretRetrieval
	// KindAuth is a token exchange response without a token.
	KindAuth
	// KindExternalAPI is a transport failure or non-2xx response from a remote API.
	KindExternalAPI
	// KindNotFound is a search response without the expected record.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPayload:
		return "invalid_payload"
	case KindSecretRetrieval:
		return "secret_retrieval"
	case KindAuth:
		return "auth"
	case KindExternalAPI:
		return "external_api"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Public is safe to return to the caller. Only set for KindInvalidPayload.
	Public string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns a classified error with a formatted cause.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Cause: errors.Errorf(format, args...)}
}

// Wrap classifies err, annotating it with message. A nil err yields nil.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Cause: errors.Wrap(err, message)}
}

// InvalidPayload returns a KindInvalidPayload error whose public message is returned to the caller verbatim.
func InvalidPayload(public string, cause error) error {
	if cause == nil {
		cause = errors.New(public)
	}
	return &Error{Kind: KindInvalidPayload, Public: public, Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// PublicMessage returns the caller-safe message carried by err, if any.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Public
	}
	return ""
}
