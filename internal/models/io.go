// Package models provides the core data structures for handling webhook requests and responses.
package models

// Request represents an incoming client request containing a body and associated headers.
type Request struct {
	Body    string
	Headers map[string]string
}

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}

// Payload is the inbound security-event notification.
type Payload struct {
	EventID string `json:"event_id"`
}

// SuccessBody is returned once the resource has been tagged.
type SuccessBody struct {
	InstanceID string `json:"InstanceId"`
	Message    string `json:"message"`
}

// ErrorBody is returned for every failure. Message is one of a fixed set of client-facing strings.
type ErrorBody struct {
	Error string `json:"error"`
}
