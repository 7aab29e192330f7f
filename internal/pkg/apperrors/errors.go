// Package apperrors defines the error taxonomy surfaced by the API client.
//
// Every failed call resolves to exactly one sentinel so callers can branch on
// errors.Is without inspecting HTTP status codes themselves.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure class.
var (
	// ErrAuthentication covers missing, expired or rejected credentials (401).
	ErrAuthentication = errors.New("authentication required")
	// ErrPermissionDenied covers authenticated-but-forbidden access (403).
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound covers missing resources (404).
	ErrNotFound = errors.New("resource not found")
	// ErrValidation covers rejected input (400, 422).
	ErrValidation = errors.New("validation failed")
	// ErrConflict covers duplicate-resource rejections (409).
	ErrConflict = errors.New("conflict")
	// ErrRateLimited covers throttled requests (429).
	ErrRateLimited = errors.New("rate limited")
	// ErrServer covers backend failures (5xx).
	ErrServer = errors.New("server error")
	// ErrNetwork covers requests that never reached the server.
	ErrNetwork = errors.New("network error")
)

// APIError is the single error value produced for a failed API call. It keeps
// the HTTP status, the best-effort human-readable message from the response
// body, and unwraps to the sentinel matching the status.
type APIError struct {
	Status  int
	Message string
	// Fields holds per-field validation messages for 422 responses.
	Fields map[string]string
	Err    error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Unwrap exposes the class sentinel for errors.Is.
func (e *APIError) Unwrap() error {
	return e.Err
}

// FromStatus promotes an HTTP status into an APIError carrying the
// server-provided message, classified under the matching sentinel.
func FromStatus(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{Status: status, Message: message, Err: classify(status)}
}

// NewNetworkError wraps a transport failure that produced no response.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("request failed: %v", err),
		Err:     fmt.Errorf("%w: %w", ErrNetwork, err),
	}
}

func classify(status int) error {
	switch {
	case status == 401:
		return ErrAuthentication
	case status == 403:
		return ErrPermissionDenied
	case status == 404:
		return ErrNotFound
	case status == 409:
		return ErrConflict
	case status == 422 || status == 400:
		return ErrValidation
	case status == 429:
		return ErrRateLimited
	case status >= 500:
		return ErrServer
	default:
		return fmt.Errorf("unexpected status %d", status)
	}
}

// FieldErrors returns per-field validation messages when err carries any.
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// Recoverable reports whether the user can act on the failure themselves
// (retry, re-authenticate, correct input). Every client-side failure class
// is recoverable; the distinction only drives messaging.
func Recoverable(err error) bool {
	return err != nil
}
