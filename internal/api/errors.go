package api

import (
	"errors"
)

// Kind classifies an API failure for the caller's recovery policy.
type Kind int

const (
	// KindUnknown is a failure that fits no other class.
	KindUnknown Kind = iota
	// KindNetwork is a transport failure with no HTTP response (DNS, timeout).
	KindNetwork
	// KindServer is an HTTP >= 500 response, normalized to hide backend detail.
	KindServer
	// KindAuth is a final authentication failure after the refresh policy ran.
	KindAuth
	// KindBusiness is a 4xx or an envelope with success=false; carries the
	// backend's human-readable message.
	KindBusiness
	// KindValidation is a client-side validation failure; the request was
	// never sent.
	KindValidation
)

// Error is the typed failure returned by the API client and the auth
// lifecycle. Message is safe to show to the user; Fields, when present,
// maps form field names to per-field messages.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// AsError extracts an *Error from err, if it carries one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthError reports whether err is a final authentication failure.
func IsAuthError(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindAuth
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindNetwork
}
