package controller

import (
	"errors"

	"contentgen/internal/apiclient"
)

// ErrInFlight is returned when a form is submitted while its previous request
// is still outstanding. No request is issued.
var ErrInFlight = errors.New("request already in flight")

// ValidationError is a local precondition failure; the request is never sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// APIError is a structured failure reported by the backend (success=false).
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type TransportError = apiclient.TransportError
