// Package apierrors defines the closed error taxonomy shared by all gateway
// clients. Transport failures and non-2xx responses are classified into one
// of five types so callers can branch with errors.As instead of inspecting
// status codes.
package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// NetworkError wraps a transport failure: no HTTP response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError covers 401 and 403. Any occurrence tears down the session.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication rejected: %s", e.Message)
	}
	return fmt.Sprintf("authentication rejected (status %d)", e.Status)
}

// ValidationError covers 400 and 422. Field messages are surfaced verbatim.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return "validation failed"
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("not found: %s", e.Message)
	}
	return "not found"
}

// ServerError covers 5xx and any status the taxonomy has no better class for.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

// errorBody is the shape backend services use for error responses.
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// FromResponse classifies a non-2xx response into the taxonomy. The body is
// parsed best-effort; an unparseable body just leaves messages empty.
func FromResponse(status int, body []byte) error {
	var parsed errorBody
	if len(body) > 0 {
		if err := json.Unmarshal(body, &parsed); err != nil {
			parsed = errorBody{}
		}
	}
	message := parsed.Message
	if message == "" {
		message = parsed.Error
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Status: status, Message: message}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &ValidationError{Message: message, Fields: parsed.Errors}
	case status == http.StatusNotFound:
		return &NotFoundError{Message: message}
	default:
		return &ServerError{Status: status, Message: message}
	}
}

// IsAuth reports whether err is (or wraps) an AuthError.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
