package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMalformedURL is returned when a story URL is not an absolute URL.
	ErrMalformedURL = errors.New("malformed url")
	// ErrNotAuthenticated is returned when an operation needs a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidData is returned when required input is missing.
	ErrInvalidData = errors.New("invalid data")
)

// NetworkError reports a request that never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError reports a response with a non-2xx status.
type APIError struct {
	Status  int
	Title   string
	Message string
}

func (e *APIError) Error() string {
	title := e.Title
	if title == "" {
		title = http.StatusText(e.Status)
	}
	if e.Message == "" {
		return fmt.Sprintf("api error %d %s", e.Status, title)
	}
	return fmt.Sprintf("api error %d %s: %s", e.Status, title, e.Message)
}

// AuthError is an APIError caused by rejected credentials or an invalid
// token. errors.As with an *APIError target matches it as well.
type AuthError struct {
	APIError
}

func (e *AuthError) Error() string {
	return "auth: " + e.APIError.Error()
}

func (e *AuthError) Unwrap() error {
	return &e.APIError
}

// NewAPIError builds the error matching status, promoting 401 to AuthError.
func NewAPIError(status int, title, message string) error {
	apiErr := APIError{Status: status, Title: title, Message: message}
	if status == http.StatusUnauthorized {
		return &AuthError{APIError: apiErr}
	}
	return &apiErr
}
