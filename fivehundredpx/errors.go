package fivehundredpx

import (
	"errors"
	"net/http"
)

// ErrorKind classifies an APIError
type ErrorKind int

const (
	// KindConfig indicates missing credentials or an unusable option
	KindConfig ErrorKind = iota + 1
	// KindTransport indicates no response was obtained
	KindTransport
	// KindParse indicates a 200 response whose body is not valid JSON
	KindParse
	// KindResponse indicates a non-200 response
	KindResponse
)

// Sentinel errors matched by errors.Is against an *APIError of the same kind
var (
	ErrConfig    = errors.New("500px: invalid client configuration")
	ErrTransport = errors.New("500px: transport failure")
	ErrParse     = errors.New("500px: invalid JSON response")
	ErrResponse  = errors.New("500px: unsuccessful response")
)

// String returns a short name for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindConfig:
		return ErrConfig
	case KindTransport:
		return ErrTransport
	case KindParse:
		return ErrParse
	case KindResponse:
		return ErrResponse
	default:
		return nil
	}
}

// APIError is the single error type returned by the client.
// StatusCode and URL are set once a request has been built or answered.
type APIError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	URL        string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *APIError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.Kind == KindResponse && e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates rejected credentials
func (e *APIError) IsUnauthorized() bool {
	return e.Kind == KindResponse &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

func configError(msg string) *APIError {
	return &APIError{Kind: KindConfig, Message: msg}
}
