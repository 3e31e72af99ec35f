package models

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInProgress is returned when a session already has a submission in flight.
	ErrSubmissionInProgress = errors.New("submission already in progress")

	// ErrUnknownLabel marks a verification label outside the canonical set.
	ErrUnknownLabel = errors.New("unrecognized verification label")
)

// ValidationError reports missing user input. It is raised before any network I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EncodingError reports a document that could not be converted to base64.
type EncodingError struct {
	Document string
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %s: %v", e.Document, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports an endpoint address that was never set.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("API URL not configured (%s)", e.Setting)
}

// ServiceError carries a non-success HTTP status returned by a remote endpoint.
type ServiceError struct {
	Endpoint   string
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// TransportError wraps a failure to reach a remote endpoint at all.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a well-formed lookup response without a report in it.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "No results found"
}
