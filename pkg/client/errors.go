package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")

	// ErrQuotaCooldown is wrapped by the TransportError returned while the
	// shared quota tracker refuses requests.
	ErrQuotaCooldown = errors.New("quota cool-down active")
)

// ErrorClass represents a classification of transport errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassQuota represents 429 responses and local quota cool-downs.
	ErrorClassQuota ErrorClass = "quota"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// TransportError is returned when a request could not be completed: the
// connection failed, timed out, or the service answered with a non-2xx
// status.
type TransportError struct {
	Endpoint   string
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("places %s error (endpoint %s, status %d): %s: %v",
			e.ErrorClass, e.Endpoint, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("places %s error (endpoint %s, status %d): %s",
		e.ErrorClass, e.Endpoint, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the request may succeed.
func (e *TransportError) Retryable() bool {
	if errors.Is(e.Err, ErrQuotaCooldown) {
		return false
	}
	return shouldRetry(e.ErrorClass)
}

// DecodeError is returned when a response body does not match the expected
// schema.
type DecodeError struct {
	Endpoint string
	Body     []byte
	Err      error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("places decode error (endpoint %s): %v", e.Endpoint, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a retryable TransportError.
func IsRetryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable()
	}
	return false
}

// ClassOf returns the error class of err, or "" if err is not a TransportError.
func ClassOf(err error) ErrorClass {
	var te *TransportError
	if errors.As(err, &te) {
		return te.ErrorClass
	}
	return ""
}

// shouldRetry determines if an error should be retried based on its classification.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassClient:
		// 4xx errors will fail the same way again
		return false
	case ErrorClassServer, ErrorClassQuota, ErrorClassNetwork:
		return true
	default:
		return false
	}
}

// classifyStatus maps an HTTP status code to an error class.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode == 429:
		return ErrorClassQuota
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		// 1xx/3xx that resty did not follow
		return ErrorClassClient
	}
}
