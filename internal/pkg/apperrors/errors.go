package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrTooManyRequests  = errors.New("too many requests")
)

// User errors
var (
	ErrUserNotFound          = fmt.Errorf("user %w", ErrResourceNotFound)
	ErrEmailAlreadyExists    = fmt.Errorf("email: %w", ErrResourceAlreadyExists)
	ErrUsernameAlreadyExists = fmt.Errorf("username: %w", ErrResourceAlreadyExists)
)

// Study data errors
var (
	ErrUploadNotFound  = fmt.Errorf("upload %w", ErrResourceNotFound)
	ErrQuizNotFound    = fmt.Errorf("quiz %w", ErrResourceNotFound)
	ErrSessionNotFound = fmt.Errorf("study session %w", ErrResourceNotFound)
	ErrGoalNotFound    = fmt.Errorf("goal %w", ErrResourceNotFound)
)

// Content pipeline errors
var (
	// ErrUnsupportedType is returned before any bytes are read
	ErrUnsupportedType = errors.New("unsupported content type")
	// ErrExtraction covers unreadable, corrupt or empty source material
	ErrExtraction = errors.New("content extraction failed")
	// ErrGeneration covers transport, provider and timeout failures of a model call
	ErrGeneration = errors.New("content generation failed")
	// ErrMalformedResponse means the model output was not parseable JSON
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrResponseValidation means the model output parsed but broke the expected shape
	ErrResponseValidation = errors.New("model response failed validation")
)

// ResponseValidationError identifies the first offending item of a model batch.
// Index is -1 when the problem concerns the batch as a whole.
type ResponseValidationError struct {
	Index  int
	Reason string
}

func (e *ResponseValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid model response: %s", e.Reason)
	}
	return fmt.Sprintf("invalid question at index %d: %s", e.Index, e.Reason)
}

func (e *ResponseValidationError) Unwrap() error {
	return ErrResponseValidation
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewUnsupportedTypeError names the rejected type in the message
func NewUnsupportedTypeError(kind, mimeType string) error {
	return &CustomError{
		Err:     ErrUnsupportedType,
		Message: fmt.Sprintf("unsupported content type %q (%s)", mimeType, kind),
	}
}

// NewExtractionError wraps the underlying read/decode failure, if any
func NewExtractionError(reason string, cause error) error {
	msg := "content extraction failed: " + reason
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &CustomError{Err: ErrExtraction, Message: msg}
}

// NewGenerationError wraps a failed model call
func NewGenerationError(cause error) error {
	return &CustomError{Err: ErrGeneration, Message: fmt.Sprintf("content generation failed: %v", cause)}
}

// NewMalformedResponseError wraps a JSON decode failure of model output
func NewMalformedResponseError(cause error) error {
	return &CustomError{Err: ErrMalformedResponse, Message: fmt.Sprintf("malformed model response: %v", cause)}
}

// NewDuplicateError reports an already existing resource, details point at it
func NewDuplicateError(message string, details map[string]interface{}) error {
	return (&CustomError{Err: ErrResourceAlreadyExists, Message: message}).WithDetails(details)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// DetailsOf returns the details of the first CustomError in the chain
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}

// MessageOf returns the message of the first CustomError in the chain, or fallback
func MessageOf(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
