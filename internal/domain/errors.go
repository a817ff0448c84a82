package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// UnsupportedMediaError indicates an upload with a declared MIME type
	// outside the category's allow-list
	UnsupportedMediaError struct {
		Message string
	}

	// PayloadTooLargeError indicates an upload exceeding the category's
	// byte ceiling
	PayloadTooLargeError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string         { return e.Message }
func (e *ValidationError) Error() string       { return e.Message }
func (e *UnauthorizedError) Error() string     { return e.Message }
func (e *UnsupportedMediaError) Error() string { return e.Message }
func (e *PayloadTooLargeError) Error() string  { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int         { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int     { return http.StatusUnauthorized }
func (e *UnsupportedMediaError) StatusCode() int { return http.StatusBadRequest }
func (e *PayloadTooLargeError) StatusCode() int  { return http.StatusRequestEntityTooLarge }

// Sentinel errors - use with errors.Is()
var (
	// ErrValidation covers malformed or missing input. Nothing is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSection means a section key outside the document's
	// allow-list was supplied. Storage is never touched.
	ErrInvalidSection = errors.New("invalid section")

	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedMedia rejects an upload before any store contact.
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrPayloadTooLarge rejects an upload before any store contact.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrPersistence means the document store was unreachable or rejected a
	// write. The previously stored state is unchanged.
	ErrPersistence = errors.New("persistence failure")

	// ErrUnauthorized indicates a missing or invalid admin session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a valid session lacking admin rights.
	ErrForbidden = errors.New("forbidden")
)

func (e *ValidationError) Is(target error) bool       { return target == ErrValidation }
func (e *NotFoundError) Is(target error) bool         { return target == ErrNotFound }
func (e *UnauthorizedError) Is(target error) bool     { return target == ErrUnauthorized }
func (e *UnsupportedMediaError) Is(target error) bool { return target == ErrUnsupportedMedia }
func (e *PayloadTooLargeError) Is(target error) bool  { return target == ErrPayloadTooLarge }
