package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes into the portal's failure taxonomy.
type Kind string

const (
	// KindEmptyFallback marks a read that was replaced by an empty collection.
	KindEmptyFallback Kind = "EMPTY_FALLBACK"
	// KindWriteFailure marks a persistence write that did not land.
	KindWriteFailure Kind = "WRITE_FAILURE"
	// KindValidation marks a user-facing rejection of the request content.
	KindValidation Kind = "VALIDATION"
	// KindAuth marks a missing session or a role mismatch.
	KindAuth Kind = "AUTH"
	// KindInternal covers everything else.
	KindInternal Kind = "INTERNAL"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Kind    Kind   `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so that clones and wraps of a
// sentinel satisfy errors.Is against it.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, kind Kind, message string) *Error {
	return &Error{Code: code, Status: status, Kind: kind, Message: message}
}

// Wrap attaches context to an existing error using the sentinel's code, status and kind.
func Wrap(err error, sentinel *Error, message string) *Error {
	if message == "" {
		message = sentinel.Message
	}
	return &Error{Code: sentinel.Code, Status: sentinel.Status, Kind: sentinel.Kind, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrCollectionMissing   = New("COLLECTION_MISSING", http.StatusNotFound, KindEmptyFallback, "collection does not exist")
	ErrCollectionCorrupt   = New("COLLECTION_CORRUPT", http.StatusInternalServerError, KindEmptyFallback, "collection is unreadable")
	ErrCollectionWrite     = New("COLLECTION_WRITE_FAILED", http.StatusInternalServerError, KindWriteFailure, "failed to save collection")
	ErrInvalidCredentials  = New("INVALID_CREDENTIALS", http.StatusUnauthorized, KindValidation, "Invalid email or password.")
	ErrEmailTaken          = New("EMAIL_TAKEN", http.StatusConflict, KindValidation, "An account with this email already exists.")
	ErrAlreadySubmitted    = New("ALREADY_SUBMITTED", http.StatusConflict, KindValidation, "You have already submitted this assignment.")
	ErrSubmissionNotFound  = New("SUBMISSION_NOT_FOUND", http.StatusNotFound, KindValidation, "Submission not found.")
	ErrFileNotFound        = New("FILE_NOT_FOUND", http.StatusNotFound, KindValidation, "file not found")
	ErrValidation          = New("VALIDATION_ERROR", http.StatusBadRequest, KindValidation, "validation failed")
	ErrAuthRequired        = New("AUTH_REQUIRED", http.StatusUnauthorized, KindAuth, "You need to be logged in to view this page.")
	ErrRoleMismatch        = New("ROLE_MISMATCH", http.StatusForbidden, KindAuth, "role not permitted")
	ErrInternal            = New("INTERNAL_ERROR", http.StatusInternalServerError, KindInternal, "internal server error")
	ErrUnsupportedFormat   = New("UNSUPPORTED_FORMAT", http.StatusBadRequest, KindValidation, "unsupported export format")
	ErrServiceNotAvailable = New("SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, KindInternal, "service not configured")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal, "")
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// KindOf reports the taxonomy kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	return KindInternal
}
