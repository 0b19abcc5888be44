package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"

	// Workflow errors
	ErrorTypeConflictCheckUnavailable ErrorType = "CONFLICT_CHECK_UNAVAILABLE"
	ErrorTypeHydrationFailed          ErrorType = "HYDRATION_FAILED"
	ErrorTypeMediaUploadFailed        ErrorType = "MEDIA_UPLOAD_FAILED"
	ErrorTypeSubmissionFailed         ErrorType = "SUBMISSION_FAILED"
	ErrorTypeDraftPersistence         ErrorType = "DRAFT_PERSISTENCE"

	// Infrastructure errors
	ErrorTypeInternal     ErrorType = "INTERNAL"
	ErrorTypeNetwork      ErrorType = "NETWORK"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
)

// FinalPhotoIndex is the step index reported when the final photo upload fails.
const FinalPhotoIndex = -1

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// captureStackTrace captures the current stack trace
func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

// Constructor functions for common error types

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		StackTrace: captureStackTrace(),
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
		StackTrace: captureStackTrace(),
	}
}

// NewConflictCheckUnavailableError signals that the title conflict check could
// not be completed. It must never be interpreted as "no conflict".
func NewConflictCheckUnavailableError(err error) *AppError {
	return &AppError{
		Type:       ErrorTypeConflictCheckUnavailable,
		Message:    "title conflict check is unavailable",
		Cause:      err,
		HTTPStatus: http.StatusServiceUnavailable,
		StackTrace: captureStackTrace(),
	}
}

// NewHydrationFailedError signals that an existing recipe could not be fetched
// for editing
func NewHydrationFailedError(id string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeHydrationFailed,
		Message:    fmt.Sprintf("failed to load existing recipe %q", id),
		Cause:      err,
		Details:    map[string]interface{}{"recipeId": id},
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewMediaUploadError identifies the step whose media failed to upload.
// stepIndex is zero-based; FinalPhotoIndex marks the final recipe photo.
func NewMediaUploadError(stepIndex int, err error) *AppError {
	msg := fmt.Sprintf("media upload failed for step %d", stepIndex+1)
	if stepIndex == FinalPhotoIndex {
		msg = "media upload failed for the final photo"
	}
	return &AppError{
		Type:       ErrorTypeMediaUploadFailed,
		Message:    msg,
		Cause:      err,
		Details:    map[string]interface{}{"stepIndex": stepIndex},
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewSubmissionFailedError creates a submission failure error
func NewSubmissionFailedError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeSubmissionFailed,
		Message:    fmt.Sprintf("recipe %s failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewDraftPersistenceError signals that the offline fallback itself failed,
// meaning the recipe is not saved anywhere.
func NewDraftPersistenceError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeDraftPersistence,
		Message:    fmt.Sprintf("draft store operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewNetworkError creates a network error
func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		StackTrace: captureStackTrace(),
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsConflictCheckUnavailable checks if the title conflict check failed
func IsConflictCheckUnavailable(err error) bool {
	return IsType(err, ErrorTypeConflictCheckUnavailable)
}

// IsHydrationFailed checks if loading an existing recipe failed
func IsHydrationFailed(err error) bool {
	return IsType(err, ErrorTypeHydrationFailed)
}

// IsMediaUploadFailed checks if a step's media upload failed
func IsMediaUploadFailed(err error) bool {
	return IsType(err, ErrorTypeMediaUploadFailed)
}

// IsSubmissionFailed checks if the create/update call failed
func IsSubmissionFailed(err error) bool {
	return IsType(err, ErrorTypeSubmissionFailed)
}

// IsDraftPersistence checks if a draft store read/write failed
func IsDraftPersistence(err error) bool {
	return IsType(err, ErrorTypeDraftPersistence)
}

// MediaUploadStepIndex extracts the failed step index from a media upload
// error. The second return is false when err is not a media upload failure.
func MediaUploadStepIndex(err error) (int, bool) {
	appErr := GetAppError(err)
	if appErr == nil || appErr.Type != ErrorTypeMediaUploadFailed {
		return 0, false
	}
	idx, ok := appErr.Details["stepIndex"].(int)
	return idx, ok
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
