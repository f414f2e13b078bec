package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrRoleIneligible   = errors.New("member does not meet role requirements")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error codes returned in API payloads
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeRoleIneligible   = "ROLE_INELIGIBLE"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

// Validation wraps an aggregated validation failure so callers can still match ErrInvalidInput.
func Validation(message string, cause error) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, &validationError{cause: cause})
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func RoleIneligible(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeRoleIneligible, message, ErrRoleIneligible)
}

func StoreUnavailable(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, CodeStoreUnavailable, message, ErrStoreUnavailable)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}

// FromError resolves any error into an AppError, mapping domain sentinels to their HTTP status.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, err.Error(), err)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, err.Error(), err)
	case errors.Is(err, ErrRoleIneligible):
		return NewAppError(http.StatusUnprocessableEntity, CodeRoleIneligible, err.Error(), err)
	case errors.Is(err, ErrStoreUnavailable):
		return NewAppError(http.StatusServiceUnavailable, CodeStoreUnavailable, "data store unavailable", err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, err.Error(), err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, err.Error(), err)
	}
	return InternalError(err)
}

type validationError struct {
	cause error
}

func (e *validationError) Error() string {
	if e.cause == nil {
		return ErrInvalidInput.Error()
	}
	return ErrInvalidInput.Error() + ": " + e.cause.Error()
}

func (e *validationError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.cause}
}
