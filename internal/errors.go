package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeNotAuthenticated   ErrorCode = "NOT_AUTHENTICATED"
	ErrCodeSessionInvalid     ErrorCode = "SESSION_INVALID"
	ErrCodeSessionExpired     ErrorCode = "SESSION_EXPIRED"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInsufficientRole   ErrorCode = "INSUFFICIENT_ROLE"
	ErrCodeInvalidAPIKey      ErrorCode = "INVALID_API_KEY"

	ErrCodeDuplicateSerial   ErrorCode = "DUPLICATE_SERIAL"
	ErrCodeDuplicateUsername ErrorCode = "DUPLICATE_USERNAME"

	ErrCodeItemNotFound  ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeAssetNotFound ErrorCode = "ASSET_NOT_FOUND"
	ErrCodeUserNotFound  ErrorCode = "USER_NOT_FOUND"

	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodePersistenceFailure  ErrorCode = "PERSISTENCE_FAILURE"
)

// AppError is the single error shape that crosses the service/transport
// boundary. Services return it for expected failures; the transport layer
// maps it onto a status code and the {success:false, error:...} envelope.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       ErrCodeInsufficientRole,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewDuplicateSerialError names the offending serial so the client can show
// an actionable message. The reference behavior answers 400, not 409.
func NewDuplicateSerialError(serial string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       ErrCodeDuplicateSerial,
		Message:    fmt.Sprintf("An asset with Serial Number %q is already registered.", serial),
		StatusCode: http.StatusBadRequest,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodePersistenceFailure,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid username or password", ErrCodeInvalidCredentials)
	ErrNotAuthenticated   = NewUnauthorizedError("Not authenticated", ErrCodeNotAuthenticated)
	ErrSessionInvalid     = NewUnauthorizedError("Session is invalid or expired", ErrCodeSessionInvalid)
	ErrSessionExpired     = NewUnauthorizedError("Session expired. Please sign in again.", ErrCodeSessionExpired)
	ErrUserInactive       = NewUnauthorizedError("User account is inactive", ErrCodeUserInactive)
	ErrInsufficientRole   = NewForbiddenError("Insufficient permissions")
	ErrInvalidAPIKey      = NewUnauthorizedError("Unauthorized integration access", ErrCodeInvalidAPIKey)

	ErrItemNotFound  = NewNotFoundError("Inventory item not found", ErrCodeItemNotFound)
	ErrAssetNotFound = NewNotFoundError("Asset not found", ErrCodeAssetNotFound)
	ErrUserNotFound  = NewNotFoundError("User not found", ErrCodeUserNotFound)

	ErrDuplicateUsername = &AppError{
		Type:       ErrorTypeConflict,
		Code:       ErrCodeDuplicateUsername,
		Message:    "Username is already taken",
		StatusCode: http.StatusBadRequest,
	}
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
