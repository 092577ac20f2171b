package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeExternalService    Code = "EXTERNAL_SERVICE_ERROR"
	CodeSubscriptionNeeded Code = "SUBSCRIPTION_REQUIRED"
)

const (
	CodeAlreadyInBand      Code = "ALREADY_IN_BAND"
	CodeAdminLimitReached  Code = "ADMIN_LIMIT_REACHED"
	CodeInvitationExpired  Code = "INVITATION_EXPIRED"
	CodeInvitationUsed     Code = "INVITATION_ALREADY_USED"
	CodeNotBandAdmin       Code = "NOT_BAND_ADMIN"
	CodeCountryRestricted  Code = "COUNTRY_RESTRICTED"
	CodeUnsupportedProfile Code = "UNSUPPORTED_PROFILE"
)

// AppError is a rule or request failure that maps directly to an HTTP response.
type AppError struct {
	Code     Code
	Message  string
	Details  any
	HTTPCode int
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode, Err: err}
}

// WithDetails returns a copy so predefined errors are never mutated.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func Validation(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternal, "Internal server error", http.StatusInternalServerError)
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an *AppError with the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

var (
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrUserNotFound       = NotFound("User")
	ErrProfileNotFound    = NotFound("Profile")
	ErrBandNotFound       = NotFound("Band")
	ErrInvitationNotFound = NotFound("Invitation")
	ErrMembershipNotFound = NotFound("Band membership")
)
