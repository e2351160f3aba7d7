package services

import (
	"errors"
	"maps"

	"github.com/upb/project-manager/repositories"
)

// ErrorType classifies a DomainError; handlers map it to an HTTP status.
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeUnavailable  ErrorType = "unavailable"
)

// DomainError is the error every service method returns. Message is safe to
// show to clients; Err is the cause and only ever reaches the logs.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError with the same type and message, so a
// wrapped or detailed copy of a sentinel still matches the sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Type == t.Type && e.Message == t.Message
}

// WithDetail returns a copy of e carrying key. The receiver is not modified,
// so it is safe on the shared sentinels.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	out := *e
	out.Details = maps.Clone(e.Details)
	if out.Details == nil {
		out.Details = make(map[string]interface{}, 1)
	}
	out.Details[key] = value
	return &out
}

func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{Type: errType, Message: message, Err: err}
}

var (
	ErrUserNotFound    = NewDomainError(ErrorTypeNotFound, "User not found", nil)
	ErrProjectNotFound = NewDomainError(ErrorTypeNotFound, "Project not found", nil)

	ErrInvalidRole         = NewDomainError(ErrorTypeValidation, "invalid role", nil)
	ErrInvalidStatus       = NewDomainError(ErrorTypeValidation, "invalid project status", nil)
	ErrPasswordTooLong     = NewDomainError(ErrorTypeValidation, "password must be at most 72 bytes", nil)
	ErrDuplicateEmail      = NewDomainError(ErrorTypeValidation, "Email is already taken", nil)
	ErrDuplicateAssignment = NewDomainError(ErrorTypeValidation, "User is already assigned to this project", nil)

	ErrInvalidCredentials = NewDomainError(ErrorTypeUnauthorized, "Invalid credentials", nil)
	ErrForbidden          = NewDomainError(ErrorTypeForbidden, "access forbidden", nil)
	ErrUserInUse          = NewDomainError(ErrorTypeConflict, "User is referenced by existing projects", nil)
)

// GetErrorType returns the type of the outermost DomainError in err's chain,
// or "" when there is none.
func GetErrorType(err error) ErrorType {
	if de := asDomain(err); de != nil {
		return de.Type
	}
	return ""
}

// GetErrorDetails returns the details of the outermost DomainError, or nil.
func GetErrorDetails(err error) map[string]interface{} {
	if de := asDomain(err); de != nil {
		return de.Details
	}
	return nil
}

func IsNotFoundError(err error) bool     { return GetErrorType(err) == ErrorTypeNotFound }
func IsValidationError(err error) bool   { return GetErrorType(err) == ErrorTypeValidation }
func IsUnauthorizedError(err error) bool { return GetErrorType(err) == ErrorTypeUnauthorized }
func IsForbiddenError(err error) bool    { return GetErrorType(err) == ErrorTypeForbidden }
func IsConflictError(err error) bool     { return GetErrorType(err) == ErrorTypeConflict }
func IsInternalError(err error) bool     { return GetErrorType(err) == ErrorTypeInternal }
func IsUnavailableError(err error) bool  { return GetErrorType(err) == ErrorTypeUnavailable }

func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}

// WrapUnavailable marks a backing store failure. Clients get a 503 and the
// cause is only logged.
func WrapUnavailable(message string, err error) error {
	return NewDomainError(ErrorTypeUnavailable, message, err)
}

func asDomain(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// fromStore maps a repository error. ErrNotFound becomes notFound; every
// other failure is unavailable, never not found.
func fromStore(op string, err error, notFound *DomainError) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, repositories.ErrNotFound):
		return notFound
	default:
		return WrapUnavailable(op, err)
	}
}
