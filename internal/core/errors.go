// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrConflict     = errors.New("resource already exists")
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
	ErrTokenInvalid = errors.New("token invalid")
)

// Kind is the transport-neutral classification of a domain failure.
type Kind string

const (
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindForbidden        Kind = "FORBIDDEN"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindInvalidState     Kind = "INVALID_STATE"
	KindValidationFailed Kind = "VALIDATION_FAILED"
	KindInternal         Kind = "INTERNAL"
)

// KindOf classifies err by the sentinel it wraps. Token errors count as
// Unauthenticated, duplicate keys as Conflict.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrTokenInvalid):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicateKey):
		return KindConflict
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInvalidInput):
		return KindValidationFailed
	default:
		return KindInternal
	}
}

type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: status,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// Coder is implemented by errors that carry a stable machine-readable code,
// such as policy denials.
type Coder interface {
	Code() string
}

// DomainError is a classified failure with a client-safe message. Kind is
// one of the sentinels above.
type DomainError struct {
	Kind    error
	Reason  string
	Message string
}

func NewDomainError(kind error, reason, message string) *DomainError {
	return &DomainError{Kind: kind, Reason: reason, Message: message}
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func (e *DomainError) Code() string {
	return e.Reason
}

var kindStatus = map[Kind]struct {
	status  int
	message string
}{
	KindUnauthenticated:  {http.StatusUnauthorized, "authentication required"},
	KindForbidden:        {http.StatusForbidden, "insufficient permissions"},
	KindNotFound:         {http.StatusNotFound, "resource not found"},
	KindConflict:         {http.StatusConflict, "resource already exists"},
	KindInvalidState:     {http.StatusUnprocessableEntity, "operation not allowed in current state"},
	KindValidationFailed: {http.StatusBadRequest, "invalid input"},
}

// ToAppError renders any error as an *AppError. Messages of internal errors
// are never exposed.
func ToAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	kind := KindOf(err)
	mapped, ok := kindStatus[kind]
	if !ok {
		return InternalError(err)
	}

	code := string(kind)
	var coder Coder
	if errors.As(err, &coder) && coder.Code() != "" {
		code = coder.Code()
	}

	message := mapped.message
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		message = domainErr.Message
	}

	return NewAppError(err, message, mapped.status, code)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		fmt.Sprintf("%s not found", resource),
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		fmt.Sprintf("%s already exists", field),
		http.StatusConflict,
		"DUPLICATE",
	)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, "VALIDATION_FAILED")
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "token has expired", http.StatusUnauthorized, "TOKEN_EXPIRED")
}

func TokenRevokedError() *AppError {
	return NewAppError(ErrTokenRevoked, "token has been revoked", http.StatusUnauthorized, "TOKEN_REVOKED")
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "invalid token", http.StatusUnauthorized, "TOKEN_INVALID")
}

func InternalError(err error) *AppError {
	return NewAppError(err, "internal server error", http.StatusInternalServerError, "INTERNAL_ERROR")
}
