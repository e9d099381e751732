package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error so callers can react programmatically
// (resync a cache, prompt for a profile) without string matching.
type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotFound             Kind = "not_found"
	KindProfileMissing       Kind = "profile_missing"
	KindDuplicateApplication Kind = "duplicate_application"
	KindInvalidState         Kind = "invalid_state"
	KindForbidden            Kind = "forbidden"
	KindUnauthorized         Kind = "unauthorized"
	KindInternal             Kind = "internal"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match two AppErrors by Kind, so sentinel-style
// comparisons like errors.Is(err, apperror.Duplicate("")) work.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// ProfileMissing signals an apply attempted before any profile submission.
// 412 rather than 404 so clients can prompt profile completion and retry.
func ProfileMissing(message string) *AppError {
	return New(KindProfileMissing, http.StatusPreconditionFailed, message, nil)
}

func Duplicate(message string) *AppError {
	return New(KindDuplicateApplication, http.StatusConflict, message, nil)
}

func InvalidState(message string) *AppError {
	return New(KindInvalidState, http.StatusConflict, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}

// KindOf extracts the Kind from any error, returning KindInternal for
// errors that did not originate in this package.
func KindOf(err error) Kind {
	var e *AppError
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
