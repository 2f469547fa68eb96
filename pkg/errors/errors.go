package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error independent of its reason code.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindReferential Kind = "referential"
	KindConflict    Kind = "conflict"
	KindDatabase    Kind = "database"
	KindAuth        Kind = "auth"
	KindInternal    Kind = "internal"
)

// Error represents a typed domain error with HTTP awareness. Code is the
// machine-readable reason reported to clients.
type Error struct {
	Code    string                 `json:"code"`
	Kind    Kind                   `json:"-"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
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

// Is matches another *Error by reason code, so errors.Is works against the
// predefined values even after Clone or Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, kind Kind, status int, message string) *Error {
	return &Error{Code: code, Kind: kind, Status: status, Message: message}
}

// Wrap attaches a cause to a copy of base.
func Wrap(err error, base *Error, message string) *Error {
	clone := Clone(base, message)
	clone.Err = err
	return clone
}

// Invalid reports a malformed value for field, with code invalid_<field>.
func Invalid(field, message string) *Error {
	if message == "" {
		message = field + " is invalid"
	}
	return New("invalid_"+field, KindValidation, http.StatusBadRequest, message)
}

// Predefined errors for common scenarios.
var (
	ErrMissingFields        = New("missing_fields", KindValidation, http.StatusBadRequest, "required fields are missing")
	ErrInvalidFields        = New("invalid_fields", KindValidation, http.StatusBadRequest, "payload contains fields that cannot be updated")
	ErrInvalidPagination    = New("invalid_pagination", KindValidation, http.StatusBadRequest, "page and page_size must be integers")
	ErrInvalidPayload       = New("invalid_payload", KindValidation, http.StatusBadRequest, "request body is not valid JSON")
	ErrUnknownCollege       = New("unknown_college", KindReferential, http.StatusBadRequest, "college does not exist")
	ErrUnknownProgram       = New("unknown_program", KindReferential, http.StatusBadRequest, "program does not exist")
	ErrNotFound             = New("not_found", KindNotFound, http.StatusNotFound, "resource not found")
	ErrNotFoundOrNoChanges  = New("not_found_or_no_changes", KindNotFound, http.StatusNotFound, "resource not found or nothing to change")
	ErrNotFoundOrReferenced = New("not_found_or_referenced", KindConflict, http.StatusConflict, "resource not found or still referenced")
	ErrAlreadyExists        = New("already_exists", KindConflict, http.StatusConflict, "resource already exists")
	ErrDatabase             = New("database_error", KindDatabase, http.StatusInternalServerError, "database error")
	ErrInternal             = New("internal_error", KindInternal, http.StatusInternalServerError, "internal server error")
	ErrUnauthorized         = New("unauthorized", KindAuth, http.StatusUnauthorized, "unauthorized")
	ErrInvalidCredentials   = New("invalid_credentials", KindAuth, http.StatusUnauthorized, "invalid email or password")
	ErrEmailTaken           = New("email_taken", KindConflict, http.StatusConflict, "email is already registered")
	ErrInvalidFormat        = New("invalid_format", KindValidation, http.StatusBadRequest, "export format must be csv or pdf")
	ErrCacheMiss            = New("cache_miss", KindInternal, http.StatusNotFound, "cache miss")
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
	return Wrap(err, ErrInternal, ErrInternal.Message)
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
	if err.Details != nil {
		clone.Details = make(map[string]interface{}, len(err.Details))
		for k, v := range err.Details {
			clone.Details[k] = v
		}
	}
	return &clone
}

// WithDetails returns a copy of err carrying details.
func WithDetails(err *Error, details map[string]interface{}) *Error {
	clone := Clone(err, "")
	if clone == nil {
		return nil
	}
	if clone.Details == nil {
		clone.Details = make(map[string]interface{}, len(details))
	}
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}
