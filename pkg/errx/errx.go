package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error independently of its domain
type Type string

const (
	TypeInternal      Type = "INTERNAL"
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
)

// defaultStatus maps a Type to the HTTP status used when none was registered
var defaultStatus = map[Type]int{
	TypeInternal:      http.StatusInternalServerError,
	TypeValidation:    http.StatusBadRequest,
	TypeNotFound:      http.StatusNotFound,
	TypeConflict:      http.StatusConflict,
	TypeAuthorization: http.StatusForbidden,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeExternal:      http.StatusBadGateway,
}

// StatusFor returns the default HTTP status for an error type
func StatusFor(t Type) int {
	if status, ok := defaultStatus[t]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ============================================================================
// Error
// ============================================================================

// Error is the structured error returned across service boundaries
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on code so sentinel-style comparisons work with errors.Is
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithDetail returns the same error with one detail attached
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the given details into the error
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithCause attaches the underlying error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// ToHTTPResponse renders the error body served to clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// New builds an unregistered error
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: StatusFor(t),
	}
}

// Wrap wraps err with a message. An *Error cause keeps its code and status.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}
	var inner *Error
	if errors.As(err, &inner) {
		return &Error{
			Code:       inner.Code,
			Type:       inner.Type,
			Message:    message,
			HTTPStatus: inner.HTTPStatus,
			Details:    inner.Details,
			Cause:      err,
		}
	}
	wrapped := New(message, t)
	wrapped.Cause = err
	return wrapped
}

// As returns the *Error in err's chain, if any
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether err carries the given type
func IsType(err error, t Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

// ============================================================================
// Registry
// ============================================================================

// Code is a handle returned by Registry.Register
type Code string

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry groups the error codes of one domain under a common prefix
type Registry struct {
	prefix string
	mu     sync.RWMutex
	codes  map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[Code]definition),
	}
}

// Register declares a code. Registering the same code twice panics.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "." + code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codes[full]; exists {
		panic(fmt.Sprintf("errx: duplicate code %s", full))
	}
	r.codes[full] = definition{errType: t, httpStatus: httpStatus, message: message}
	return full
}

// New instantiates a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.codes[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Code:       string(code),
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	return &Error{
		Code:       string(code),
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause instantiates a registered code wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}

// NewWithMessage instantiates a registered code overriding its message
func (r *Registry) NewWithMessage(code Code, message string) *Error {
	e := r.New(code)
	e.Message = message
	return e
}
