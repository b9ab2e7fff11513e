package domain

import (
	"errors"
	"strings"
)

// Domain errors represent lookup failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates no search client has been built yet.
	ErrNotConfigured = errors.New("search client not configured")

	// ErrUnsupportedType indicates an unknown site URL scheme.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSearchFailed indicates the search service rejected a query.
	ErrSearchFailed = errors.New("search failed")

	// ErrAuthInvalid indicates the credentials were rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the search service throttled the request.
	ErrRateLimited = errors.New("rate limited")
)

// DefaultErrorDetail is used when a failure carries no detail of its own.
const DefaultErrorDetail = "Unexpected error encountered"

// ErrorKind classifies a LookupError.
type ErrorKind string

const (
	// KindConfiguration is a missing or invalid connection option.
	KindConfiguration ErrorKind = "ConfigurationError"

	// KindTransport is a failed call to the search service.
	KindTransport ErrorKind = "TransportError"
)

// LookupError is the single failure surfaced for a lookup call.
type LookupError struct {
	Kind    ErrorKind
	Message string
	Detail  string
	Cause   error
}

// NewLookupError wraps cause as a LookupError of the given kind.
// An empty detail falls back to the detail of a wrapped LookupError,
// then to DefaultErrorDetail.
func NewLookupError(kind ErrorKind, cause error, detail string) *LookupError {
	e := &LookupError{Kind: kind, Detail: detail, Cause: cause}
	if cause != nil {
		e.Message = cause.Error()
	}
	if e.Detail == "" {
		var inner *LookupError
		if errors.As(cause, &inner) {
			e.Detail = inner.Detail
		}
	}
	if e.Detail == "" {
		e.Detail = DefaultErrorDetail
	}
	return e
}

func (e *LookupError) Error() string {
	if e.Message == "" {
		return string(e.Kind) + ": " + e.Detail
	}
	return string(e.Kind) + ": " + e.Detail + ": " + e.Message
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// ErrorPayload is the plain form of a LookupError handed to hosts.
type ErrorPayload struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
	Detail  string `json:"detail"`
}

// Payload converts the error to its transport form.
// Stack lists the wrapped error chain, outermost first.
func (e *LookupError) Payload() ErrorPayload {
	var chain []string
	for err := e.Cause; err != nil; err = errors.Unwrap(err) {
		chain = append(chain, err.Error())
	}
	return ErrorPayload{
		Name:    string(e.Kind),
		Message: e.Message,
		Stack:   strings.Join(chain, "\n"),
		Detail:  e.Detail,
	}
}

// PayloadOf converts any error to an ErrorPayload.
func PayloadOf(err error) ErrorPayload {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Payload()
	}
	return NewLookupError(KindTransport, err, "").Payload()
}
