// Package apperr is the application error vocabulary. Every failure
// that crosses a package boundary carries a stable machine-readable
// code and an HTTP status, so the setup server and the render loop
// classify errors the same way.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// Stable error codes.
const (
	CodeInvalidInput        = "invalid_input"
	CodeGeometryUnavailable = "geometry_unavailable"
	CodeNeedsConfig         = "needs_config"
	CodeNotFound            = "not_found"
	CodeUpstream            = "upstream_error"
	CodeInternal            = "internal_error"
)

type Error struct {
	Code       string
	Message    string
	StatusCode int
	Cause      error
	Fields     map[string]string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithCause(err error) Option    { return func(e *Error) { e.Cause = err } }

// WithFields attaches per-field validation detail.
func WithFields(fields map[string]string) Option {
	return func(e *Error) { e.Fields = fields }
}

func newErr(code string, status int, opts []Option) *Error {
	e := &Error{Code: code, StatusCode: status, Message: strings.ToLower(http.StatusText(status))}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InvalidInput covers malformed samples, out-of-range coordinates and
// bad form input.
func InvalidInput(opts ...Option) *Error {
	return newErr(CodeInvalidInput, http.StatusUnprocessableEntity, opts)
}

// GeometryUnavailable means rise/set geometry could not be resolved for
// the requested instant, even after widening the day window.
func GeometryUnavailable(opts ...Option) *Error {
	return newErr(CodeGeometryUnavailable, http.StatusServiceUnavailable, opts)
}

// NeedsConfig means no observer location has been saved yet.
func NeedsConfig(opts ...Option) *Error {
	return newErr(CodeNeedsConfig, http.StatusConflict, opts)
}

func NotFound(opts ...Option) *Error {
	return newErr(CodeNotFound, http.StatusNotFound, opts)
}

// Upstream wraps failures talking to the image service.
func Upstream(opts ...Option) *Error {
	return newErr(CodeUpstream, http.StatusBadGateway, opts)
}

func Internal(opts ...Option) *Error {
	return newErr(CodeInternal, http.StatusInternalServerError, opts)
}

// As unwraps err to an *Error, or nil when it is not one.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsCode reports whether err unwraps to an *Error with the given code.
func IsCode(err error, code string) bool {
	e := As(err)
	return e != nil && e.Code == code
}
