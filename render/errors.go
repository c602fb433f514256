package render

import "errors"

// Error kinds. Unavailable means the backing renderer could not be reached
// or found at all; render_failed means it ran and rejected the input.
const (
	KindUnavailable  = "unavailable"
	KindRenderFailed = "render_failed"
)

// Error is a classified renderer failure. Message carries the renderer's
// diagnostic untouched so callers can pass it through to clients.
type Error struct {
	Kind     string
	Renderer string
	Message  string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// NewUnavailableError reports that a renderer backend is missing or
// unreachable.
func NewUnavailableError(renderer, message string) *Error {
	return &Error{
		Kind:     KindUnavailable,
		Renderer: renderer,
		Message:  message,
	}
}

// NewRenderFailedError reports that a renderer ran but could not produce
// an image, usually because the diagram source is invalid.
func NewRenderFailedError(renderer, message string) *Error {
	return &Error{
		Kind:     KindRenderFailed,
		Renderer: renderer,
		Message:  message,
	}
}

// AsError unwraps err to a renderer *Error if there is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsUnavailable checks if the error reports a missing or unreachable
// renderer backend.
func IsUnavailable(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Kind == KindUnavailable
	}
	return false
}

// IsRenderFailed checks if the error reports rejected diagram input.
func IsRenderFailed(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Kind == KindRenderFailed
	}
	return false
}
