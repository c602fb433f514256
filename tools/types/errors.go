package types

import (
	"errors"
	"fmt"
)

// Argument error kinds
const (
	ArgumentKindMissing   = "missing_argument"
	ArgumentKindInvalid   = "invalid_argument"
	ArgumentKindMalformed = "malformed_arguments"
)

// ArgumentError marks tool invocations rejected before any renderer ran.
type ArgumentError struct {
	Kind    string
	Message string
}

func (e *ArgumentError) Error() string {
	if e == nil {
		return "invalid tool arguments"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != "" {
		return fmt.Sprintf("invalid tool arguments: %s", e.Kind)
	}
	return "invalid tool arguments"
}

func NewArgumentError(kind, message string) *ArgumentError {
	return &ArgumentError{Kind: kind, Message: message}
}

// NewMissingArgumentError reports a required argument absent from a call.
func NewMissingArgumentError(field, tool string) *ArgumentError {
	return NewArgumentError(ArgumentKindMissing, fmt.Sprintf("%s is required for %s", field, tool))
}

// NewInvalidFormatError reports an unsupported output format.
func NewInvalidFormatError(format string) *ArgumentError {
	return NewArgumentError(ArgumentKindInvalid, fmt.Sprintf("invalid format %q: must be \"svg\" or \"png\"", format))
}

// NewMalformedArgumentsError reports an arguments payload that does not
// decode into the tool's schema.
func NewMalformedArgumentsError(tool string, err error) *ArgumentError {
	return NewArgumentError(ArgumentKindMalformed, fmt.Sprintf("invalid arguments for %s: %v", tool, err))
}

func AsArgumentError(err error) (*ArgumentError, bool) {
	if err == nil {
		return nil, false
	}
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		return argErr, true
	}
	return nil, false
}

// IsArgumentError reports whether err is a pre-dispatch validation failure.
func IsArgumentError(err error) bool {
	_, ok := AsArgumentError(err)
	return ok
}
