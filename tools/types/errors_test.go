package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestMissingArgumentErrorMessage(t *testing.T) {
	err := NewMissingArgumentError("text", "plantuml.render")
	if err.Error() != "text is required for plantuml.render" {
		t.Errorf("Expected 'text is required for plantuml.render', got %q", err.Error())
	}
	if err.Kind != ArgumentKindMissing {
		t.Errorf("Expected kind '%s', got '%s'", ArgumentKindMissing, err.Kind)
	}
}

func TestInvalidFormatErrorMessage(t *testing.T) {
	err := NewInvalidFormatError("jpeg")
	expected := `invalid format "jpeg": must be "svg" or "png"`
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
	if err.Kind != ArgumentKindInvalid {
		t.Errorf("Expected kind '%s', got '%s'", ArgumentKindInvalid, err.Kind)
	}
}

func TestMalformedArgumentsError(t *testing.T) {
	err := NewMalformedArgumentsError("graphviz.render", errors.New("unexpected end of JSON input"))
	if err.Kind != ArgumentKindMalformed {
		t.Errorf("Expected kind '%s', got '%s'", ArgumentKindMalformed, err.Kind)
	}
	if err.Error() != "invalid arguments for graphviz.render: unexpected end of JSON input" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestIsArgumentError(t *testing.T) {
	argErr := NewMissingArgumentError("dot", "graphviz.render")
	if !IsArgumentError(argErr) {
		t.Error("Expected argument error to be recognized")
	}

	wrapped := fmt.Errorf("execute: %w", argErr)
	if !IsArgumentError(wrapped) {
		t.Error("Expected wrapped argument error to be recognized")
	}
	if unwrapped, ok := AsArgumentError(wrapped); !ok || unwrapped.Kind != ArgumentKindMissing {
		t.Error("Expected AsArgumentError to recover the original error")
	}

	if IsArgumentError(errors.New("plain")) {
		t.Error("Expected plain error to be rejected")
	}
	if IsArgumentError(nil) {
		t.Error("Expected nil to be rejected")
	}
}
