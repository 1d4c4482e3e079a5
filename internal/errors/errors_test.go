package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewParse(t *testing.T) {
	if NewParse(nil) != nil {
		t.Error("NewParse(nil) should return nil")
	}

	cause := errors.New("config.yaml is not a valid YAML file")
	err := NewParse(cause)

	if !IsParse(err) {
		t.Error("expected a parse error")
	}
	if IsUnexpected(err) {
		t.Error("parse error should not be classified as unexpected")
	}
	if !errors.Is(err, ErrParse) {
		t.Error("parse error should match ErrParse sentinel")
	}
	if err.Error() != cause.Error() {
		t.Errorf("expected message %q, got %q", cause.Error(), err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("parse error should unwrap to its cause")
	}
}

func TestNewUnexpectedf(t *testing.T) {
	err := NewUnexpectedf("don't know how to load config version %d", 3)

	if !IsUnexpected(err) {
		t.Error("expected an unexpected error")
	}
	if IsParse(err) {
		t.Error("unexpected error should not be classified as parse")
	}
	if !errors.Is(err, ErrUnexpected) {
		t.Error("unexpected error should match ErrUnexpected sentinel")
	}
	want := "don't know how to load config version 3"
	if err.Error() != want {
		t.Errorf("expected message %q, got %q", want, err.Error())
	}
}

func TestWrappedClassification(t *testing.T) {
	inner := NewParsef("secret.show_secrets: expected a boolean")
	outer := fmt.Errorf("loading config: %w", inner)

	if !IsParse(outer) {
		t.Error("classification should survive wrapping with %%w")
	}
	if IsParse(errors.New("plain")) {
		t.Error("plain errors should not be classified as parse")
	}
	if IsUnexpected(nil) || IsParse(nil) {
		t.Error("nil should never be classified")
	}
}
