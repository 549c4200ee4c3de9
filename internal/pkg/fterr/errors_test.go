package fterr

import (
	"testing"

	"github.com/pkg/errors"
)

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}
}

func TestCode(t *testing.T) {
	if Code(ErrAuthRequired) != CodeAuthRequired {
		t.Errorf("Expected %s, got %s", CodeAuthRequired, Code(ErrAuthRequired))
	}
	if !IsAuthRequired(ErrAuthRequired) {
		t.Error("Expected ErrAuthRequired to be recognized as auth-required")
	}
	if IsAuthRequired(ErrNotFound) {
		t.Error("Expected ErrNotFound to not be auth-required")
	}
}

func TestCodeUnwraps(t *testing.T) {
	wrapped := errors.Wrap(ErrLocationDenied, "location is not ready")
	if Code(wrapped) != CodeLocationDenied {
		t.Errorf("Expected %s through the wrap, got %s", CodeLocationDenied, Code(wrapped))
	}
	if Code(errors.New("gps fell off")) != CodeInternalError {
		t.Errorf("Expected %s for a non-domain error, got %s", CodeInternalError, Code(errors.New("gps fell off")))
	}
}
