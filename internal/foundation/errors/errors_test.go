package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "input required and not supplied").
			WithSeverity(SeverityFatal).
			WithContext("input", "package-path").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Error() != "input required and not supplied" {
			t.Errorf("unexpected message %q", err.Error())
		}

		input, exists := err.Context().GetString("input")
		if !exists || input != "package-path" {
			t.Errorf("expected context input=package-path, got %v", input)
		}
	})

	t.Run("Wrapped cause", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "remove output directory").Build()

		if err.Error() != "remove output directory: permission denied" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to find the cause")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		base := PlatformError("unsupported operating system").Build()
		wrapped := fmt.Errorf("startup: %w", base)

		if !HasCategory(wrapped, CategoryPlatform) {
			t.Error("expected platform category through wrap")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified errors to map to internal")
		}
		if !base.IsFatal() {
			t.Error("expected platform error to be fatal")
		}
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := ConfigError("x").Build()
		b := ConfigError("x").WithContext("k", "v").Build()
		c := ValidationError("x").Build()
		if !errors.Is(a, b) {
			t.Error("expected equal classification to match")
		}
		if errors.Is(a, c) {
			t.Error("expected different category not to match")
		}
	})
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"a": 1, "b": 1}
	b := ErrorContext{"b": 2}
	merged := a.Merge(b)
	if merged["a"] != 1 || merged["b"] != 2 {
		t.Errorf("unexpected merge result: %v", merged)
	}
	var empty ErrorContext
	if got := empty.Merge(b); got["b"] != 2 {
		t.Errorf("expected nil receiver to return other, got %v", got)
	}
}
