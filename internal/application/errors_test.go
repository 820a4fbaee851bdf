package application

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("empty error reports no issues", func(t *testing.T) {
		vErr := &ValidationError{}
		if vErr.HasErrors() {
			t.Fatal("expected no errors")
		}
	})

	t.Run("add records field issues", func(t *testing.T) {
		vErr := &ValidationError{}
		vErr.add("identifier", "identifier is required")
		if !vErr.HasErrors() {
			t.Fatal("expected errors after add")
		}
		if vErr.FieldErrors["identifier"] != "identifier is required" {
			t.Fatalf("unexpected field errors %v", vErr.FieldErrors)
		}
	})

	t.Run("merge copies entries", func(t *testing.T) {
		target := &ValidationError{}
		target.add("identifier", "identifier is required")

		other := &ValidationError{}
		other.add("full_name", "full name is required")

		target.merge(other)
		target.merge(nil)

		if len(target.FieldErrors) != 2 {
			t.Fatalf("unexpected field errors %v", target.FieldErrors)
		}
	})

	t.Run("unwraps through error chains", func(t *testing.T) {
		vErr := &ValidationError{}
		vErr.add("text", "command text is required")
		wrapped := fmt.Errorf("preview failed: %w", vErr)

		var target *ValidationError
		if !errors.As(wrapped, &target) {
			t.Fatal("expected errors.As to find the validation error")
		}
		if target.FieldErrors["text"] != "command text is required" {
			t.Fatalf("unexpected field errors %v", target.FieldErrors)
		}
	})
}
