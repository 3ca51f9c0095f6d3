package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(Validation("bad input")) != KindValidation {
		t.Error("validation kind lost")
	}
	if KindOf(NotFound("missing")) != KindNotFound {
		t.Error("not found kind lost")
	}
	if KindOf(Conflict("already done")) != KindConflict {
		t.Error("conflict kind lost")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain errors default to internal")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("booking 50 not found"))
	if KindOf(err) != KindNotFound {
		t.Errorf("kind should survive wrapping, got %v", KindOf(err))
	}
	if MessageOf(err) != "booking 50 not found" {
		t.Errorf("message = %q", MessageOf(err))
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal("could not load bookings", cause)

	if MessageOf(err) != "could not load bookings" {
		t.Errorf("operator message = %q", MessageOf(err))
	}
	if !errors.Is(err, cause) {
		t.Error("cause should stay reachable for logging")
	}
}

func TestMessageOfPlainError(t *testing.T) {
	if got := MessageOf(errors.New("pq: syntax error")); got != "something went wrong" {
		t.Errorf("plain errors must not leak, got %q", got)
	}
}

func TestFormatting(t *testing.T) {
	err := NotFound("booking %d not found", 50)
	if err.Message != "booking 50 not found" {
		t.Errorf("message = %q", err.Message)
	}
}
