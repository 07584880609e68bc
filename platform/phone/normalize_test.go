package phone

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize(" 06 1234 5678 ")
	if err != nil || got != "+31612345678" {
		t.Fatalf("expected +31612345678, got %q (%v)", got, err)
	}

	got, err = Normalize("+32 470 12 34 56")
	if err != nil || got != "+32470123456" {
		t.Fatalf("expected Belgian number kept, got %q (%v)", got, err)
	}

	if got, err := Normalize("   "); err != nil || got != "" {
		t.Fatalf("expected blank input to clear, got %q (%v)", got, err)
	}

	if _, err := Normalize("12"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
