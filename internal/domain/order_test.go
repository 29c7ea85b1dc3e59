package domain

import (
	"errors"
	"testing"
)

func TestShortID(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"7f9c2e44-5d17-4c7b-9e02-91d4f0a1b2c3", "A1B2C3"},
		{"abc123", "ABC123"},
		{"xy", "XY"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := (Order{ID: tc.id}).ShortID(); got != tc.want {
			t.Errorf("ShortID(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestTotal(t *testing.T) {
	o := Order{TotalCents: 2550}
	if got := o.Total(); got != 25.50 {
		t.Fatalf("Total() = %v, want 25.50", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "shipped", "NEW", "Confirmed"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("phone", "Invalid phone number")
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatal("AsValidation failed on a fresh ValidationError")
	}
	if ve.Fields["phone"] != "Invalid phone number" {
		t.Fatalf("unexpected fields: %v", ve.Fields)
	}

	wrapped := errors.Join(errors.New("outer"), err)
	if _, ok := AsValidation(wrapped); !ok {
		t.Fatal("AsValidation should unwrap")
	}

	if _, ok := AsValidation(errors.New("plain")); ok {
		t.Fatal("AsValidation matched a plain error")
	}
}
