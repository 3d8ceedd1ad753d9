package validate_test

import (
	"testing"

	"tienda/internal/validate"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ana@tienda.test", true},
		{"  ana@tienda.test  ", true}, // trimmed
		{"ANA@TIENDA.TEST", true},
		{"", false},
		{"not-an-email", false},
		{"a@b", false},
		{"a b@c.d", false},
	}
	for _, tt := range tests {
		if _, ok := validate.Email(tt.in); ok != tt.want {
			t.Errorf("Email(%q) = %v, want %v", tt.in, ok, tt.want)
		}
	}
}

func TestEmailRejectsOverlongInput(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	if _, ok := validate.Email(string(long)); ok {
		t.Error("expected overlong email to be rejected")
	}
}

func TestProductID(t *testing.T) {
	if id, ok := validate.ProductID("7"); !ok || id != 7 {
		t.Errorf("ProductID(7) = %d, %v", id, ok)
	}
	for _, bad := range []string{"0", "-1", "abc", ""} {
		if _, ok := validate.ProductID(bad); ok {
			t.Errorf("ProductID(%q) accepted", bad)
		}
	}
}

func TestPassword(t *testing.T) {
	if validate.Password("abc") {
		t.Error("short password accepted")
	}
	if !validate.Password("secret1") {
		t.Error("valid password rejected")
	}
}
