package helpers

import "testing"

func TestParseID(t *testing.T) {
	tests := map[string]bool{
		"12":          true,
		"2147483647":  true,
		"2147483648":  false,
		"99999999999": false,
		"0":           false,
		"-3":          false,
		"abc":         false,
		"":            false,
	}
	for raw, want := range tests {
		if _, ok := ParseID(raw); ok != want {
			t.Errorf("ParseID(%q) ok=%v, want %v", raw, ok, want)
		}
	}
}

func TestSafeRedirect(t *testing.T) {
	tests := map[string]string{
		"/messages/new":        "/messages/new",
		"":                     "/",
		"//evil.example":       "/",
		"/\\evil.example":      "/",
		"https://evil.example": "/",
	}
	for in, want := range tests {
		if got := SafeRedirect(in, "/"); got != want {
			t.Errorf("SafeRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(16), GenerateID(16)
	if len(a) != 32 || a == b {
		t.Fatalf("unexpected ids %q %q", a, b)
	}
}
