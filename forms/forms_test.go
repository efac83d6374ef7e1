package forms

import (
	"strings"
	"testing"
)

func values(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestValidateSignup(t *testing.T) {
	res := Validate(UserAddForm, values(map[string]string{
		"username": "  testuser ",
		"email":    "test@test.com",
		"password": "testuser",
	}))
	if !res.Valid() {
		t.Fatalf("expected valid form, got %v", res.Errors)
	}
	if res.Get("username") != "testuser" {
		t.Fatalf("expected trimmed username, got %q", res.Get("username"))
	}
}

func TestValidateSignupErrors(t *testing.T) {
	res := Validate(UserAddForm, values(map[string]string{
		"email":    "not-an-email",
		"password": "abc",
	}))

	want := map[string]string{
		"username": "This field is required.",
		"email":    "Invalid email address.",
		"password": "Field must be at least 6 characters long.",
	}
	for field, msg := range want {
		if res.Errors[field] != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, res.Errors[field])
		}
	}
	if _, ok := res.Errors["image_url"]; ok {
		t.Error("image_url is optional")
	}
}

func TestValidateMessage(t *testing.T) {
	if res := Validate(MessageForm, values(map[string]string{"text": "Hello"})); !res.Valid() {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if res := Validate(MessageForm, values(map[string]string{"text": "   "})); res.Errors["text"] != "This field is required." {
		t.Fatalf("expected required error, got %v", res.Errors)
	}
	long := strings.Repeat("a", 141)
	if res := Validate(MessageForm, values(map[string]string{"text": long})); res.Valid() {
		t.Fatal("expected message over 140 characters to fail")
	}
}

func TestValidateEditUser(t *testing.T) {
	res := Validate(EditUserForm, values(map[string]string{
		"bio":      strings.Repeat("b", 201),
		"location": strings.Repeat("l", 21),
		"email":    "",
		"password": "secret",
	}))
	if _, ok := res.Errors["bio"]; !ok {
		t.Error("expected bio error")
	}
	if _, ok := res.Errors["location"]; !ok {
		t.Error("expected location error")
	}
	if _, ok := res.Errors["email"]; ok {
		t.Error("empty email should be allowed on edit")
	}
	if _, ok := res.Errors["password"]; ok {
		t.Error("password of 6 characters should pass")
	}
}

func TestValidateLoginKeepsPasswordWhitespace(t *testing.T) {
	res := Validate(LoginForm, values(map[string]string{"username": "u", "password": " pass  "}))
	if res.Get("password") != " pass  " {
		t.Fatalf("password should not be trimmed, got %q", res.Get("password"))
	}
}

func TestValidateImageURLs(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", true},
		{"https", "https://example.com/header.jpg", true},
		{"no scheme", "example.com/header.jpg", false},
		{"javascript", "javascript:alert(1)", false},
		{"css breakout", "x');}body{background:url('https://evil.example/leak", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(EditUserForm, values(map[string]string{
				"image_url":        tt.value,
				"header_image_url": tt.value,
				"password":         "secret",
			}))
			for _, field := range []string{"image_url", "header_image_url"} {
				msg, failed := res.Errors[field]
				if failed == tt.valid {
					t.Errorf("%s=%q: expected valid=%v, got error %q", field, tt.value, tt.valid, msg)
				}
				if failed && msg != "Invalid URL." {
					t.Errorf("%s: unexpected message %q", field, msg)
				}
			}
		})
	}
}
