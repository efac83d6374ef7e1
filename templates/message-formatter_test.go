package templates

import (
	"strings"
	"testing"
)

func TestFormatMessageEscapes(t *testing.T) {
	got := FormatMessage(`<script>alert("x")</script>`)
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected escaped output, got %s", got)
	}
}

func TestFormatMessageLinks(t *testing.T) {
	got := FormatMessage("see https://example.com/a?b=c now")
	if !strings.Contains(got, `<a href="https://example.com/a?b=c"`) {
		t.Fatalf("expected link, got %s", got)
	}
}

func TestFormatMessageMentions(t *testing.T) {
	got := FormatMessage("hi @testuser\nbye")
	if !strings.Contains(got, `<a href="/users?q=testuser" class="mention">@testuser</a>`) {
		t.Fatalf("expected mention link, got %s", got)
	}
	if !strings.Contains(got, "<br>") {
		t.Fatalf("expected line break, got %s", got)
	}
	if strings.Contains(FormatMessage("mail a@b.com"), "mention") {
		t.Fatal("email addresses are not mentions")
	}
}
