package templates

import (
	"context"
	"strings"
	"testing"
	"time"
	"warbler/models"

	"github.com/a-h/templ"
)

func render(t *testing.T, page Page, msg models.Message, viewerID int) string {
	t.Helper()
	var buf strings.Builder
	if err := Layout(page, MessageDetail(msg, viewerID)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestLayoutRendersFlashes(t *testing.T) {
	page := Page{Flashes: []models.Flash{{Category: models.FlashDanger, Text: "Access unauthorized."}}}
	out := render(t, page, models.Message{ID: 1, Text: "hi", UserID: 1, Timestamp: time.Now()}, 0)

	if !strings.Contains(out, `<div class="alert alert-danger">Access unauthorized.</div>`) {
		t.Fatalf("expected flash in output, got %s", out)
	}
	if !strings.Contains(out, `href="/signup"`) {
		t.Fatal("anonymous navbar should link to signup")
	}
}

func TestMessageItemDeleteButtonForOwnerOnly(t *testing.T) {
	user := models.User{ID: 3, Username: "testuser"}
	msg := models.Message{ID: 12, Text: "hi", UserID: 3, Username: "testuser", Timestamp: time.Now()}

	if out := render(t, Page{User: &user}, msg, 3); !strings.Contains(out, `action="/messages/12/delete"`) {
		t.Fatal("owner should see delete button")
	}
	if out := render(t, Page{}, msg, 4); strings.Contains(out, "/messages/12/delete") {
		t.Fatal("non-owner should not see delete button")
	}
}

func TestProfileSanitizesImageURLs(t *testing.T) {
	d := ProfileData{Profile: models.User{
		ID:             5,
		Username:       "mallory",
		ImageURL:       "javascript:alert(1)",
		HeaderImageURL: "x');}body{background:url('https://evil.example/leak",
	}}

	var buf strings.Builder
	if err := Profile(d).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, bad := range []string{"evil.example", "javascript:", "style="} {
		if strings.Contains(out, bad) {
			t.Errorf("output should not contain %q: %s", bad, out)
		}
	}
	if !strings.Contains(out, string(templ.FailedSanitizationURL)) {
		t.Fatalf("expected sanitized image source, got %s", out)
	}
}

func TestProfileRendersStats(t *testing.T) {
	d := ProfileData{
		Profile:   models.User{ID: 5, Username: "alice", Bio: "<b>hi</b>"},
		ViewerID:  6,
		Count:     2,
		Following: 3,
		Followers: 4,
	}

	var buf strings.Builder
	if err := Profile(d).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<a href="/users/5">2 messages</a>`,
		`<a href="/users/5/following">3 following</a>`,
		`<a href="/users/5/followers">4 followers</a>`,
		`action="/users/follow/5"`,
		"&lt;b&gt;hi&lt;/b&gt;",
		`src="/static/images/warbler-hero.jpg"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %s", want, out)
		}
	}
}
