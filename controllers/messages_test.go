package controllers_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"warbler/models"
	"warbler/stores"
)

func TestAddMessage(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)
	env.loginAs(c, env.testuser.ID)

	w := c.post("/messages/new", url.Values{"text": {"Hello"}})
	expectRedirect(t, w, fmt.Sprintf("/users/%d", env.testuser.ID))

	all := env.messages.All()
	if len(all) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(all))
	}
	if all[0].Text != "Hello" || all[0].UserID != env.testuser.ID {
		t.Fatalf("unexpected message %+v", all[0])
	}
}

func TestAddUnauthorizedMessage(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	w := c.post("/messages/new", url.Values{"text": {"testing message"}})
	expectRedirect(t, w, "/")

	expectBody(t, c.followRedirects(w), "Access unauthorized.")
	if env.messages.Count() != 0 {
		t.Fatalf("expected no messages, got %d", env.messages.Count())
	}
}

func TestAddInvalidMessage(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)
	env.loginAs(c, env.testuser.ID)

	w := c.post("/messages/new", url.Values{"text": {strings.Repeat("x", 141)}})
	expectBody(t, w, "Field cannot be longer than 140 characters.")
	if env.messages.Count() != 0 {
		t.Fatal("invalid message was stored")
	}
}

func TestNewMessageFormRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	expectBody(t, c.followRedirects(c.get("/messages/new")), "Access unauthorized.")

	env.loginAs(c, env.testuser.ID)
	expectBody(t, c.get("/messages/new"), "Add my message!")
}

func TestDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	env.messages.Add(models.Message{ID: 12, Text: "testing message text", UserID: env.testuser.ID})

	c := env.client(t)
	env.loginAs(c, env.testuser.ID)

	w := c.post("/messages/12/delete", nil)
	expectRedirect(t, w, fmt.Sprintf("/users/%d", env.testuser.ID))

	page := c.followRedirects(w)
	expectBody(t, page, "@testuser")
	if strings.Contains(page.Body.String(), "testing message text") {
		t.Fatal("deleted message still listed")
	}

	if _, err := env.messages.Get(context.Background(), 12); !errors.Is(err, stores.ErrNotFound) {
		t.Fatalf("expected message 12 to be gone, got %v", err)
	}
}

func TestUnauthorizedDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	env.users.Add(models.User{ID: 1111111, Username: "unauthorized", Email: "testing@test.com", Password: "x"})
	env.messages.Add(models.Message{ID: 12345, Text: "you cant delete me", UserID: env.testuser.ID})

	c := env.client(t)
	env.loginAs(c, 1111111)

	w := c.post("/messages/12345/delete", nil)
	expectRedirect(t, w, "/")
	expectBody(t, c.followRedirects(w), "Access unauthorized")

	if _, err := env.messages.Get(context.Background(), 12345); err != nil {
		t.Fatalf("expected message 12345 to survive, got %v", err)
	}
}

func TestDeleteMessageDeniedCases(t *testing.T) {
	env := newTestEnv(t)
	env.messages.Add(models.Message{ID: 12345, Text: "you cant delete me", UserID: env.testuser.ID})

	t.Run("anonymous", func(t *testing.T) {
		c := env.client(t)
		expectBody(t, c.followRedirects(c.post("/messages/12345/delete", nil)), "Access unauthorized.")
	})

	t.Run("missing message", func(t *testing.T) {
		c := env.client(t)
		env.loginAs(c, env.testuser.ID)
		expectBody(t, c.followRedirects(c.post("/messages/12435/delete", nil)), "Access unauthorized.")
	})

	t.Run("malformed id", func(t *testing.T) {
		c := env.client(t)
		env.loginAs(c, env.testuser.ID)
		expectBody(t, c.followRedirects(c.post("/messages/abc/delete", nil)), "Access unauthorized.")
	})

	if env.messages.Count() != 1 {
		t.Fatalf("expected message to survive, have %d", env.messages.Count())
	}
}

func TestShowMessage(t *testing.T) {
	env := newTestEnv(t)
	env.messages.Add(models.Message{ID: 7, Text: "look at <this>", UserID: env.testuser.ID})
	c := env.client(t)

	w := c.get("/messages/7")
	expectBody(t, w, "look at &lt;this&gt;")
	if strings.Contains(w.Body.String(), "/messages/7/delete") {
		t.Fatal("anonymous visitor should not see delete button")
	}

	env.loginAs(c, env.testuser.ID)
	expectBody(t, c.get("/messages/7"), "/messages/7/delete")

	if w := c.get("/messages/999"); w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSessionForUnknownUserIsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)
	env.loginAs(c, 424242)

	w := c.post("/messages/new", url.Values{"text": {"Hello"}})
	expectRedirect(t, w, "/")
	if env.messages.Count() != 0 {
		t.Fatal("message created for unknown user")
	}
}
