package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"warbler/models"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	w := c.post("/signup", url.Values{
		"username": {"newuser"},
		"email":    {"new@test.com"},
		"password": {"password"},
	})
	expectRedirect(t, w, "/")

	user, err := env.users.GetByUsername(context.Background(), "newuser")
	if err != nil {
		t.Fatalf("expected user to exist: %v", err)
	}
	if user.Password == "password" {
		t.Fatal("password stored in clear")
	}

	expectBody(t, c.followRedirects(w), fmt.Sprintf(`href="/users/%d"`, user.ID))
}

func TestSignupDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	w := c.post("/signup", url.Values{
		"username": {"testuser"},
		"email":    {"other@test.com"},
		"password": {"password"},
	})
	expectBody(t, w, "Username or e-mail already taken")
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	w := c.post("/signup", url.Values{
		"username": {"someoneelse"},
		"email":    {"test@test.com"},
		"password": {"password"},
	})
	expectBody(t, w, "Username or e-mail already taken")
	if _, err := env.users.GetByUsername(context.Background(), "someoneelse"); err == nil {
		t.Fatal("user with a duplicate e-mail should not be created")
	}
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	w := c.post("/signup", url.Values{"username": {"x"}, "email": {"nope"}, "password": {"123"}})
	expectBody(t, w, "Invalid email address.")
	if !strings.Contains(w.Body.String(), "Field must be at least 6 characters long.") {
		t.Fatal("expected password length error")
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	expectBody(t, c.get("/login"), "Welcome back.")
	before := c.cookies[models.SessionCookie].Value

	w := c.post("/login", url.Values{"username": {"testuser"}, "password": {"testuser"}})
	expectRedirect(t, w, "/")
	if c.cookies[models.SessionCookie].Value == before {
		t.Fatal("expected session id to rotate on login")
	}

	expectBody(t, c.followRedirects(w), "Hello, testuser!")
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	for _, creds := range []url.Values{
		{"username": {"testuser"}, "password": {"wrong-password"}},
		{"username": {"nobody"}, "password": {"testuser"}},
	} {
		c := env.client(t)
		expectBody(t, c.post("/login", creds), "Invalid credentials.")
	}
}

func TestLoginRedirectsToNext(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	w := c.post("/login?next=/messages/new", url.Values{"username": {"testuser"}, "password": {"testuser"}})
	expectRedirect(t, w, "/messages/new")

	c = env.client(t)
	w = c.post("/login?next=//evil.example", url.Values{"username": {"testuser"}, "password": {"testuser"}})
	expectRedirect(t, w, "/")
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)
	session := env.loginAs(c, env.testuser.ID)

	w := c.get("/logout")
	expectRedirect(t, w, "/login")
	expectBody(t, c.followRedirects(w), "You have successfully logged out.")

	current, ok := env.sessions.Get(session.ID)
	if !ok || current.UserID != 0 {
		t.Fatalf("expected anonymous session after logout, got %+v", current)
	}
}

func TestFollowAndUnfollow(t *testing.T) {
	env := newTestEnv(t)
	other := env.signup(t, "other", "other@test.com", "password")
	c := env.client(t)
	env.loginAs(c, env.testuser.ID)
	ctx := context.Background()

	w := c.post(fmt.Sprintf("/users/follow/%d", other.ID), nil)
	expectRedirect(t, w, fmt.Sprintf("/users/%d/following", env.testuser.ID))
	if ok, _ := env.follows.IsFollowing(ctx, env.testuser.ID, other.ID); !ok {
		t.Fatal("expected testuser to follow other")
	}
	expectBody(t, c.followRedirects(w), "@other")

	expectBody(t, c.get(fmt.Sprintf("/users/%d/followers", other.ID)), "@testuser")

	c.post(fmt.Sprintf("/users/stop-following/%d", other.ID), nil)
	if ok, _ := env.follows.IsFollowing(ctx, env.testuser.ID, other.ID); ok {
		t.Fatal("expected follow to be removed")
	}
}

func TestFollowRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	other := env.signup(t, "other", "other@test.com", "password")
	c := env.client(t)

	w := c.post(fmt.Sprintf("/users/follow/%d", other.ID), nil)
	expectRedirect(t, w, "/")
	expectBody(t, c.followRedirects(w), "Access unauthorized.")

	expectBody(t, c.followRedirects(c.get(fmt.Sprintf("/users/%d/following", other.ID))), "Access unauthorized.")
}

func TestTimelineShowsFollowedMessages(t *testing.T) {
	env := newTestEnv(t)
	other := env.signup(t, "other", "other@test.com", "password")
	stranger := env.signup(t, "stranger", "stranger@test.com", "password")
	ctx := context.Background()

	env.messages.Create(ctx, "from other", other.ID)
	env.messages.Create(ctx, "from stranger", stranger.ID)
	env.messages.Create(ctx, "from me", env.testuser.ID)
	env.follows.Follow(ctx, env.testuser.ID, other.ID)

	c := env.client(t)
	env.loginAs(c, env.testuser.ID)
	w := c.get("/")
	expectBody(t, w, "from other")
	body := w.Body.String()
	if !strings.Contains(body, "from me") {
		t.Fatal("expected own message on timeline")
	}
	if strings.Contains(body, "from stranger") {
		t.Fatal("unfollowed user's message on timeline")
	}
}

func TestUserSearch(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "alice@test.com", "password")
	c := env.client(t)

	w := c.get("/users?q=ali")
	expectBody(t, w, "@alice")
	if strings.Contains(w.Body.String(), "@testuser") {
		t.Fatal("search should filter users")
	}
	expectBody(t, c.get("/users?q=zzz"), "Sorry, no users found")
}

func TestEditProfile(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)
	env.loginAs(c, env.testuser.ID)

	expectBody(t, c.get("/users/profile"), "Edit Your Profile.")

	w := c.post("/users/profile", url.Values{
		"bio":      {"I warble"},
		"location": {"Nowhere"},
		"password": {"testuser"},
	})
	expectRedirect(t, w, fmt.Sprintf("/users/%d", env.testuser.ID))

	updated, _ := env.users.Get(context.Background(), env.testuser.ID)
	if updated.Bio != "I warble" || updated.Location != "Nowhere" || updated.Username != "testuser" {
		t.Fatalf("unexpected user after edit: %+v", updated)
	}
	expectBody(t, c.followRedirects(w), "Profile updated.")
}

func TestEditProfileWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)
	env.loginAs(c, env.testuser.ID)

	w := c.post("/users/profile", url.Values{"bio": {"hacked"}, "password": {"not-the-password"}})
	expectRedirect(t, w, "/")
	expectBody(t, c.followRedirects(w), "Wrong password, please try again.")

	user, _ := env.users.Get(context.Background(), env.testuser.ID)
	if user.Bio != "" {
		t.Fatal("profile changed despite wrong password")
	}
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)
	env.loginAs(c, env.testuser.ID)

	expectBody(t, c.get("/status"), `"logged_in_users":1`)
}

func TestOutOfRangeIDsAreNotFound(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	for _, path := range []string{"/users/2147483648", "/messages/99999999999"} {
		if w := c.get(path); w.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, w.Code)
		}
	}
}
