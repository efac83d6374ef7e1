package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"warbler/auth"
	"warbler/controllers"
	"warbler/models"
	"warbler/routes"
	"warbler/stores"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	app      *controllers.App
	users    *stores.MemoryUserStore
	messages *stores.MemoryMessageStore
	follows  *stores.MemoryFollowStore
	sessions *stores.MemorySessionStore
	router   *gin.Engine
	testuser models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := stores.NewMemoryUserStore()
	env := &testEnv{
		users:    users,
		messages: stores.NewMemoryMessageStore(users),
		follows:  stores.NewMemoryFollowStore(users),
		sessions: stores.NewMemorySessionStore(time.Hour, time.Hour),
	}
	env.app = &controllers.App{
		Users:      env.users,
		Messages:   env.messages,
		Follows:    env.follows,
		Sessions:   env.sessions,
		Hub:        controllers.NewHub(16),
		BcryptCost: bcrypt.MinCost,
	}

	env.testuser = env.signup(t, "testuser", "test@test.com", "testuser")

	env.router = gin.New()
	routes.WarblerRouter(env.router, env.app)
	return env
}

func (e *testEnv) signup(t *testing.T, username, email, password string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := e.users.Create(context.Background(), models.User{Username: username, Email: email, Password: hash})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// testClient keeps cookies between requests like a browser would.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (e *testEnv) client(t *testing.T) *testClient {
	return &testClient{t: t, handler: e.router, cookies: make(map[string]*http.Cookie)}
}

// loginAs attaches a session for userID, bypassing the login form.
func (e *testEnv) loginAs(c *testClient, userID int) models.Session {
	session := e.sessions.Create(userID)
	c.cookies[models.SessionCookie] = &http.Cookie{Name: models.SessionCookie, Value: session.ID}
	return session
}

func (c *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = &http.Cookie{Name: ck.Name, Value: ck.Value}
	}
	return w
}

func (c *testClient) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return c.do(http.MethodPost, path, form)
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

// followRedirects replays GETs until a non-redirect response.
func (c *testClient) followRedirects(w *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	c.t.Helper()
	for i := 0; i < 5 && w.Code >= 300 && w.Code < 400; i++ {
		w = c.get(w.Header().Get("Location"))
	}
	return w
}

func expectRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d, body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func expectBody(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), want) {
		t.Fatalf("expected body to contain %q, body=%s", want, w.Body.String())
	}
}
