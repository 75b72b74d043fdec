package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/ibrahim-anas/BooleanBoard/internal/auth"

	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesUserAndSession(t *testing.T) {
	fix := newFixture(t)

	cookie := fix.register(t, "Amy", "Lee", "a@x.com", "pw123")

	sess, ok := fix.sessions.Get(nil, cookie)
	require.True(t, ok)
	require.Equal(t, "Amy", sess.Name)

	u, err := fix.users.GetByEmail(nil, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, sess.UserID, u.ID)
	require.NotEqual(t, "pw123", u.PasswordHash)
}

func TestRegister_CookieLifetimeFollowsSessionTTL(t *testing.T) {
	fix := newFixture(t)

	w := fix.postForm("/register", url.Values{
		"firstname": {"Amy"},
		"lastname":  {"Lee"},
		"email":     {"a@x.com"},
		"password":  {"pw123"},
	}, "")
	require.Equal(t, http.StatusFound, w.Code)

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			found = true
			require.Equal(t, int(testSessionTTL.Seconds()), c.MaxAge)
		}
	}
	require.True(t, found)
}

func TestRegister_MissingFieldsRerendersForm(t *testing.T) {
	fix := newFixture(t)

	w := fix.postForm("/register", url.Values{
		"firstname": {"Amy"},
		"email":     {"a@x.com"},
		"password":  {"pw123"},
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "This field is required.")
	require.Contains(t, w.Body.String(), `value="Amy"`) // entered values survive
	require.Empty(t, fix.users.users)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	fix := newFixture(t)
	fix.register(t, "Amy", "Lee", "a@x.com", "pw123")

	w := fix.postForm("/register", url.Values{
		"firstname": {"Bob"},
		"lastname":  {"Ray"},
		"email":     {"a@x.com"},
		"password":  {"secret"},
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "already registered")
	require.Len(t, fix.users.users, 1)
}

func TestLogin_RoundTrip(t *testing.T) {
	fix := newFixture(t)
	fix.register(t, "Amy", "Lee", "a@x.com", "pw123")

	w := fix.postForm("/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw123"},
	}, "")

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/tasks", w.Header().Get("Location"))

	cookie := sessionCookie(t, w)
	sess, ok := fix.sessions.Get(nil, cookie)
	require.True(t, ok)
	require.Equal(t, "Amy", sess.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	fix := newFixture(t)
	fix.register(t, "Amy", "Lee", "a@x.com", "pw123")
	before := len(fix.sessions.sessions)

	w := fix.postForm("/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"nope12"},
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Incorrect username or password.")
	require.Len(t, fix.sessions.sessions, before) // no session established
}

func TestLogin_UnknownEmailSameMessage(t *testing.T) {
	fix := newFixture(t)

	w := fix.postForm("/login", url.Values{
		"email":    {"ghost@x.com"},
		"password": {"pw123"},
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Incorrect username or password.")
}

func TestLogout_ClearsSession(t *testing.T) {
	fix := newFixture(t)
	cookie := fix.register(t, "Amy", "Lee", "a@x.com", "pw123")

	w := fix.get("/logout", cookie)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	_, ok := fix.sessions.Get(nil, cookie)
	require.False(t, ok)

	// The board is gated again.
	w = fix.get("/tasks", cookie)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestHome_ShowsNameWhenLoggedIn(t *testing.T) {
	fix := newFixture(t)
	cookie := fix.register(t, "Amy", "Lee", "a@x.com", "pw123")

	w := fix.get("/", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Amy")

	w = fix.get("/home", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "Amy")
}
