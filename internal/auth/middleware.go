package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie set at login and cleared at logout.
const CookieName = "session_id"

const contextKeySession = "session"

// SessionFromContext returns the session loaded by LoadSession, if any.
func SessionFromContext(c *gin.Context) (Session, bool) {
	v, ok := c.Get(contextKeySession)
	if !ok {
		return Session{}, false
	}
	sess, ok := v.(Session)
	return sess, ok
}

// SetCookie attaches the session cookie for the given id. maxAge is in seconds.
func SetCookie(c *gin.Context, id string, maxAge int) {
	c.SetCookie(CookieName, id, maxAge, "/", "", false, true) // httpOnly
}

// ClearCookie expires the session cookie.
func ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// LoadSession resolves the session cookie into the request context when
// present and valid. It never aborts: pages like the landing page render
// for anonymous and authenticated visitors alike.
func LoadSession(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}
		sess, ok := store.Get(c.Request.Context(), id)
		if !ok {
			c.Next()
			return
		}
		c.Set(contextKeySession, sess)
		c.Next()
	}
}

// RequireLogin redirects anonymous requests to the login page. No error
// page is shown; the board is simply behind the login form.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFromContext(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
