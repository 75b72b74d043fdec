package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ibrahim-anas/BooleanBoard/internal/auth"
	"github.com/ibrahim-anas/BooleanBoard/internal/forms"
	"github.com/ibrahim-anas/BooleanBoard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	sessions   auth.Store
	users      *service.UserService
	sessionTTL time.Duration
}

// NewAuthHandler returns a new AuthHandler. sessionTTL drives the cookie
// max-age so the cookie expires with the server-side session record.
func NewAuthHandler(sessions auth.Store, users *service.UserService, sessionTTL time.Duration) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{sessions: sessions, users: users, sessionTTL: sessionTTL}
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", pageData(c, gin.H{}))
}

// Register validates the form, creates the user and logs them straight
// in. Validation failures re-render the form with field messages.
func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "register.html", pageData(c, gin.H{
			"Form":   form,
			"Errors": forms.Errors(err),
		}))
		return
	}
	user, err := h.users.Register(c.Request.Context(), form.FirstName, form.LastName, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.HTML(http.StatusOK, "register.html", pageData(c, gin.H{
				"Form":   form,
				"Errors": map[string]string{"Email": "That email is already registered."},
			}))
			return
		}
		zap.L().Error("register failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	h.startSession(c, user.ID, user.FirstName)
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", pageData(c, gin.H{}))
}

// Login checks credentials and establishes a session. A bad email and a
// bad password are reported identically.
func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "login.html", pageData(c, gin.H{
			"Form":   form,
			"Errors": forms.Errors(err),
		}))
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusOK, "login.html", pageData(c, gin.H{
				"Form":   form,
				"Errors": map[string]string{"Password": forms.MsgInvalidCredentials},
			}))
			return
		}
		zap.L().Error("login failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	h.startSession(c, user.ID, user.FirstName)
}

// Logout clears the session and sends the visitor back to the landing page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(auth.CookieName); err == nil && id != "" {
		_ = h.sessions.Delete(c.Request.Context(), id)
	}
	auth.ClearCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, userID int64, name string) {
	id, err := h.sessions.Create(c.Request.Context(), auth.Session{UserID: userID, Name: name})
	if err != nil {
		zap.L().Error("create session", zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	auth.SetCookie(c, id, int(h.sessionTTL.Seconds()))
	c.Redirect(http.StatusFound, "/tasks")
}
