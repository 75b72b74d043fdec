package handlers

import (
	"net/http"

	"github.com/ibrahim-anas/BooleanBoard/internal/auth"

	"github.com/gin-gonic/gin"
)

// Home renders the landing page, with the visitor's name when a session
// is present.
func Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", pageData(c, gin.H{}))
}

// pageData merges the session display name into template data so every
// page can greet the current user.
func pageData(c *gin.Context, data gin.H) gin.H {
	if sess, ok := auth.SessionFromContext(c); ok {
		data["User"] = sess.Name
	}
	return data
}
