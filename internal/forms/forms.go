// Package forms holds the HTML form payloads and turns binding failures
// into per-field messages for re-rendering.
package forms

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MsgInvalidCredentials is shown on a failed login. Unknown email and
// wrong password produce the same message on purpose.
const MsgInvalidCredentials = "Incorrect username or password."

// RegisterForm is posted by the registration page.
type RegisterForm struct {
	FirstName string `form:"firstname" binding:"required"`
	LastName  string `form:"lastname" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required"`
}

// LoginForm is posted by the login page.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// TaskForm is posted by the create and edit pages.
type TaskForm struct {
	Title string `form:"title" binding:"required"`
	Text  string `form:"taskText" binding:"required"`
}

// CommentForm is posted from a task's detail page.
type CommentForm struct {
	Comment string `form:"comment" binding:"required"`
}

// Errors maps a binding error to field-level messages keyed by struct
// field name (e.g. "Email"). A non-validator error (malformed body)
// comes back under "Form".
func Errors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["Form"] = "Invalid form submission."
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
