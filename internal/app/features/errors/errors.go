// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/suggestbox/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Message    string
	BackURL    string
}

// Handler renders the error pages. No DB needed.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "You don't have permission to view this page.", "/")
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r, "/login")
}

// RenderUnauthorized shows a "sign in required" page. If backURL is
// empty it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	templates.Render(w, r, "error_page", page(r, "Sign in required", "Please sign in to continue.", backURL))
}

// RenderForbidden shows an access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	templates.Render(w, r, "error_page", page(r, "Access denied", msg, backURL))
}

// RenderNotFound shows a "not found" page, used when a suggestion id
// in the URL does not resolve.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "The page you were looking for does not exist."
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", page(r, "Not found", msg, "/"))
}

func page(r *http.Request, title, msg, backURL string) pageData {
	data := pageData{
		Title:   title,
		Message: msg,
		BackURL: backURL,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.Role = u.Role
		data.UserName = u.Name
	}
	return data
}
