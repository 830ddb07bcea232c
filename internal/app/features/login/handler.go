// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/dalemusser/suggestbox/internal/app/features/errors"
	userstore "github.com/dalemusser/suggestbox/internal/app/store/users"
	"github.com/dalemusser/suggestbox/internal/app/system/auth"
	"github.com/dalemusser/suggestbox/internal/app/system/timeouts"
	"github.com/dalemusser/suggestbox/internal/app/system/viewdata"
	"github.com/dalemusser/suggestbox/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler signs users in. Identity verification is delegated to an
// external provider in production; the local form maps the provided
// email to a provider-style subject ("local|<email>") so the rest of
// the app only ever sees subjects.
type Handler struct {
	Users      *userstore.Store
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
	AdminEmail string
}

func NewHandler(users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger, adminEmail string) *Handler {
	return &Handler{
		Users:      users,
		ErrLog:     errLog,
		Log:        logger,
		AdminEmail: adminEmail,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	Name      string
	ReturnURL string
}

// ServeForm handles GET /login.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/suggestions", http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, loginFormData{ReturnURL: safeReturn(r.URL.Query().Get("return"))})
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data loginFormData) {
	data.BaseVM = viewdata.NewBaseVM(r, "Sign in", "/")
	templates.Render(w, r, "login", data)
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("email")))
	name := strings.TrimSpace(r.PostFormValue("name"))
	returnURL := safeReturn(r.PostFormValue("return"))

	if email == "" || !strings.Contains(email, "@") {
		h.renderForm(w, r, loginFormData{Error: "A valid email is required.", Email: email, Name: name, ReturnURL: returnURL})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subject := "local|" + email

	user, err := h.Users.ByAuthSubject(ctx, subject)
	if err == mongo.ErrNoDocuments {
		user, err = h.provision(ctx, subject, email, name)
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "signing in", err)
		return
	}

	sessionUser := auth.SessionUser{
		ID:          user.ID.Hex(),
		Name:        user.DisplayName,
		AuthSubject: user.AuthSubject,
		Role:        user.Role,
	}
	if err := auth.SignIn(w, r, sessionUser); err != nil {
		h.ErrLog.Internal(w, r, "saving session", err)
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	if returnURL == "" {
		returnURL = "/suggestions"
	}
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

// provision creates the user document the first time a subject signs
// in. The configured admin email gets the admin role.
func (h *Handler) provision(ctx context.Context, subject, email, name string) (*models.User, error) {
	if name == "" {
		name = email[:strings.Index(email, "@")]
		if name == "" {
			name = email
		}
	}

	role := "user"
	if h.AdminEmail != "" && strings.EqualFold(email, h.AdminEmail) {
		role = "admin"
	}

	created, err := h.Users.Create(ctx, models.User{
		AuthSubject: subject,
		DisplayName: name,
		Email:       email,
		Role:        role,
	})
	if err == userstore.ErrDuplicateAuthSubject {
		// Two first-logins raced; the other one won.
		return h.Users.ByAuthSubject(ctx, subject)
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// safeReturn keeps redirects on-site.
func safeReturn(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	return u.RequestURI()
}
