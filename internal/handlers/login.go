package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/swaglabs/shopcheck/internal/models"
	"github.com/swaglabs/shopcheck/internal/services"
	"go.uber.org/zap"
)

// LoginHandler serves the login form at /
type LoginHandler struct {
	template    *template.Template
	auth        services.AuthService
	sessions    services.SessionService
	glitchDelay time.Duration
	logger      *zap.Logger
	notFound    http.Handler
}

// LoginData represents the data passed to the login template
type LoginData struct {
	Username string
}

// NewLoginHandler creates a new login handler. Requests for unknown paths
// under / are passed to notFound.
func NewLoginHandler(auth services.AuthService, sessions services.SessionService, glitchDelay time.Duration, notFound http.Handler, logger *zap.Logger) (*LoginHandler, error) {
	tmpl, err := parsePage("login.html")
	if err != nil {
		return nil, err
	}

	return &LoginHandler{
		template:    tmpl,
		auth:        auth,
		sessions:    sessions,
		glitchDelay: glitchDelay,
		logger:      logger,
		notFound:    notFound,
	}, nil
}

// loginMessage maps an authentication error to the banner text
func loginMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrUsernameRequired):
		return "Epic sadface: Username is required"
	case errors.Is(err, models.ErrPasswordRequired):
		return "Epic sadface: Password is required"
	case errors.Is(err, models.ErrLockedOut):
		return "Epic sadface: Sorry, this user has been locked out."
	default:
		return "Epic sadface: Username and password do not match any user in this service"
	}
}

// ServeHTTP handles GET and POST /
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.notFound.ServeHTTP(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		render(w, h.logger, h.template, http.StatusOK, pageData{Page: LoginData{}})
	case http.MethodPost:
		h.login(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("user-name")
	account, err := h.auth.Authenticate(username, r.PostFormValue("password"))
	if err != nil {
		h.logger.Info("Login rejected", zap.String("username", username), zap.Error(err))
		render(w, h.logger, h.template, http.StatusOK, pageData{
			Error: loginMessage(err),
			Page:  LoginData{Username: username},
		})
		return
	}

	if account.Quirk == models.QuirkPerformanceGlitch && h.glitchDelay > 0 {
		select {
		case <-time.After(h.glitchDelay):
		case <-r.Context().Done():
			return
		}
	}

	// a new login replaces whatever session this browser still carried
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.End(cookie.Value); err == nil {
			h.logger.Debug("Replaced previous session", zap.String("session", cookie.Value))
		}
	}

	sess, err := h.sessions.Start(account)
	if err != nil {
		h.logger.Error("Error starting session", zap.Error(err))
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}
	h.logger.Info("Login accepted", zap.String("username", account.Username), zap.String("session", sess.ID))

	setSessionCookie(w, sess.ID)
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}
