package handlers

import (
	"context"
	"net/http"

	"github.com/swaglabs/shopcheck/internal/services"
	"go.uber.org/zap"
)

// SessionCookie names the cookie that carries the session ID
const SessionCookie = "session-id"

type sessionKey struct{}

func withSession(ctx context.Context, sess services.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// sessionFrom returns the session stored by RequireSession
func sessionFrom(r *http.Request) services.Session {
	sess, _ := r.Context().Value(sessionKey{}).(services.Session)
	return sess
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireSession only lets signed-in requests through; everyone else is
// sent back to the login page.
func RequireSession(sessions services.SessionService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		sess, err := sessions.Get(cookie.Value)
		if err != nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

// LogoutHandler ends the session, which discards its cart
type LogoutHandler struct {
	sessions services.SessionService
	logger   *zap.Logger
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(sessions services.SessionService, logger *zap.Logger) *LogoutHandler {
	return &LogoutHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// ServeHTTP handles POST /logout
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.End(cookie.Value); err != nil {
			h.logger.Debug("Logout of unknown session", zap.Error(err))
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
