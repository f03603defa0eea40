package http

import (
	"net/http"

	"github.com/42roma/monitor/internal/adapter/oauth"
	"go.uber.org/zap"
)

type AuthHandler struct {
	oauthClient *oauth.Client
	sessions    *SessionManager
	logger      *zap.Logger
}

func NewAuthHandler(oauthClient *oauth.Client, sessions *SessionManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		oauthClient: oauthClient,
		sessions:    sessions,
		logger:      logger.Named("AuthHTTPHandler"),
	}
}

// Login sends an already-authenticated caller to the dashboard and everyone
// else to the identity provider.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if callerIdentity(r) != nil {
		http.Redirect(w, r, "/announcements", http.StatusFound)
		return
	}
	http.Redirect(w, r, h.oauthClient.AuthURL(), http.StatusFound)
}

// Callback completes the OAuth flow. A failed exchange leaves the caller
// without a session rather than surfacing the upstream fault.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	identity, err := h.oauthClient.ExchangeCode(r.Context(), code)
	if err != nil {
		h.logger.Error("OAuth code exchange failed", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := h.sessions.Issue(w, identity); err != nil {
		h.logger.Error("Failed to issue session cookie", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/announcements", http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
