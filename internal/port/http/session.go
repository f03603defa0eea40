package http

import (
	"context"
	"net/http"
	"time"

	"github.com/42roma/monitor/internal/entity"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const sessionCookieName = "monitor_session"

type contextKey string

const identityCtxKey = contextKey("identity")

// SessionManager issues and verifies the signed session cookie that carries
// the caller identity between requests. Cookies are HttpOnly, Secure and
// SameSite=Lax with a bounded lifetime.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionManager(secret string, ttl time.Duration, logger *zap.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, logger: logger}
}

type sessionClaims struct {
	Login string `json:"login"`
	Kind  string `json:"kind"`
	jwt.RegisteredClaims
}

// Issue writes a fresh session cookie for identity.
func (s *SessionManager) Issue(w http.ResponseWriter, identity *entity.Identity) error {
	now := time.Now()
	claims := sessionClaims{
		Login: identity.Login,
		Kind:  identity.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (s *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// identity parses the session cookie into a caller identity. Missing,
// expired or tampered cookies all resolve to nil: the dashboard treats an
// absent identity the same way regardless of why it is absent.
func (s *SessionManager) identity(r *http.Request) *entity.Identity {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(c.Value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		s.logger.Debug("Rejected session cookie", zap.Error(err))
		return nil
	}
	if claims.Login == "" {
		return nil
	}
	return &entity.Identity{Login: claims.Login, Kind: claims.Kind}
}

// Middleware resolves the session cookie once per request and stores the
// identity (possibly nil) in the request context.
func (s *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), identityCtxKey, s.identity(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerIdentity pulls the identity the middleware stored, nil when no one
// is logged in.
func callerIdentity(r *http.Request) *entity.Identity {
	identity, _ := r.Context().Value(identityCtxKey).(*entity.Identity)
	return identity
}
