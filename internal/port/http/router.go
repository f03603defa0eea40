package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// requestLogger logs one line per request with method, path and duration.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// NewRouter wires all dashboard routes. The session middleware runs on every
// request; authorization decisions belong to the use cases underneath.
func NewRouter(
	sessions *SessionManager,
	authHandler *AuthHandler,
	dashboardHandler *DashboardHandler,
	announcementHandler *AnnouncementHandler,
	staffHandler *StaffHandler,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(sessions.Middleware)

	// Public dashboard views.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/map", http.StatusFound)
	})
	r.Get("/map", dashboardHandler.Map)
	r.Get("/announcements/active", dashboardHandler.Active)
	r.Get("/events/upcoming", dashboardHandler.UpcomingEvents)

	// Login flow.
	r.Get("/login", authHandler.Login)
	r.Get("/callback", authHandler.Callback)
	r.Post("/logout", authHandler.Logout)

	// Announcement management.
	r.Post("/announcements", announcementHandler.Create)
	r.Get("/announcements", announcementHandler.List)
	r.Get("/announcements/{id}", announcementHandler.GetForEdit)
	r.Put("/announcements/{id}", announcementHandler.Edit)

	// Staff tools.
	r.Get("/staff", staffHandler.Dashboard)
	r.Get("/banner", staffHandler.GetBanner)
	r.Post("/banner", staffHandler.UpdateBanner)
	r.Get("/maintenance", staffHandler.ListMaintenance)
	r.Post("/maintenance/toggle", staffHandler.ToggleMaintenance)

	return r
}
