package http

import (
	"fmt"
	"net/http"

	"github.com/42roma/monitor/internal/config"
	"go.uber.org/zap"
)

type Server struct {
	cfg     *config.HTTPConfig
	logger  *zap.Logger
	handler http.Handler
}

func NewServer(cfg *config.HTTPConfig, logger *zap.Logger, handler http.Handler) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
	}
}

// Run serves until the listener fails. TLS is used when a certificate pair
// is configured, matching the production deployment behind the campus
// wildcard certificate.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)

	if s.cfg.TLSCertPath != "" && s.cfg.TLSKeyPath != "" {
		s.logger.Info("HTTPS server started", zap.String("address", addr))
		if err := http.ListenAndServeTLS(addr, s.cfg.TLSCertPath, s.cfg.TLSKeyPath, s.handler); err != nil {
			return fmt.Errorf("https server on %s: %w", addr, err)
		}
		return nil
	}

	s.logger.Info("HTTP server started", zap.String("address", addr))
	if err := http.ListenAndServe(addr, s.handler); err != nil {
		return fmt.Errorf("http server on %s: %w", addr, err)
	}
	return nil
}
