package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"farm-tracker/internal/api"
	"farm-tracker/internal/clock"
	"farm-tracker/internal/config"
)

// Server runs the HTTP API until its context is cancelled.
type Server struct {
	srv    *http.Server
	cfg    config.ServerConfig
	logger zerolog.Logger
}

// New builds a server for businessAPI using the configured address and timeouts.
func New(cfg config.ServerConfig, businessAPI api.BusinessAPI, clk clock.Clock, logger zerolog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         cfg.Address,
			Handler:      NewRouter(businessAPI, clk, logger),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.cfg.Address).Msg("API server starting")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
