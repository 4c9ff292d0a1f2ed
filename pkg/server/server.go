package server

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Server wraps http.Server with lifecycle logging.
type Server struct {
	http.Server
	Logger *logrus.Logger
}

func (s *Server) ListenAndServe() error {
	s.Logger.WithField("addr", s.Addr).Info("http server listening")

	err := s.Server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.Logger.WithError(err).Error("http server stopped unexpectedly")
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("http server shutting down")

	return s.Server.Shutdown(ctx)
}
