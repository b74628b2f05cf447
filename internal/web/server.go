// Package web serves the storefront listings as server-rendered HTML. Each
// request renders one page of a collection with the same pagination rules
// as the terminal UI; links carry the offset in ?skip=.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmcdole/storefront/internal/host"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

type Server struct {
	Echo *echo.Echo

	loader  *host.Loader
	logger  *slog.Logger
	addr    string
	timeout time.Duration
}

// NewServer wires routes and middleware. timeout bounds each catalog fetch.
func NewServer(loader *host.Loader, addr string, timeout time.Duration, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	s := &Server{
		Echo:    e,
		loader:  loader,
		logger:  logger,
		addr:    addr,
		timeout: timeout,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Echo.Use(RequestLogger(s.logger))
	s.Echo.Use(middleware.Recover())
}

func (s *Server) setupRoutes() {
	s.Echo.GET("/", s.handleHome)
	s.Echo.GET("/posts", s.handlePosts)
	s.Echo.GET("/products", s.handleProducts)
	s.Echo.GET("/healthz", s.handleHealth)
	s.Echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", "addr", s.addr)
		if err := s.Echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("web server shutting down")
	return s.Echo.Shutdown(shutdownCtx)
}
