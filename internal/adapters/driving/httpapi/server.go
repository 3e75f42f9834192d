// Package httpapi serves the lookup search API over HTTP.
//
// It is the demo backend behind `lookup serve`: a catalog store exposed as
// the /api/config and /api/search/:category endpoints the picker queries.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/logger"
)

// Default configuration values.
const (
	DefaultAddr        = "localhost:8080"
	DefaultResultLimit = 50
	shutdownTimeout    = 5 * time.Second
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Addr is the listen address (default: localhost:8080).
	Addr string

	// AllowedOrigins restricts CORS. Empty allows every origin.
	AllowedOrigins []string

	// RateLimit caps requests per second per client. Zero disables it.
	RateLimit float64

	// ResultLimit caps items per search response (default: 50).
	ResultLimit int

	// MinSearchLength and Debounce are advertised to clients in /api/config.
	MinSearchLength int
	Debounce        time.Duration
}

// Server exposes a catalog store over HTTP.
type Server struct {
	store  driven.CatalogStore
	cfg    Config
	now    func() time.Time
	engine *gin.Engine
}

// NewServer creates a server for store.
func NewServer(store driven.CatalogStore, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	if cfg.MinSearchLength <= 0 {
		cfg.MinSearchLength = domain.DefaultMinSearchLength
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = domain.DefaultDebounceDelay
	}

	s := &Server{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Reseed replaces the served catalog.
func (s *Server) Reseed(ctx context.Context, seed driven.CatalogSeed) error {
	if err := s.store.Replace(ctx, seed); err != nil {
		return err
	}
	logger.Info("httpapi: catalog replaced (%d categories)", len(seed.Catalog.Categories))
	return nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("httpapi: listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) routes() *gin.Engine {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Accept", "Content-Type", HeaderRequestID}
	corsConfig.ExposeHeaders = []string{HeaderRequestID}
	if len(s.cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.AllowedOrigins
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		cors.New(corsConfig),
	)
	if s.cfg.RateLimit > 0 {
		r.Use(newClientLimiter(s.cfg.RateLimit).middleware())
	}

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/config", s.handleConfig)
	api.GET("/types", s.handleTypes)
	api.GET("/search/:category", s.handleSearch)

	return r
}
