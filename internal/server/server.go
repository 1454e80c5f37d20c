package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	Addr    string // Server bind address (e.g., ":8080")
	DevMode bool   // Enable development mode (detailed error responses)
	APIKey  string // Optional API key for authentication
}

// Server wraps the echo instance so main only deals with Start/Shutdown
type Server struct {
	e   *echo.Echo
	cfg ServerConfig
}

// NewServer builds the echo instance, registers middleware and routes
func NewServer(h *Handlers, cfg ServerConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// The swap handler allows the upstream build up to 30s, so the
	// write timeout must outlive it.
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 45 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	RegisterRoutes(e, h, cfg)

	return &Server{e: e, cfg: cfg}
}

// Start begins serving HTTP requests on the configured address
func (s *Server) Start() error {
	return s.e.Start(s.cfg.Addr)
}

// Shutdown stops accepting new connections and drains in-flight
// requests, giving up after 10 seconds.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.e.Shutdown(ctx)
}

// SetNoCacheHeaders middleware prevents caching of API responses
func SetNoCacheHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		return next(c)
	}
}

// SetJSONContentType middleware ensures all responses have JSON content type
func SetJSONContentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return next(c)
	}
}
