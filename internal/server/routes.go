package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RegisterRoutes configures all API routes, middleware, and error handlers
func RegisterRoutes(e *echo.Echo, h *Handlers, cfg ServerConfig) {
	// Set custom error handler for consistent JSON responses
	e.HTTPErrorHandler = NotFoundJSON()

	// Apply global middleware
	e.Use(SetJSONContentType) // Ensure all responses are JSON
	e.Use(SetNoCacheHeaders)  // Prevent caching of API responses

	// Optional API key authentication
	if cfg.APIKey != "" {
		e.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "header:X-API-Key",
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == cfg.APIKey, nil
			},
		}))
	}

	// API v1 routes
	v1 := e.Group("/v1")
	v1.GET("/health", h.Health)                    // Health check endpoint
	v1.GET("/tokens", h.TokenInfo)                 // Token info by symbol, name, or mint
	v1.GET("/balances/:address", h.WalletBalances) // Wallet SOL + SPL balances
	v1.GET("/prices/:id", h.Price)                 // USD spot price by CoinGecko id

	// Quote and swap endpoints with rate limiting; both hit the
	// upstream aggregator.
	swapGroup := v1.Group("")
	swapGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(2), // 2 requests per second per client
		Burst:     5,
		ExpiresIn: 2 * time.Minute,
	})))
	swapGroup.POST("/quote", h.Quote) // Swap quote without transaction build
	swapGroup.POST("/swap", h.Swap)   // Build (and optionally sign) a swap

	// Catch-all route for 404 responses
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Code: http.StatusNotFound})
	})
}
