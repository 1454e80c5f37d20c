package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"solana-token-api/internal/amount"
	"solana-token-api/internal/resolver"
	"solana-token-api/internal/swap"
)

// NotFoundJSON returns a custom HTTP error handler that returns JSON responses
// This ensures all errors (including 404s) have consistent JSON format
func NotFoundJSON() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		// Don't send response if already committed
		if c.Response().Committed {
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			_ = c.JSON(he.Code, ErrorResponse{
				Error: http.StatusText(he.Code),
				Code:  he.Code,
			})
			return
		}

		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  http.StatusInternalServerError,
		})
	}
}

// statusForError maps core error kinds to HTTP status codes. The core
// packages know nothing about transport codes; the mapping lives here.
func statusForError(err error) int {
	switch {
	case errors.Is(err, resolver.ErrInvalidIdentifier),
		errors.Is(err, resolver.ErrAmbiguousSymbol),
		errors.Is(err, resolver.ErrAmbiguousName),
		errors.Is(err, swap.ErrInvalidArgument),
		errors.Is(err, swap.ErrSameToken),
		errors.Is(err, swap.ErrNoRouteFound),
		errors.Is(err, amount.ErrInvalidAmount),
		errors.Is(err, amount.ErrAmountOverflow):
		return http.StatusBadRequest
	case errors.Is(err, resolver.ErrTokenNotFound):
		return http.StatusNotFound
	case errors.Is(err, swap.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
