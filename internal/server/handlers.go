package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"solana-token-api/internal/helius"
	"solana-token-api/internal/prices"
	"solana-token-api/internal/registry"
	"solana-token-api/internal/resolver"
	"solana-token-api/internal/swap"
)

// SwapService is the quote/swap surface the handlers call. Satisfied
// by *swap.Service; stubbed in tests.
type SwapService interface {
	Quote(ctx context.Context, req swap.QuoteRequest) (*swap.QuoteResult, error)
	Swap(ctx context.Context, req swap.QuoteRequest) (*swap.SwapResult, error)
}

// BalanceSource fetches wallet balances. Satisfied by *helius.Client.
type BalanceSource interface {
	Balances(ctx context.Context, address string, index *registry.Index) ([]helius.Balance, error)
}

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Index    *registry.Index         // Token registry index (read-only after startup)
	Chain    resolver.DecimalsLookup // Live decimals lookup for mints missing from the index
	Swaps    SwapService             // Quote/swap orchestrator
	Balances BalanceSource           // Helius balances client (optional)
	Prices   *prices.Client          // CoinGecko price client (optional)
	DevMode  bool                    // Enable detailed error responses in development
	Logger   *logrus.Logger          // Structured logger
}

// err returns a standardized JSON error response
// In dev mode, includes additional error details for debugging
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

// withTimeout creates a context with timeout, defaulting to 10 seconds if duration <= 0
func (h *Handlers) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true, Tokens: h.Index.Len()})
}

// TokenInfo looks up token information by symbol, name, or mint
// address and returns every match. Unlike the swap path, ambiguity is
// fine here: this endpoint is informational.
func (h *Handlers) TokenInfo(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return h.err(c, http.StatusBadRequest, "query parameter is required", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var matches []*registry.Token
	if resolver.Classify(query) == resolver.KindAddress {
		if t, ok := h.Index.LookupByAddress(query); ok {
			matches = []*registry.Token{t}
		} else {
			// Unknown mint: fetch decimals live. A failed lookup means the
			// address is not a token mint we can describe.
			decimals, present, err := h.Chain.GetTokenSupply(ctx, query)
			if err != nil {
				return h.err(c, http.StatusNotFound, "token mint address not found or invalid", map[string]any{"err": err.Error()})
			}
			if !present {
				decimals = 0
			}
			return c.JSON(http.StatusOK, []TokenInfo{{Address: query, Decimals: decimals}})
		}
	} else {
		matches = h.Index.LookupBySymbol(query)
		if len(matches) == 0 {
			matches = h.Index.LookupByName(query)
		}
	}

	if len(matches) == 0 {
		return h.err(c, http.StatusNotFound, "token not found", nil)
	}

	out := make([]TokenInfo, 0, len(matches))
	for _, t := range matches {
		info := TokenInfo{
			Symbol:   t.Symbol,
			Name:     t.Name,
			Address:  t.Address,
			Decimals: t.Decimals,
			LogoURI:  t.LogoURI,
			Tags:     t.Tags,
		}
		if h.Prices != nil && t.CoingeckoID != "" {
			if p, ok := h.Prices.USDPrice(ctx, t.CoingeckoID); ok {
				info.Price = &p
			}
		}
		out = append(out, info)
	}
	return c.JSON(http.StatusOK, out)
}

// Price returns the USD spot price for a CoinGecko id. Prices are
// display values and never feed the swap math.
func (h *Handlers) Price(c echo.Context) error {
	if h.Prices == nil {
		return h.err(c, http.StatusInternalServerError, "prices are not configured", nil)
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return h.err(c, http.StatusBadRequest, "price id is required", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	p, ok := h.Prices.USDPrice(ctx, id)
	if !ok {
		return h.err(c, http.StatusNotFound, "no price for id", nil)
	}
	return c.JSON(http.StatusOK, PriceResponse{ID: id, USD: p})
}

// WalletBalances returns SOL and SPL token balances for a wallet address
func (h *Handlers) WalletBalances(c echo.Context) error {
	if h.Balances == nil {
		return h.err(c, http.StatusInternalServerError, "balances are not configured", nil)
	}

	address := strings.TrimSpace(c.Param("address"))
	if resolver.Classify(address) != resolver.KindAddress {
		return h.err(c, http.StatusBadRequest, "invalid wallet address", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	items, err := h.Balances.Balances(ctx, address, h.Index)
	if err != nil {
		return h.err(c, http.StatusBadGateway, "failed to fetch balances", map[string]any{"err": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

// bindSwapBody parses the shared quote/swap request body into a core
// request, keeping the amount exact.
func (h *Handlers) bindSwapBody(c echo.Context) (swap.QuoteRequest, bool, error) {
	var body SwapBody
	if err := c.Bind(&body); err != nil {
		return swap.QuoteRequest{}, false, h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	if strings.TrimSpace(body.InputToken) == "" || strings.TrimSpace(body.OutputToken) == "" {
		return swap.QuoteRequest{}, false, h.err(c, http.StatusBadRequest, "input_token and output_token are required", nil)
	}

	amt, err := decimal.NewFromString(body.Amount.String())
	if err != nil {
		return swap.QuoteRequest{}, false, h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amount": "must be a decimal number"})
	}

	slippage := 50
	if body.SlippageBps != nil {
		slippage = *body.SlippageBps
	}

	return swap.QuoteRequest{
		InputToken:  body.InputToken,
		OutputToken: body.OutputToken,
		Amount:      amt,
		SlippageBps: slippage,
	}, true, nil
}

// Quote returns a normalized swap quote without building a transaction
func (h *Handlers) Quote(c echo.Context) error {
	req, ok, err := h.bindSwapBody(c)
	if !ok {
		return err
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	out, err := h.Swaps.Quote(ctx, req)
	if err != nil {
		return h.err(c, statusForError(err), err.Error(), nil)
	}
	return c.JSON(http.StatusOK, out)
}

// Swap quotes the pair and builds a Jupiter swap transaction. With a
// configured server key the transaction is signed and broadcast;
// otherwise the unsigned transaction is returned for client signing.
func (h *Handlers) Swap(c echo.Context) error {
	req, ok, err := h.bindSwapBody(c)
	if !ok {
		return err
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	out, err := h.Swaps.Swap(ctx, req)
	if err != nil {
		return h.err(c, statusForError(err), err.Error(), nil)
	}
	return c.JSON(http.StatusOK, out)
}
