package server

import "encoding/json"

// ErrorResponse represents a standardized error response format
type ErrorResponse struct {
	Error   string `json:"error"`             // Human-readable error message
	Code    int    `json:"code"`              // HTTP status code
	Details any    `json:"details,omitempty"` // Additional error details (dev mode only)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK     bool `json:"ok"`
	Tokens int  `json:"tokens"` // Number of tokens in the registry index
}

// TokenInfo is one token info result, optionally enriched with a USD
// spot price.
type TokenInfo struct {
	Symbol   string   `json:"symbol,omitempty"`
	Name     string   `json:"name,omitempty"`
	Address  string   `json:"address"`
	Decimals uint8    `json:"decimals"`
	LogoURI  string   `json:"logoURI,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// PriceResponse is the USD spot price for one CoinGecko id.
type PriceResponse struct {
	ID  string  `json:"id"`
	USD float64 `json:"usd"`
}

// SwapBody is the request body shared by the quote and swap endpoints.
// Amount uses json.Number so the decimal literal reaches the converter
// without a float round-trip.
type SwapBody struct {
	InputToken  string      `json:"input_token"`
	OutputToken string      `json:"output_token"`
	Amount      json.Number `json:"amount"`
	SlippageBps *int        `json:"slippage_bps"`
}
