package helius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solana-token-api/internal/registry"
)

const defaultBaseURL = "https://api.helius.xyz"

// Client fetches wallet balances from the Helius API.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Balance is one wallet holding in human units. Amounts here are
// display values only.
type Balance struct {
	Token  string  `json:"token"`
	Amount float64 `json:"amount"`
}

type balancesResponse struct {
	Tokens []struct {
		Mint     string `json:"mint"`
		Amount   uint64 `json:"amount"`
		Decimals uint8  `json:"decimals"`
	} `json:"tokens"`
	NativeBalance uint64 `json:"nativeBalance"`
}

// Balances returns the SOL and non-zero SPL holdings of a wallet.
// Mints present in the registry index are reported under their symbol,
// everything else under its mint address.
func (c *Client) Balances(ctx context.Context, address string, index *registry.Index) ([]Balance, error) {
	u := fmt.Sprintf("%s/v0/addresses/%s/balances?api-key=%s", c.BaseURL, url.PathEscape(address), url.QueryEscape(c.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("helius request failed: %w", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("helius http %d", res.StatusCode)
	}

	var data balancesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode helius response: %w", err)
	}

	out := []Balance{
		{Token: "SOL", Amount: float64(data.NativeBalance) / 1e9},
	}
	for _, t := range data.Tokens {
		if t.Amount == 0 {
			continue
		}
		amt := float64(t.Amount)
		if t.Decimals > 0 {
			amt /= math.Pow(10, float64(t.Decimals))
		}
		label := t.Mint
		if index != nil {
			if rec, ok := index.LookupByAddress(t.Mint); ok && rec.Symbol != "" {
				label = rec.Symbol
			}
		}
		out = append(out, Balance{Token: label, Amount: amt})
	}
	return out, nil
}
