package tokenlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultURL = "https://raw.githubusercontent.com/solana-labs/token-list/main/src/tokens/solana.tokenlist.json"

// Entry is one raw token entry from the upstream token list feed.
type Entry struct {
	ChainID    int        `json:"chainId"`
	Address    string     `json:"address"`
	Symbol     string     `json:"symbol"`
	Name       string     `json:"name"`
	Decimals   uint8      `json:"decimals"`
	LogoURI    string     `json:"logoURI"`
	Tags       []string   `json:"tags"`
	Extensions Extensions `json:"extensions"`
}

type Extensions struct {
	CoingeckoID string `json:"coingeckoId"`
}

type listDocument struct {
	Tokens []Entry `json:"tokens"`
}

// Client fetches the bulk Solana token list. It is called once at startup.
type Client struct {
	URL  string
	HTTP *http.Client
}

func NewClient(url string) *Client {
	url = strings.TrimSpace(url)
	if url == "" {
		url = defaultURL
	}
	return &Client{
		URL: url,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch downloads and decodes the token list feed.
func (c *Client) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch token list: %w", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("token list http %d", res.StatusCode)
	}

	var doc listDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode token list: %w", err)
	}
	return doc.Tokens, nil
}
