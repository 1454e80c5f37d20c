package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://quote-api.jup.ag/v6"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP: &http.Client{
			Timeout: 12 * time.Second,
		},
	}
}

type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("jupiter http %d", e.StatusCode)
	}
	return fmt.Sprintf("jupiter http %d: %s", e.StatusCode, b)
}

// Quote asks the aggregator for an ExactIn route between two mints.
// Amount is the atomic input amount as a decimal string.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	if strings.TrimSpace(req.InputMint) == "" {
		return nil, fmt.Errorf("inputMint is required")
	}
	if strings.TrimSpace(req.OutputMint) == "" {
		return nil, fmt.Errorf("outputMint is required")
	}
	if strings.TrimSpace(req.Amount) == "" {
		return nil, fmt.Errorf("amount is required")
	}

	q := url.Values{}
	q.Set("inputMint", req.InputMint)
	q.Set("outputMint", req.OutputMint)
	q.Set("amount", req.Amount)
	q.Set("swapMode", "ExactIn")
	if req.SlippageBps != nil {
		q.Set("slippageBps", fmt.Sprintf("%d", *req.SlippageBps))
	}
	if req.OnlyDirectRoutes != nil {
		q.Set("onlyDirectRoutes", fmt.Sprintf("%t", *req.OnlyDirectRoutes))
	}

	u := c.BaseURL + "/quote?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("accept", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("x-api-key", c.APIKey)
	}

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Body: body}
	}

	var out QuoteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode jupiter quote response: %w", err)
	}
	out.SetRaw(body)
	return &out, nil
}

// BuildSwap asks the aggregator to assemble a serialized swap
// transaction for a previously obtained quote. The returned
// transaction is unsigned.
func (c *Client) BuildSwap(ctx context.Context, req SwapRequest) (*SwapResponse, error) {
	if req.QuoteResponse == nil {
		return nil, fmt.Errorf("quoteResponse is required")
	}
	if strings.TrimSpace(req.UserPublicKey) == "" {
		return nil, fmt.Errorf("userPublicKey is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal swap request: %w", err)
	}

	u := c.BaseURL + "/swap"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("content-type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("x-api-key", c.APIKey)
	}

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Body: body}
	}

	var out SwapResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode jupiter swap response: %w", err)
	}
	return &out, nil
}
