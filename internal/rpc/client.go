package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client is a minimal JSON-RPC HTTP client for a Solana node. Calls
// are single-attempt with a bounded timeout; failures surface to the
// caller instead of being retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

// ClientConfig holds configuration for the RPC client
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// NewClient creates a new RPC client
func NewClient(cfg ClientConfig) *Client {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: cfg.BaseURL,
		logger:  cfg.Logger,
	}
}

// Call makes a JSON-RPC call and unmarshals the raw response envelope
// into result.
func (c *Client) Call(ctx context.Context, method string, params interface{}, result interface{}) error {
	body := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, data)
	if err != nil {
		c.logger.WithField("method", method).WithError(err).Debug("RPC call failed")
		return err
	}

	if err := json.Unmarshal(resp, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func (c *Client) doRequest(ctx context.Context, data []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Handle rate limiting
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited (429)")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// GetTokenSupply fetches the supply record for a mint and reports its
// decimals. present is false when the node answered but the decimals
// field was absent, which callers must treat differently from a failed
// call.
func (c *Client) GetTokenSupply(ctx context.Context, mint string) (decimals uint8, present bool, err error) {
	params := []interface{}{mint}

	var result TokenSupplyResponse
	if err := c.Call(ctx, "getTokenSupply", params, &result); err != nil {
		return 0, false, err
	}

	if result.Error != nil {
		return 0, false, result.Error
	}

	// A 200 with neither result nor error is a malformed envelope, not
	// evidence that the mint exists.
	if result.Result == nil {
		return 0, false, fmt.Errorf("getTokenSupply returned no result")
	}
	if result.Result.Value.Decimals == nil {
		return 0, false, nil
	}
	return *result.Result.Value.Decimals, true, nil
}

// SendTransaction submits a base64-encoded signed transaction and
// returns its signature.
func (c *Client) SendTransaction(ctx context.Context, txBase64 string, skipPreflight bool, preflightCommitment string) (string, error) {
	if preflightCommitment == "" {
		preflightCommitment = "processed"
	}
	params := []interface{}{
		txBase64,
		map[string]interface{}{
			"encoding":            "base64",
			"skipPreflight":       skipPreflight,
			"preflightCommitment": preflightCommitment,
		},
	}

	var result SendTransactionResponse
	if err := c.Call(ctx, "sendTransaction", params, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", result.Error
	}
	if result.Result == "" {
		return "", fmt.Errorf("sendTransaction returned no signature")
	}

	return result.Result, nil
}
