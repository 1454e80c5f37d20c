package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"

	cacheKeyPrefix = "price:"
	cacheTTL       = 30 * time.Second
)

// Client looks up USD spot prices by CoinGecko id. Prices are
// display-only floats, outside the exact-decimal swap math. An
// optional Redis cache keeps repeated token-info lookups from hammering
// the public API; the quote path never goes through here.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	cache  redis.Cmdable // nil disables caching
	logger *logrus.Logger
}

func NewClient(baseURL string, cache redis.Cmdable, logger *logrus.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 5 * time.Second,
		},
		cache:  cache,
		logger: logger,
	}
}

// USDPrice returns the USD price for a CoinGecko id, or ok=false when
// the id is unknown or the API is unreachable. Price failures are
// non-fatal: token info is still served without a price.
func (c *Client) USDPrice(ctx context.Context, coingeckoID string) (price float64, ok bool) {
	id := strings.TrimSpace(coingeckoID)
	if id == "" {
		return 0, false
	}

	if c.cache != nil {
		if v, err := c.cache.Get(ctx, cacheKeyPrefix+id).Result(); err == nil {
			if p, err := strconv.ParseFloat(v, 64); err == nil {
				return p, true
			}
		}
	}

	p, err := c.fetch(ctx, id)
	if err != nil {
		c.logger.WithField("id", id).WithError(err).Debug("price lookup failed")
		return 0, false
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKeyPrefix+id, strconv.FormatFloat(p, 'f', -1, 64), cacheTTL).Err(); err != nil {
			c.logger.WithError(err).Debug("price cache write failed")
		}
	}
	return p, true
}

func (c *Client) fetch(ctx context.Context, id string) (float64, error) {
	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.BaseURL, url.QueryEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return 0, fmt.Errorf("coingecko http %d", res.StatusCode)
	}

	var data map[string]map[string]float64
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("failed to decode price response: %w", err)
	}

	p, found := data[id]["usd"]
	if !found {
		return 0, fmt.Errorf("no usd price for %q", id)
	}
	return p, nil
}
