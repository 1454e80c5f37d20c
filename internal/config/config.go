package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP API settings
	APIAddr string
	APIKey  string
	DevMode bool

	// RPC settings
	RPCUrl      string
	HTTPTimeout time.Duration

	// Token list settings
	TokenListURL string

	// Jupiter settings
	JupiterBaseURL string
	JupiterAPIKey  string

	// Helius settings
	HeliusAPIKey string

	// CoinGecko settings
	CoingeckoBaseURL string

	// Redis settings (optional price cache)
	RedisAddr string

	// Wallet settings (optional server-side signing)
	WalletPrivateKey string
}

func Load() *Config {
	return &Config{
		// API
		APIAddr: getEnv("API_ADDR", ":8080"),
		APIKey:  getEnv("API_KEY", ""),
		DevMode: getBoolEnv("DEV_MODE", false),

		// RPC
		RPCUrl:      getEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT", 10*time.Second),

		// Token list
		TokenListURL: getEnv("TOKEN_LIST_URL", ""),

		// Jupiter
		JupiterBaseURL: getEnv("JUPITER_BASE_URL", ""),
		JupiterAPIKey:  getEnv("JUPITER_API_KEY", ""),

		// Helius
		HeliusAPIKey: getEnv("HELIUS_API_KEY", ""),

		// CoinGecko
		CoingeckoBaseURL: getEnv("COINGECKO_BASE_URL", ""),

		// Redis
		RedisAddr: getEnv("REDIS_ADDR", ""),

		// Wallet
		WalletPrivateKey: getEnv("PRIVATE_KEY", ""),
	}
}

func (c *Config) Validate() error {
	if c.APIAddr == "" {
		return fmt.Errorf("API_ADDR is required")
	}
	if c.RPCUrl == "" {
		return fmt.Errorf("SOLANA_RPC_URL is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
