package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"solana-token-api/internal/config"
	"solana-token-api/internal/helius"
	"solana-token-api/internal/jupiter"
	"solana-token-api/internal/prices"
	"solana-token-api/internal/registry"
	"solana-token-api/internal/resolver"
	"solana-token-api/internal/rpc"
	"solana-token-api/internal/server"
	"solana-token-api/internal/swap"
	"solana-token-api/internal/tokenlist"
	"solana-token-api/internal/wallet"
)

// env bootstrap function
func loadEnv(logger *logrus.Logger) {
	// Get the project root directory (where go.mod is)
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

// main is the entry point for the token API server
// It initializes all dependencies and starts the HTTP server with graceful shutdown
func main() {
	// Initialize structured logger with custom formatting
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	// load .env BEFORE anything reads os.Getenv
	loadEnv(logger)

	// Load and validate configuration from environment variables
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown (Ctrl+C, SIGTERM)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Load the bulk token list once at startup. A failed load is not
	// fatal: the registry stays empty and every resolution falls back
	// to live RPC lookups.
	index := registry.Empty()
	{
		fetchCtx, fetchCancel := context.WithTimeout(ctx, 20*time.Second)
		entries, err := tokenlist.NewClient(cfg.TokenListURL).Fetch(fetchCtx)
		fetchCancel()
		if err != nil {
			logger.WithError(err).Warn("could not fetch token list, registry will be empty")
		} else {
			index = registry.Build(entries)
			logger.WithField("tokens", index.Len()).Info("token registry loaded")
		}
	}

	// Solana RPC client for live decimals lookups and transaction sends
	rpcClient := rpc.NewClient(rpc.ClientConfig{
		BaseURL: cfg.RPCUrl,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})

	// Jupiter aggregator client for quotes and swap transaction builds
	jup := jupiter.NewClient(cfg.JupiterBaseURL, cfg.JupiterAPIKey)

	// Optional server-side signing wallet
	var signer swap.Signer
	if cfg.WalletPrivateKey != "" {
		w, err := wallet.New(wallet.Config{PrivateKey: cfg.WalletPrivateKey}, rpcClient)
		if err != nil {
			logger.WithError(err).Fatal("invalid PRIVATE_KEY")
		}
		signer = w
		logger.WithField("address", w.Address()).Info("server-side signing enabled")
	}

	// Token resolver and swap orchestrator
	res := resolver.New(index, rpcClient, logger)
	swapService := swap.NewService(res, jup, signer, logger)

	// Optional Redis price cache for the token info endpoint
	var priceCache redis.Cmdable
	if cfg.RedisAddr != "" {
		rclient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rclient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable, price caching disabled")
		} else {
			priceCache = rclient
		}
	}
	priceClient := prices.NewClient(cfg.CoingeckoBaseURL, priceCache, logger)

	// Optional Helius balances client
	var balances server.BalanceSource
	if cfg.HeliusAPIKey != "" {
		balances = helius.NewClient("", cfg.HeliusAPIKey)
	}

	// Create handlers with all dependencies injected
	h := &server.Handlers{
		Index:    index,
		Chain:    rpcClient,
		Swaps:    swapService,
		Balances: balances,
		Prices:   priceClient,
		DevMode:  cfg.DevMode,
		Logger:   logger,
	}

	// Create HTTP server with configuration and handlers
	srv := server.NewServer(h, server.ServerConfig{
		Addr:    cfg.APIAddr,
		DevMode: cfg.DevMode,
		APIKey:  cfg.APIKey,
	})

	// Serve in the background; the main goroutine owns shutdown so the
	// drain finishes before the process exits.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	logger.WithField("addr", cfg.APIAddr).Info("api server starting")

	select {
	case sig := <-sigCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
		cancel()
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("api server failed")
		}
	}
}
