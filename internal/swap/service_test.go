package swap

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-token-api/internal/jupiter"
	"solana-token-api/internal/registry"
	"solana-token-api/internal/resolver"
	"solana-token-api/internal/tokenlist"
)

const (
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	solMint  = "So11111111111111111111111111111111111111112"
)

type stubProvider struct {
	quote    *jupiter.QuoteResponse
	quoteErr error
	lastReq  jupiter.QuoteRequest

	swap    *jupiter.SwapResponse
	swapErr error
}

func (s *stubProvider) Quote(ctx context.Context, req jupiter.QuoteRequest) (*jupiter.QuoteResponse, error) {
	s.lastReq = req
	return s.quote, s.quoteErr
}

func (s *stubProvider) BuildSwap(ctx context.Context, req jupiter.SwapRequest) (*jupiter.SwapResponse, error) {
	return s.swap, s.swapErr
}

type stubChain struct{}

func (stubChain) GetTokenSupply(ctx context.Context, mint string) (uint8, bool, error) {
	return 0, false, errors.New("not on chain")
}

func newTestService(provider Provider) *Service {
	idx := registry.Build([]tokenlist.Entry{
		{ChainID: 101, Address: usdcMint, Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{ChainID: 101, Address: solMint, Symbol: "SOL", Name: "Wrapped SOL", Decimals: 9},
	})
	res := resolver.New(idx, stubChain{}, nil)
	return NewService(res, provider, nil, nil)
}

func quoteReq(in, out, amt string, slippage int) QuoteRequest {
	return QuoteRequest{
		InputToken:  in,
		OutputToken: out,
		Amount:      decimal.RequireFromString(amt),
		SlippageBps: slippage,
	}
}

func TestQuote_HappyPath(t *testing.T) {
	provider := &stubProvider{
		quote: &jupiter.QuoteResponse{
			OutAmount:      "150000000",
			PriceImpactPct: "0.01",
			RoutePlan: []jupiter.RoutePlanStep{
				{SwapInfo: jupiter.SwapInfo{Label: "Orca"}},
				{SwapInfo: jupiter.SwapInfo{Label: "Raydium"}},
			},
		},
	}
	svc := newTestService(provider)

	got, err := svc.Quote(context.Background(), quoteReq("SOL", "USDC", "1.5", 50))
	require.NoError(t, err)

	assert.Equal(t, solMint, got.InputMint)
	assert.Equal(t, usdcMint, got.OutputMint)
	assert.Equal(t, uint64(1_500_000_000), got.InAmount, "1.5 SOL at 9 decimals")
	assert.Equal(t, uint64(150_000_000), got.OutAmount)
	assert.True(t, got.OutAmountHuman.Equal(decimal.RequireFromString("150")), "got %s", got.OutAmountHuman)
	assert.Equal(t, []string{"Orca", "Raydium"}, got.Route)

	assert.Equal(t, "1500000000", provider.lastReq.Amount)
	require.NotNil(t, provider.lastReq.SlippageBps)
	assert.Equal(t, uint16(50), *provider.lastReq.SlippageBps)
}

func TestQuote_InvalidArguments(t *testing.T) {
	svc := newTestService(&stubProvider{})

	_, err := svc.Quote(context.Background(), quoteReq("SOL", "USDC", "0", 50))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Quote(context.Background(), quoteReq("SOL", "USDC", "-1", 50))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Quote(context.Background(), quoteReq("SOL", "USDC", "1", -1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Quote(context.Background(), quoteReq("SOL", "USDC", "1", 10001))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestQuote_ResolutionErrorsPropagate(t *testing.T) {
	svc := newTestService(&stubProvider{})

	_, err := svc.Quote(context.Background(), quoteReq("NOPE", "USDC", "1", 50))
	assert.ErrorIs(t, err, resolver.ErrTokenNotFound)

	_, err = svc.Quote(context.Background(), quoteReq("", "USDC", "1", 50))
	assert.ErrorIs(t, err, resolver.ErrInvalidIdentifier)
}

func TestQuote_SameToken(t *testing.T) {
	svc := newTestService(&stubProvider{})

	// Same mint through different identifiers still collides.
	_, err := svc.Quote(context.Background(), quoteReq("USDC", usdcMint, "1", 50))
	assert.ErrorIs(t, err, ErrSameToken)
}

func TestQuote_ProviderFailure(t *testing.T) {
	svc := newTestService(&stubProvider{quoteErr: errors.New("connection refused")})

	_, err := svc.Quote(context.Background(), quoteReq("SOL", "USDC", "1", 50))
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestQuote_NoRoute(t *testing.T) {
	for _, outAmount := range []string{"", "0"} {
		svc := newTestService(&stubProvider{quote: &jupiter.QuoteResponse{OutAmount: outAmount}})

		_, err := svc.Quote(context.Background(), quoteReq("SOL", "USDC", "1", 50))
		assert.ErrorIs(t, err, ErrNoRouteFound, "outAmount=%q", outAmount)
	}
}

func TestQuote_MalformedOutAmount(t *testing.T) {
	svc := newTestService(&stubProvider{quote: &jupiter.QuoteResponse{OutAmount: "lots"}})

	_, err := svc.Quote(context.Background(), quoteReq("SOL", "USDC", "1", 50))
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestSwap_UnsignedWhenNoSigner(t *testing.T) {
	provider := &stubProvider{
		quote: &jupiter.QuoteResponse{OutAmount: "1000"},
		swap:  &jupiter.SwapResponse{SwapTransaction: "AQIDBA=="},
	}
	svc := newTestService(provider)

	got, err := svc.Swap(context.Background(), quoteReq("SOL", "USDC", "1", 50))
	require.NoError(t, err)
	assert.Equal(t, "AQIDBA==", got.SwapTransaction)
	assert.NotEmpty(t, got.Message)
	assert.Empty(t, got.TransactionID)
}

type stubSigner struct {
	txid string
	err  error
}

func (s *stubSigner) Address() string { return "SignerPubkey111111111111111111111111111111111" }
func (s *stubSigner) SignAndSend(ctx context.Context, txBase64 string) (string, error) {
	return s.txid, s.err
}

func TestSwap_SignedWhenSignerConfigured(t *testing.T) {
	provider := &stubProvider{
		quote: &jupiter.QuoteResponse{OutAmount: "1000"},
		swap:  &jupiter.SwapResponse{SwapTransaction: "AQIDBA=="},
	}
	svc := newTestService(provider)
	svc.signer = &stubSigner{txid: "5sig"}

	got, err := svc.Swap(context.Background(), quoteReq("SOL", "USDC", "1", 50))
	require.NoError(t, err)
	assert.Equal(t, "5sig", got.TransactionID)
	assert.Equal(t, "https://explorer.solana.com/tx/5sig", got.ExplorerURL)
	assert.Empty(t, got.SwapTransaction)
}

func TestSwap_BuildFailure(t *testing.T) {
	provider := &stubProvider{
		quote:   &jupiter.QuoteResponse{OutAmount: "1000"},
		swapErr: errors.New("boom"),
	}
	svc := newTestService(provider)

	_, err := svc.Swap(context.Background(), quoteReq("SOL", "USDC", "1", 50))
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestSwap_MissingTransaction(t *testing.T) {
	provider := &stubProvider{
		quote: &jupiter.QuoteResponse{OutAmount: "1000"},
		swap:  &jupiter.SwapResponse{},
	}
	svc := newTestService(provider)

	_, err := svc.Swap(context.Background(), quoteReq("SOL", "USDC", "1", 50))
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
