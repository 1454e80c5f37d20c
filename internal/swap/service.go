package swap

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"solana-token-api/internal/amount"
	"solana-token-api/internal/jupiter"
	"solana-token-api/internal/resolver"
)

const maxSlippageBps = 10000

var (
	// ErrInvalidArgument is returned for out-of-range request fields.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSameToken is returned when both sides resolve to the same mint.
	ErrSameToken = errors.New("input and output token are the same")

	// ErrProviderUnavailable is returned when the quote provider could
	// not be reached or answered with a non-success status.
	ErrProviderUnavailable = errors.New("quote provider unavailable")

	// ErrNoRouteFound is returned when the provider answered but found
	// no tradeable route, or priced the output at zero.
	ErrNoRouteFound = errors.New("no swap route found")
)

// Provider is the external aggregator the orchestrator quotes against.
type Provider interface {
	Quote(ctx context.Context, req jupiter.QuoteRequest) (*jupiter.QuoteResponse, error)
	BuildSwap(ctx context.Context, req jupiter.SwapRequest) (*jupiter.SwapResponse, error)
}

// Signer signs and broadcasts a serialized transaction.
type Signer interface {
	Address() string
	SignAndSend(ctx context.Context, txBase64 string) (string, error)
}

// QuoteRequest is a validated, unit-unaware swap quote request. Token
// fields accept a symbol, name, or mint address.
type QuoteRequest struct {
	InputToken  string
	OutputToken string
	Amount      decimal.Decimal // human units of the input token
	SlippageBps int
}

// QuoteResult is the provider's answer normalized back to human units.
type QuoteResult struct {
	InputMint      string          `json:"input_mint"`
	OutputMint     string          `json:"output_mint"`
	InAmount       uint64          `json:"in_amount"`
	OutAmount      uint64          `json:"out_amount"`
	OutAmountHuman decimal.Decimal `json:"out_amount_human"`
	InputDecimals  uint8           `json:"input_decimals"`
	OutputDecimals uint8           `json:"output_decimals"`
	SlippageBps    int             `json:"slippage_bps"`
	PriceImpactPct string          `json:"price_impact_pct,omitempty"`
	Route          []string        `json:"route,omitempty"`

	quote *jupiter.QuoteResponse
}

// SwapResult is the outcome of a swap build, signed or not.
type SwapResult struct {
	Quote *QuoteResult `json:"quote"`

	// Unsigned path: the serialized transaction for client-side signing.
	SwapTransaction string `json:"swap_transaction,omitempty"`
	Message         string `json:"message,omitempty"`

	// Signed path: the broadcast transaction.
	TransactionID string `json:"transaction_id,omitempty"`
	ExplorerURL   string `json:"explorer_url,omitempty"`
}

// Service coordinates resolution, amount conversion and the quote
// provider. It holds no mutable state; every call is independent.
type Service struct {
	resolver *resolver.Resolver
	provider Provider
	signer   Signer // nil when no server-side key is configured
	logger   *logrus.Logger
}

func NewService(res *resolver.Resolver, provider Provider, signer Signer, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{resolver: res, provider: provider, signer: signer, logger: logger}
}

// Quote turns a (input, output, human amount, slippage) request into a
// unit-correct provider quote and maps the answer back to human units.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidArgument)
	}
	if req.SlippageBps < 0 || req.SlippageBps > maxSlippageBps {
		return nil, fmt.Errorf("%w: slippage_bps must be between 0 and %d", ErrInvalidArgument, maxSlippageBps)
	}

	in, err := s.resolver.Resolve(ctx, req.InputToken)
	if err != nil {
		return nil, err
	}
	out, err := s.resolver.Resolve(ctx, req.OutputToken)
	if err != nil {
		return nil, err
	}
	if in.Address == out.Address {
		return nil, ErrSameToken
	}

	atomicIn, err := amount.ToAtomic(req.Amount, in.Decimals)
	if err != nil {
		return nil, err
	}

	slippage := uint16(req.SlippageBps)
	quote, err := s.provider.Quote(ctx, jupiter.QuoteRequest{
		InputMint:   in.Address,
		OutputMint:  out.Address,
		Amount:      strconv.FormatUint(atomicIn, 10),
		SlippageBps: &slippage,
	})
	if err != nil {
		s.logger.WithError(err).Warn("quote provider call failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	atomicOut, err := parseOutAmount(quote.OutAmount)
	if err != nil {
		return nil, err
	}

	result := &QuoteResult{
		InputMint:      in.Address,
		OutputMint:     out.Address,
		InAmount:       atomicIn,
		OutAmount:      atomicOut,
		OutAmountHuman: amount.ToHuman(atomicOut, out.Decimals),
		InputDecimals:  in.Decimals,
		OutputDecimals: out.Decimals,
		SlippageBps:    req.SlippageBps,
		PriceImpactPct: quote.PriceImpactPct,
		quote:          quote,
	}
	for _, step := range quote.RoutePlan {
		if step.SwapInfo.Label != "" {
			result.Route = append(result.Route, step.SwapInfo.Label)
		}
	}
	return result, nil
}

// parseOutAmount distinguishes "no route" from a malformed provider
// answer. A missing or zero output amount means the pair is genuinely
// not tradeable at the requested size; the output is never fabricated.
func parseOutAmount(s string) (uint64, error) {
	if s == "" {
		return 0, ErrNoRouteFound
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed outAmount %q", ErrProviderUnavailable, s)
	}
	if n == 0 {
		return 0, ErrNoRouteFound
	}
	return n, nil
}

// Swap quotes the pair, asks the provider to assemble the transaction,
// and either signs and broadcasts it with the configured key or hands
// the unsigned transaction back to the caller.
func (s *Service) Swap(ctx context.Context, req QuoteRequest) (*SwapResult, error) {
	quote, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}

	userKey := "INSERT_PUBLIC_KEY_HERE"
	if s.signer != nil {
		userKey = s.signer.Address()
	}

	built, err := s.provider.BuildSwap(ctx, jupiter.SwapRequest{
		QuoteResponse:    jupiter.RawQuote(quote.quote.Raw()),
		UserPublicKey:    userKey,
		WrapAndUnwrapSol: true,
	})
	if err != nil {
		s.logger.WithError(err).Warn("swap build failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if built.SwapTransaction == "" {
		return nil, fmt.Errorf("%w: provider returned no swap transaction", ErrProviderUnavailable)
	}

	if s.signer == nil {
		return &SwapResult{
			Quote:           quote,
			SwapTransaction: built.SwapTransaction,
			Message:         "Unsigned transaction returned. Please sign and send it.",
		}, nil
	}

	txid, err := s.signer.SignAndSend(ctx, built.SwapTransaction)
	if err != nil {
		return nil, fmt.Errorf("swap signing or send failed: %w", err)
	}

	return &SwapResult{
		Quote:         quote,
		TransactionID: txid,
		ExplorerURL:   "https://explorer.solana.com/tx/" + txid,
	}, nil
}
