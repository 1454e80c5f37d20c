package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"solana-token-api/internal/registry"
)

var (
	// ErrInvalidIdentifier is returned for empty or whitespace-only input.
	ErrInvalidIdentifier = errors.New("token identifier cannot be empty")

	// ErrAmbiguousSymbol is returned when a symbol matches more than one
	// mint. The caller must disambiguate with a mint address; picking one
	// silently risks moving funds against the wrong mint.
	ErrAmbiguousSymbol = errors.New("ambiguous symbol, use mint address instead")

	// ErrAmbiguousName is returned when a name matches more than one mint.
	ErrAmbiguousName = errors.New("ambiguous name, use mint address instead")

	// ErrTokenNotFound is returned when no resolution strategy matched.
	ErrTokenNotFound = errors.New("token not found")
)

// Kind classifies a free-form token identifier before any lookup runs.
type Kind int

const (
	KindInvalid Kind = iota
	KindSymbolOrName
	KindAddress
)

// Classify decides whether the identifier is a candidate mint address
// (base58 text decoding to exactly 32 bytes) or a symbol/name. The
// classification is computed up front so lookup order never depends on
// a parse failure mid-flight.
func Classify(identifier string) Kind {
	s := strings.TrimSpace(identifier)
	if s == "" {
		return KindInvalid
	}
	if raw, err := base58.Decode(s); err == nil && len(raw) == 32 {
		return KindAddress
	}
	return KindSymbolOrName
}

// DecimalsLookup fetches a mint's decimals from the chain. present is
// false when the node answered but reported no decimals; a non-nil
// error means the lookup itself failed.
type DecimalsLookup interface {
	GetTokenSupply(ctx context.Context, mint string) (decimals uint8, present bool, err error)
}

// Resolved is the outcome of a successful resolution.
type Resolved struct {
	Address  string
	Decimals uint8
}

// Resolver turns a user-supplied token identifier into exactly one
// (mint address, decimals) pair, or fails with a typed error.
type Resolver struct {
	index  *registry.Index
	chain  DecimalsLookup
	logger *logrus.Logger
}

func New(index *registry.Index, chain DecimalsLookup, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &Resolver{index: index, chain: chain, logger: logger}
}

// Resolve applies the resolution strategies in order: unique symbol
// match, mint address (registry first, then one live decimals lookup),
// unique name match. Ambiguity is always surfaced, never resolved to
// an arbitrary candidate.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*Resolved, error) {
	s := strings.TrimSpace(identifier)
	kind := Classify(s)
	if kind == KindInvalid {
		return nil, ErrInvalidIdentifier
	}

	if matches := r.index.LookupBySymbol(s); len(matches) > 0 {
		if len(matches) > 1 {
			return nil, ErrAmbiguousSymbol
		}
		t := matches[0]
		return &Resolved{Address: t.Address, Decimals: t.Decimals}, nil
	}

	if kind == KindAddress {
		return r.resolveAddress(ctx, s)
	}

	if matches := r.index.LookupByName(s); len(matches) > 0 {
		if len(matches) > 1 {
			return nil, ErrAmbiguousName
		}
		t := matches[0]
		return &Resolved{Address: t.Address, Decimals: t.Decimals}, nil
	}

	return nil, ErrTokenNotFound
}

func (r *Resolver) resolveAddress(ctx context.Context, addr string) (*Resolved, error) {
	if t, ok := r.index.LookupByAddress(addr); ok {
		return &Resolved{Address: t.Address, Decimals: t.Decimals}, nil
	}

	decimals, present, err := r.chain.GetTokenSupply(ctx, addr)
	if err != nil {
		// Unknown decimals must fail the resolution outright: defaulting
		// to 0 here would corrupt the atomic-amount math downstream.
		r.logger.WithField("mint", addr).WithError(err).Debug("live decimals lookup failed")
		return nil, ErrTokenNotFound
	}
	if !present {
		// The node answered and the field was absent; 0 is the honest value.
		decimals = 0
	}
	return &Resolved{Address: addr, Decimals: decimals}, nil
}
