package registry

import (
	"strings"

	"solana-token-api/internal/tokenlist"
)

// MainnetChainID is the chain id used by the upstream token list for
// Solana mainnet-beta.
const MainnetChainID = 101

// Token is one fungible token known to the registry. Records are
// immutable after the index is built.
type Token struct {
	Address     string   `json:"address"`
	Symbol      string   `json:"symbol,omitempty"`
	Name        string   `json:"name,omitempty"`
	Decimals    uint8    `json:"decimals"`
	LogoURI     string   `json:"logoURI,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CoingeckoID string   `json:"-"`
}

// Index holds the symbol and address lookups over the loaded token set.
// It is built once at startup and read-only afterwards, so concurrent
// readers need no locking.
type Index struct {
	bySymbol  map[string][]*Token
	byAddress map[string]*Token
	all       []*Token
}

// Build constructs an Index from raw token list entries, keeping only
// mainnet tokens. Entries sharing a symbol are grouped in discovery
// order; a duplicate address overwrites the earlier record, matching
// the upstream feed's behavior.
func Build(entries []tokenlist.Entry) *Index {
	idx := &Index{
		bySymbol:  make(map[string][]*Token),
		byAddress: make(map[string]*Token),
	}
	for _, e := range entries {
		if e.ChainID != MainnetChainID {
			continue
		}
		if strings.TrimSpace(e.Address) == "" {
			continue
		}
		t := &Token{
			Address:     e.Address,
			Symbol:      e.Symbol,
			Name:        e.Name,
			Decimals:    e.Decimals,
			LogoURI:     e.LogoURI,
			Tags:        e.Tags,
			CoingeckoID: e.Extensions.CoingeckoID,
		}
		if t.Symbol != "" {
			key := strings.ToUpper(t.Symbol)
			idx.bySymbol[key] = append(idx.bySymbol[key], t)
		}
		idx.byAddress[t.Address] = t
		idx.all = append(idx.all, t)
	}
	return idx
}

// Empty returns an index with no tokens. Used when the bulk load fails
// so resolution degrades to live RPC lookups only.
func Empty() *Index {
	return Build(nil)
}

// LookupByAddress returns the token with the given mint address.
func (i *Index) LookupByAddress(addr string) (*Token, bool) {
	t, ok := i.byAddress[addr]
	return t, ok
}

// LookupBySymbol returns all tokens registered under the symbol,
// uppercased exact match only. The slice preserves feed order.
func (i *Index) LookupBySymbol(sym string) []*Token {
	return i.bySymbol[strings.ToUpper(sym)]
}

// LookupByName scans all records for a case-insensitive exact name
// match. This is the deliberate slow path, reached only after symbol
// and address lookups have failed.
func (i *Index) LookupByName(name string) []*Token {
	want := strings.ToLower(name)
	var out []*Token
	for _, t := range i.all {
		if t.Name != "" && strings.ToLower(t.Name) == want {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of loaded tokens.
func (i *Index) Len() int {
	return len(i.all)
}
