package jupiter

type QuoteRequest struct {
	InputMint  string
	OutputMint string
	Amount     string // raw integer as string (uint64)

	SlippageBps      *uint16
	OnlyDirectRoutes *bool
}

type QuoteResponse struct {
	InputMint            string          `json:"inputMint"`
	OutputMint           string          `json:"outputMint"`
	InAmount             string          `json:"inAmount"`
	OutAmount            string          `json:"outAmount"`
	OtherAmountThreshold string          `json:"otherAmountThreshold"`
	SwapMode             string          `json:"swapMode"`
	SlippageBps          uint16          `json:"slippageBps"`
	PriceImpactPct       string          `json:"priceImpactPct"`
	RoutePlan            []RoutePlanStep `json:"routePlan"`

	ContextSlot uint64  `json:"contextSlot,omitempty"`
	TimeTaken   float64 `json:"timeTaken,omitempty"`

	raw []byte
}

// Raw returns the undecoded response body. The swap build endpoint
// wants the quote echoed back verbatim, so the original bytes are kept
// alongside the typed fields.
func (q *QuoteResponse) Raw() []byte { return q.raw }

// SetRaw stores the undecoded response body.
func (q *QuoteResponse) SetRaw(b []byte) { q.raw = b }

type RoutePlanStep struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  *uint8   `json:"percent,omitempty"`
}

type SwapInfo struct {
	AmmKey     string `json:"ammKey"`
	Label      string `json:"label,omitempty"`
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`
	InAmount   string `json:"inAmount"`
	OutAmount  string `json:"outAmount"`

	FeeAmount *string `json:"feeAmount,omitempty"`
	FeeMint   *string `json:"feeMint,omitempty"`
}

// SwapRequest is the payload for the swap build endpoint. The quote is
// passed through as raw JSON exactly as the quote endpoint returned it.
type SwapRequest struct {
	QuoteResponse    RawQuote `json:"quoteResponse"`
	UserPublicKey    string   `json:"userPublicKey"`
	WrapAndUnwrapSol bool     `json:"wrapAndUnwrapSol"`
}

// RawQuote is pre-encoded quote JSON.
type RawQuote []byte

func (r RawQuote) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

type SwapResponse struct {
	SwapTransaction      string `json:"swapTransaction"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight,omitempty"`
}
