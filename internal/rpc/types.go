package rpc

// RPCError represents a JSON-RPC error response
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// TokenSupplyValue carries the supply record for a mint. Decimals is a
// pointer so an absent field can be told apart from an explicit zero.
type TokenSupplyValue struct {
	Amount   string `json:"amount"`
	Decimals *uint8 `json:"decimals"`
}

// TokenSupplyResult wraps the value object of a getTokenSupply response
type TokenSupplyResult struct {
	Value TokenSupplyValue `json:"value"`
}

// TokenSupplyResponse is the response envelope for getTokenSupply
type TokenSupplyResponse struct {
	Result *TokenSupplyResult `json:"result"`
	Error  *RPCError          `json:"error"`
}

// SendTransactionResponse is the response envelope for sendTransaction
type SendTransactionResponse struct {
	Result string    `json:"result"`
	Error  *RPCError `json:"error"`
}
