package amount

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a human amount cannot be converted
// to a positive atomic quantity.
var ErrInvalidAmount = errors.New("amount must be greater than 0")

// ErrAmountOverflow is returned when the atomic result does not fit in
// a uint64, the widest amount Jupiter and the token program accept.
var ErrAmountOverflow = errors.New("amount exceeds uint64 range")

// ToAtomic converts a human-readable amount to atomic base units for a
// mint with the given decimals. The math is exact decimal arithmetic;
// a result that rounds to zero or below is rejected rather than sent
// downstream as a degenerate swap size.
func ToAtomic(human decimal.Decimal, decimals uint8) (uint64, error) {
	if human.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}
	scaled := human.Shift(int32(decimals)).Round(0)
	if scaled.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, ErrAmountOverflow
	}
	return bi.Uint64(), nil
}

// ParseHuman parses a user-supplied decimal string without going
// through binary floating point.
func ParseHuman(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// ToHuman converts an atomic amount back to human units for a mint
// with the given decimals. The division by 10^decimals is exact.
func ToHuman(atomic uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(atomic), -int32(decimals))
}
