package amount

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAtomic(t *testing.T) {
	tests := []struct {
		human    string
		decimals uint8
		want     uint64
	}{
		{"1.5", 9, 1_500_000_000},
		{"0.1", 6, 100_000},
		{"1", 0, 1},
		{"150", 6, 150_000_000},
		{"0.000001", 6, 1},
		{"123456789.123456789", 9, 123_456_789_123_456_789},
		{"2", 18, 2_000_000_000_000_000_000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s@%d", tt.human, tt.decimals), func(t *testing.T) {
			human, err := ParseHuman(tt.human)
			require.NoError(t, err)

			got, err := ToAtomic(human, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToAtomic_RejectsNonPositive(t *testing.T) {
	for _, s := range []string{"0", "-1", "-0.5"} {
		for _, d := range []uint8{0, 6, 9, 18} {
			human := decimal.RequireFromString(s)
			_, err := ToAtomic(human, d)
			assert.ErrorIs(t, err, ErrInvalidAmount, "amount %s decimals %d", s, d)
		}
	}
}

func TestToAtomic_RejectsDustRoundingToZero(t *testing.T) {
	human := decimal.RequireFromString("0.0000001")
	_, err := ToAtomic(human, 6)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestToAtomic_Overflow(t *testing.T) {
	human := decimal.RequireFromString("18446744073709551616") // 2^64
	_, err := ToAtomic(human, 0)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestParseHuman_RejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "1.2.3", "NaN", "Inf"} {
		_, err := ParseHuman(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestToHuman(t *testing.T) {
	got := ToHuman(150_000_000, 6)
	assert.True(t, got.Equal(decimal.RequireFromString("150")), "got %s", got)

	got = ToHuman(1_500_000_000, 9)
	assert.True(t, got.Equal(decimal.RequireFromString("1.5")), "got %s", got)

	got = ToHuman(1, 18)
	assert.True(t, got.Equal(decimal.RequireFromString("0.000000000000000001")), "got %s", got)
}

// Round trip holds for any amount with at most d fractional digits.
func TestRoundTrip(t *testing.T) {
	cases := []string{"1", "1.5", "0.1", "42.000001", "999999.999999"}
	for d := uint8(0); d <= 18; d++ {
		for _, s := range cases {
			human := decimal.RequireFromString(s)
			if int32(-human.Exponent()) > int32(d) {
				continue // more fractional digits than the mint supports
			}
			atomic, err := ToAtomic(human, d)
			require.NoError(t, err, "amount %s decimals %d", s, d)
			back := ToHuman(atomic, d)
			assert.True(t, back.Equal(human), "round trip %s@%d gave %s", s, d, back)
		}
	}
}

func TestRoundTrip_AtomicFirst(t *testing.T) {
	for _, atomic := range []uint64{1, 1_000_000, 1_500_000_000, 123_456_789} {
		for _, d := range []uint8{0, 5, 6, 9} {
			human := ToHuman(atomic, d)
			back, err := ToAtomic(human, d)
			require.NoError(t, err)
			assert.Equal(t, atomic, back, "atomic %d decimals %d", atomic, d)
		}
	}
}
