package types

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	require.NoError(t, ValidateAmount(math.ZeroInt()))
	require.NoError(t, ValidateAmount(MaxAmount))
	require.ErrorIs(t, ValidateAmount(math.Int{}), ErrInvalidAmount)
	require.ErrorIs(t, ValidateAmount(math.NewInt(-1)), ErrInvalidAmount)
	require.Equal(t, 256, MaxAmount.BigInt().BitLen())
}

func TestMulDiv(t *testing.T) {
	res, ok, err := MulDiv(math.NewInt(7), math.NewInt(3), math.NewInt(2))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, math.NewInt(10), res)

	// intermediate product exceeds 256 bits but the quotient fits
	res, ok, err = MulDiv(MaxAmount, MaxAmount, MaxAmount)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, MaxAmount, res)

	_, ok, err = MulDiv(MaxAmount, math.NewInt(2), math.OneInt())
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = MulDiv(math.OneInt(), math.OneInt(), math.ZeroInt())
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, _, err = MulDiv(math.NewInt(-1), math.OneInt(), math.OneInt())
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCheckedAddSub(t *testing.T) {
	sum, ok, err := CheckedAdd(math.NewInt(2), math.NewInt(3))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, math.NewInt(5), sum)

	_, ok, err = CheckedAdd(MaxAmount, math.OneInt())
	require.NoError(t, err)
	require.False(t, ok)

	diff, ok, err := CheckedSub(math.NewInt(5), math.NewInt(5))
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, diff.IsZero())

	_, ok, err = CheckedSub(math.NewInt(4), math.NewInt(5))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInitialShares(t *testing.T) {
	tests := []struct {
		a, b, want math.Int
	}{
		{math.NewInt(100), math.NewInt(400), math.NewInt(200)},
		{math.NewInt(1), math.NewInt(1), math.NewInt(1)},
		{math.NewInt(1), math.NewInt(3), math.NewInt(1)},
		{math.NewInt(0), math.NewInt(1000), math.ZeroInt()},
		{MaxAmount, MaxAmount, MaxAmount},
	}
	for _, tt := range tests {
		got, err := InitialShares(tt.a, tt.b)
		require.NoError(t, err)
		require.True(t, tt.want.Equal(got), "sqrt(%s*%s) = %s", tt.a, tt.b, got)
	}
}

func TestEffectiveAmountIn(t *testing.T) {
	eff, err := EffectiveAmountIn(math.NewInt(100000), 30)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(99700), eff)

	eff, err = EffectiveAmountIn(math.NewInt(100000), 0)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100000), eff)

	_, err = EffectiveAmountIn(math.NewInt(100000), FeeDenominator)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestQuoteExactIn(t *testing.T) {
	tests := []struct {
		name       string
		amountIn   math.Int
		reserveIn  math.Int
		reserveOut math.Int
		feeBps     uint32
		want       math.Int
		wantErr    error
	}{
		{"balanced pool", math.NewInt(100), math.NewInt(1000), math.NewInt(1000), 0, math.NewInt(90), nil},
		{"no fee", math.NewInt(100000), math.NewInt(1000000), math.NewInt(1000000), 0, math.NewInt(90909), nil},
		{"30 bps fee", math.NewInt(100000), math.NewInt(1000000), math.NewInt(1000000), 30, math.NewInt(90661), nil},
		{"rounds to zero", math.NewInt(1), math.NewInt(1000), math.NewInt(1000), 0, math.ZeroInt(), nil},
		{"empty input reserve", math.NewInt(1), math.ZeroInt(), math.NewInt(1000), 0, math.Int{}, ErrDivisionByZero},
		{"empty output reserve", math.NewInt(1), math.NewInt(1000), math.ZeroInt(), 0, math.Int{}, ErrDivisionByZero},
		{"reserve overflow", math.OneInt(), MaxAmount, MaxAmount, 0, math.Int{}, ErrArithmeticOverflow},
		{"negative input", math.NewInt(-1), math.NewInt(1000), math.NewInt(1000), 0, math.Int{}, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuoteExactIn(tt.amountIn, tt.reserveIn, tt.reserveOut, tt.feeBps)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestValidateSwapOutput(t *testing.T) {
	require.NoError(t, ValidateSwapOutput(math.NewInt(90), math.NewInt(90), math.NewInt(1000)))
	require.ErrorIs(t, ValidateSwapOutput(math.ZeroInt(), math.ZeroInt(), math.NewInt(1000)), ErrInsufficientAmountOut)
	require.ErrorIs(t, ValidateSwapOutput(math.NewInt(89), math.NewInt(90), math.NewInt(1000)), ErrInsufficientAmountOut)
	require.ErrorIs(t, ValidateSwapOutput(math.NewInt(1000), math.ZeroInt(), math.NewInt(1000)), ErrInsufficientReserves)
	require.ErrorIs(t, ValidateSwapOutput(math.NewInt(1001), math.ZeroInt(), math.NewInt(1000)), ErrInsufficientReserves)
}

// FuzzQuoteExactIn checks that a quote never drains the output reserve and
// never lowers the constant product, for any reserves and fee.
func FuzzQuoteExactIn(f *testing.F) {
	f.Add(uint64(100), uint64(1000), uint64(1000), uint16(0))
	f.Add(uint64(1), uint64(1), uint64(1), uint16(9999))
	f.Add(uint64(1<<63), uint64(1<<63), uint64(1), uint16(30))
	f.Add(^uint64(0), ^uint64(0), ^uint64(0), uint16(100))

	f.Fuzz(func(t *testing.T, amountIn, reserveIn, reserveOut uint64, fee uint16) {
		feeBps := uint32(fee) % FeeDenominator
		// scale inputs into the upper half of the domain to exercise widening
		scale := new(big.Int).Lsh(big.NewInt(1), 190)
		in := math.NewIntFromBigInt(new(big.Int).Mul(new(big.Int).SetUint64(amountIn), scale))
		rin := math.NewIntFromBigInt(new(big.Int).Mul(new(big.Int).SetUint64(reserveIn), scale))
		rout := math.NewIntFromBigInt(new(big.Int).Mul(new(big.Int).SetUint64(reserveOut), scale))

		out, err := QuoteExactIn(in, rin, rout, feeBps)
		if err != nil {
			require.True(t,
				ErrDivisionByZero.Is(err) || ErrArithmeticOverflow.Is(err),
				"unexpected error type: %v", err,
			)
			return
		}
		require.False(t, out.IsNegative())
		require.True(t, out.LT(rout) || rout.IsZero(), "output %s must stay below reserve %s", out, rout)

		before := ConstantProduct(rin, rout)
		after := ConstantProduct(rin.Add(in), rout.Sub(out))
		require.True(t, after.Cmp(before) >= 0, "constant product decreased")
	})
}
