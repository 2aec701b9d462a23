package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawamm/testutil/keeper"
	"github.com/paw-chain/pawamm/x/amm/types"
)

// FuzzSwapExactIn tests swap execution with extreme values
func FuzzSwapExactIn(f *testing.F) {
	// Add seed values
	f.Add(uint64(1000), uint64(1000), uint64(100), uint16(0))           // Reference trade
	f.Add(uint64(1000000), uint64(2000000), uint64(100000), uint16(30)) // Normal case
	f.Add(uint64(1), uint64(1), uint64(1), uint16(9999))                // Minimum case
	f.Add(^uint64(0), uint64(1), ^uint64(0), uint16(1))                 // Skewed case

	f.Fuzz(func(t *testing.T, reserveA, reserveB, amountIn uint64, fee uint16) {
		// Skip invalid inputs
		if reserveA == 0 || reserveB == 0 || amountIn == 0 {
			return
		}

		k, ctx, l := keepertest.AMMKeeper(t)
		require.NoError(t, k.SetParams(ctx, types.NewParams(uint32(fee)%types.FeeDenominator, 0)))

		ra := math.NewIntFromUint64(reserveA)
		rb := math.NewIntFromUint64(reserveB)
		in := math.NewIntFromUint64(amountIn)
		key := keepertest.CreateTestPool(t, k, l, ctx, createTestCreator(t), "uatom", "upaw", ra, rb)

		trader := createTestTrader(t)
		keepertest.FundAccount(t, l, ctx, trader, sdk.NewCoins(sdk.NewCoin("uatom", in)))

		quoted, quoteErr := k.Quote(ctx, key, "uatom", in)
		out, err := k.SwapExactIn(ctx, trader, key, "uatom", in, math.ZeroInt())

		// If error is returned, it should be a zero-output rejection
		if err != nil {
			require.True(t, types.ErrInsufficientAmountOut.Is(err), "unexpected error type: %v", err)
			pool, _ := k.GetPoolByKey(ctx, key)
			require.True(t, pool.ReserveA.Equal(ra))
			require.True(t, pool.ReserveB.Equal(rb))
			return
		}

		// If successful, result should be valid
		require.NoError(t, quoteErr)
		require.True(t, quoted.Equal(out))
		require.True(t, out.IsPositive())
		require.True(t, out.LT(rb), "output should be less than reserve")

		pool, _ := k.GetPoolByKey(ctx, key)
		require.True(t, pool.ReserveA.Equal(ra.Add(in)))
		require.True(t, pool.ReserveB.Equal(rb.Sub(out)))
		require.GreaterOrEqual(t, types.ConstantProduct(pool.ReserveA, pool.ReserveB).Cmp(types.ConstantProduct(ra, rb)), 0)
		requireInvariants(t, k, ctx)
	})
}
