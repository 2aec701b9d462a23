package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawamm/testutil/keeper"
	"github.com/paw-chain/pawamm/x/amm/types"
)

// TestNearMaxReserves seeds a pool at the top of the integer domain and checks
// that growing it fails cleanly instead of wrapping.
func TestNearMaxReserves(t *testing.T) {
	k, ctx, l := keepertest.AMMKeeper(t)
	creator := createTestCreator(t)
	key := keepertest.CreateTestPool(t, k, l, ctx, creator, "uatom", "upaw", types.MaxAmount, types.MaxAmount)

	pool, _ := k.GetPoolByKey(ctx, key)
	require.Equal(t, types.MaxAmount, pool.TotalLiquidity)

	// the engine rejects before the ledger is consulted, so the caller holds nothing
	caller := createTestTrader(t)

	_, _, _, err := k.AddLiquidity(ctx, caller, key, math.OneInt(), math.OneInt(), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrReserveOverflow)

	_, err = k.SwapExactIn(ctx, caller, key, "uatom", math.OneInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)

	_, err = k.Quote(ctx, key, "upaw", math.OneInt())
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)

	after, _ := k.GetPoolByKey(ctx, key)
	require.Equal(t, pool, after)
	require.Equal(t, types.MaxAmount, l.GetSupply(ctx, keepertest.LiquidityTokenFor("uatom", "upaw")).Amount)
	requireInvariants(t, k, ctx)

	// full withdrawal still works at the top of the domain
	a, b, err := k.RemoveLiquidity(ctx, creator, key, types.MaxAmount, math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, types.MaxAmount, a)
	require.Equal(t, types.MaxAmount, b)
	requireInvariants(t, k, ctx)
}

// TestLargeSwapWidening trades amounts whose products exceed 256 bits
func TestLargeSwapWidening(t *testing.T) {
	k, ctx, l := keepertest.AMMKeeper(t)
	creator := createTestCreator(t)
	half := types.MaxAmount.QuoRaw(2)
	key := keepertest.CreateTestPool(t, k, l, ctx, creator, "uatom", "upaw", half, half)

	trader := createTestTrader(t)
	amountIn := half.QuoRaw(10)
	keepertest.FundAccount(t, l, ctx, trader, sdk.NewCoins(sdk.NewCoin("uatom", amountIn)))

	quoted, err := k.Quote(ctx, key, "uatom", amountIn)
	require.NoError(t, err)
	out, err := k.SwapExactIn(ctx, trader, key, "uatom", amountIn, math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, quoted, out)
	require.True(t, out.LT(half))

	pool, _ := k.GetPoolByKey(ctx, key)
	before := types.ConstantProduct(half, half)
	require.GreaterOrEqual(t, types.ConstantProduct(pool.ReserveA, pool.ReserveB).Cmp(before), 0)
	requireInvariants(t, k, ctx)
}
