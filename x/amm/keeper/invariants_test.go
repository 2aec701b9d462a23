package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawamm/testutil/keeper"
	"github.com/paw-chain/pawamm/x/amm/keeper"
	"github.com/paw-chain/pawamm/x/amm/types"
)

type invariantRegistry struct {
	routes []string
}

func (r *invariantRegistry) RegisterRoute(moduleName, route string, _ sdk.Invariant) {
	r.routes = append(r.routes, moduleName+"/"+route)
}

func TestRegisterInvariants(t *testing.T) {
	k, _, _ := keepertest.AMMKeeper(t)
	ir := &invariantRegistry{}
	keeper.RegisterInvariants(ir, *k)
	require.Equal(t, []string{
		"amm/pool-state",
		"amm/module-account-balance",
		"amm/liquidity-supply",
		"amm/liquidity-token-index",
	}, ir.routes)
}

func TestInvariantsHoldOnEmptyState(t *testing.T) {
	k, ctx, _ := keepertest.AMMKeeper(t)
	requireInvariants(t, k, ctx)
}

func TestModuleAccountBalanceInvariant_Broken(t *testing.T) {
	k, ctx, l := keepertest.AMMKeeper(t)
	keepertest.CreateTestPool(t, k, l, ctx, createTestCreator(t), "uatom", "upaw", math.NewInt(1000), math.NewInt(1000))

	// reserves leave the module account behind the engine's back
	require.NoError(t, l.SendCoinsFromModuleToAccount(ctx, types.ModuleName, createTestTrader(t), sdk.NewCoins(sdk.NewInt64Coin("uatom", 1))))

	msg, broken := keeper.ModuleAccountBalanceInvariant(*k)(ctx)
	require.True(t, broken)
	require.Contains(t, msg, "uatom")

	_, broken = keeper.AllInvariants(*k)(ctx)
	require.True(t, broken)
}

func TestModuleAccountBalanceInvariant_ToleratesDonations(t *testing.T) {
	k, ctx, l := keepertest.AMMKeeper(t)
	keepertest.CreateTestPool(t, k, l, ctx, createTestCreator(t), "uatom", "upaw", math.NewInt(1000), math.NewInt(1000))

	require.NoError(t, l.Fund(ctx, k.GetModuleAddress(), sdk.NewCoins(sdk.NewInt64Coin("uatom", 5))))

	_, broken := keeper.ModuleAccountBalanceInvariant(*k)(ctx)
	require.False(t, broken)
}

func TestLiquiditySupplyInvariant_Broken(t *testing.T) {
	k, ctx, l := keepertest.AMMKeeper(t)
	keepertest.CreateTestPool(t, k, l, ctx, createTestCreator(t), "uatom", "upaw", math.NewInt(1000), math.NewInt(1000))

	// shares issued outside the engine
	require.NoError(t, l.Fund(ctx, createTestTrader(t), sdk.NewCoins(sdk.NewInt64Coin(lpToken, 1))))

	msg, broken := keeper.LiquiditySupplyInvariant(*k)(ctx)
	require.True(t, broken)
	require.Contains(t, msg, lpToken)
}

func TestInvariantsAfterMixedOperations(t *testing.T) {
	k, ctx, l := keepertest.AMMKeeper(t)
	require.NoError(t, k.SetParams(ctx, types.NewParams(25, 0)))
	creator := createTestCreator(t)
	trader := createTestTrader(t)

	key1 := keepertest.CreateTestPool(t, k, l, ctx, creator, "uatom", "upaw", math.NewInt(50000), math.NewInt(200000))
	key2 := keepertest.CreateTestPool(t, k, l, ctx, creator, "uosmo", "upaw", math.NewInt(30000), math.NewInt(30000))
	keepertest.FundAccount(t, l, ctx, trader, sdk.NewCoins(
		sdk.NewInt64Coin("uatom", 10000),
		sdk.NewInt64Coin("uosmo", 10000),
		sdk.NewInt64Coin("upaw", 10000),
	))

	_, err := k.SwapExactIn(ctx, trader, key1, "uatom", math.NewInt(1000), math.ZeroInt())
	require.NoError(t, err)
	requireInvariants(t, k, ctx)

	_, err = k.SwapExactIn(ctx, trader, key2, "upaw", math.NewInt(5000), math.ZeroInt())
	require.NoError(t, err)
	requireInvariants(t, k, ctx)

	_, _, shares, err := k.AddLiquidity(ctx, trader, key2, math.NewInt(3000), math.NewInt(3000), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	requireInvariants(t, k, ctx)

	_, _, err = k.RemoveLiquidity(ctx, trader, key2, shares, math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	requireInvariants(t, k, ctx)

	total, err := k.GetTotalReserve(ctx, "upaw")
	require.NoError(t, err)
	p1, _ := k.GetPoolByKey(ctx, key1)
	p2, _ := k.GetPoolByKey(ctx, key2)
	require.True(t, total.Equal(p1.ReserveB.Add(p2.ReserveB)))
}
