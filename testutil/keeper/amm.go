package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawamm/pkg/ledger"
	"github.com/paw-chain/pawamm/x/amm/keeper"
	"github.com/paw-chain/pawamm/x/amm/types"
)

// AMMKeeper creates a test keeper for the amm module backed by an in-memory
// multistore and a store ledger mounted next to it.
func AMMKeeper(t testing.TB) (*keeper.Keeper, sdk.Context, ledger.StoreLedger) {
	ctx, ammKey, ledgerKey := NewTestContext(t)

	l := ledger.NewStoreLedger(ledgerKey)
	k := keeper.NewKeeper(ammKey, l, l)

	// Initialize module genesis
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ctx, l
}

// NewTestContext mounts the amm and ledger stores on a fresh in-memory
// multistore and returns a context over it.
func NewTestContext(t testing.TB) (sdk.Context, *storetypes.KVStoreKey, *storetypes.KVStoreKey) {
	ammKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(ledger.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(ammKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	return ctx, ammKey, ledgerKey
}

// FundAccount mints coins into addr
func FundAccount(t testing.TB, l ledger.StoreLedger, ctx sdk.Context, addr sdk.AccAddress, coins sdk.Coins) {
	require.NoError(t, l.Fund(ctx, addr, coins))
}

// CreateTestPool creates a pool for the pair and, when both amounts are
// positive, funds creator and seeds the pool with them.
func CreateTestPool(t testing.TB, k *keeper.Keeper, l ledger.StoreLedger, ctx sdk.Context, creator sdk.AccAddress, tokenA, tokenB string, amountA, amountB math.Int) types.PoolKey {
	// the pair assets must be recognized before a pool can be created
	FundAccount(t, l, ctx, creator, sdk.NewCoins(sdk.NewCoin(tokenA, amountA), sdk.NewCoin(tokenB, amountB)))
	if !amountA.IsPositive() || !amountB.IsPositive() {
		FundAccount(t, l, ctx, creator, sdk.NewCoins(sdk.NewCoin(tokenA, math.OneInt()), sdk.NewCoin(tokenB, math.OneInt())))
	}

	key, err := k.CreatePool(ctx, creator, tokenA, tokenB, LiquidityTokenFor(tokenA, tokenB))
	require.NoError(t, err)

	if amountA.IsPositive() && amountB.IsPositive() {
		a, b := amountA, amountB
		if key.AssetA != tokenA {
			a, b = b, a
		}
		_, _, _, err := k.AddLiquidity(ctx, creator, key, a, b, math.ZeroInt(), math.ZeroInt())
		require.NoError(t, err)
	}
	return key
}

// LiquidityTokenFor returns the conventional liquidity token denom of a pair
func LiquidityTokenFor(tokenA, tokenB string) string {
	key := types.NewPoolKey(tokenA, tokenB)
	return "amm/" + key.AssetA + "-" + key.AssetB
}
