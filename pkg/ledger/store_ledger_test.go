package ledger_test

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
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawamm/pkg/ledger"
)

func setupLedger(t *testing.T) (ledger.StoreLedger, sdk.Context) {
	key := storetypes.NewKVStoreKey(ledger.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())
	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	return ledger.NewStoreLedger(key), ctx
}

func TestFundAndSend(t *testing.T) {
	l, ctx := setupLedger(t)
	alice := sdk.AccAddress([]byte("alice_address_______"))
	bob := sdk.AccAddress([]byte("bob_address_________"))

	require.False(t, l.HasSupply(ctx, "upaw"))
	require.NoError(t, l.Fund(ctx, alice, sdk.NewCoins(sdk.NewInt64Coin("upaw", 100))))
	require.True(t, l.HasSupply(ctx, "upaw"))
	require.Equal(t, math.NewInt(100), l.GetSupply(ctx, "upaw").Amount)

	require.NoError(t, l.SendCoins(ctx, alice, bob, sdk.NewCoins(sdk.NewInt64Coin("upaw", 40))))
	require.Equal(t, math.NewInt(60), l.GetBalance(ctx, alice, "upaw").Amount)
	require.Equal(t, math.NewInt(40), l.GetBalance(ctx, bob, "upaw").Amount)

	err := l.SendCoins(ctx, bob, alice, sdk.NewCoins(sdk.NewInt64Coin("upaw", 41)))
	require.ErrorIs(t, err, sdkerrors.ErrInsufficientFunds)
	require.Equal(t, math.NewInt(40), l.GetBalance(ctx, bob, "upaw").Amount)
}

func TestModuleMintAndBurn(t *testing.T) {
	l, ctx := setupLedger(t)
	alice := sdk.AccAddress([]byte("alice_address_______"))
	moduleAddr := authtypes.NewModuleAddress("amm")
	shares := sdk.NewCoins(sdk.NewInt64Coin("amm/uatom-upaw", 25))

	require.NoError(t, l.MintCoins(ctx, "amm", shares))
	require.Equal(t, math.NewInt(25), l.GetBalance(ctx, moduleAddr, "amm/uatom-upaw").Amount)

	require.NoError(t, l.SendCoinsFromModuleToAccount(ctx, "amm", alice, shares))
	require.True(t, l.GetBalance(ctx, moduleAddr, "amm/uatom-upaw").IsZero())

	require.NoError(t, l.SendCoinsFromAccountToModule(ctx, alice, "amm", shares))
	require.NoError(t, l.BurnCoins(ctx, "amm", shares))
	require.False(t, l.HasSupply(ctx, "amm/uatom-upaw"))

	require.ErrorIs(t, l.BurnCoins(ctx, "amm", shares), sdkerrors.ErrInsufficientFunds)
}

func TestWritesRollBackWithCacheContext(t *testing.T) {
	l, ctx := setupLedger(t)
	alice := sdk.AccAddress([]byte("alice_address_______"))

	cacheCtx, _ := ctx.CacheContext()
	require.NoError(t, l.Fund(cacheCtx, alice, sdk.NewCoins(sdk.NewInt64Coin("upaw", 7))))
	require.Equal(t, math.NewInt(7), l.GetBalance(cacheCtx, alice, "upaw").Amount)

	// the cache was never written
	require.True(t, l.GetBalance(ctx, alice, "upaw").IsZero())
	require.False(t, l.HasSupply(ctx, "upaw"))
}

func TestInvalidCoinsRejected(t *testing.T) {
	l, ctx := setupLedger(t)
	alice := sdk.AccAddress([]byte("alice_address_______"))

	unsorted := sdk.Coins{sdk.NewInt64Coin("upaw", 1), sdk.NewInt64Coin("uatom", 1)}
	require.ErrorIs(t, l.Fund(ctx, alice, unsorted), sdkerrors.ErrInvalidCoins)
}
