package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/paw-chain/pawamm/x/amm/types"
)

// Keeper of the amm store
type Keeper struct {
	storeKey storetypes.StoreKey
	ledger   types.BalanceLedger
	assets   types.AssetInspector
	hooks    types.AMMHooks
	metrics  *AMMMetrics
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	ledger types.BalanceLedger,
	assets types.AssetInspector,
) *Keeper {
	return &Keeper{
		storeKey: key,
		ledger:   ledger,
		assets:   assets,
		metrics:  NewAMMMetrics(),
	}
}

// SetHooks sets the amm hooks. It can only be called once.
func (k *Keeper) SetHooks(hooks types.AMMHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set amm hooks twice")
	}
	k.hooks = hooks
	return k
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetModuleAddress returns the account that custodies every pool's reserves
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
