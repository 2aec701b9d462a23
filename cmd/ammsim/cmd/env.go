package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	"github.com/cometbft/cometbft/crypto"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawamm/pkg/ledger"
	"github.com/paw-chain/pawamm/x/amm/keeper"
	"github.com/paw-chain/pawamm/x/amm/types"
)

// simEnv is an amm keeper and ledger over a throwaway in-memory multistore
type simEnv struct {
	ctx    sdk.Context
	keeper *keeper.Keeper
	ledger ledger.StoreLedger
}

func newSimEnv(logger log.Logger, params types.Params) (*simEnv, error) {
	ammKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(ledger.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(ammKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load in-memory store: %w", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{ChainID: "ammsim"}, false, logger)
	l := ledger.NewStoreLedger(ledgerKey)
	k := keeper.NewKeeper(ammKey, l, l)

	gs := types.DefaultGenesis()
	gs.Params = params
	if err := k.InitGenesis(ctx, *gs); err != nil {
		return nil, err
	}

	return &simEnv{ctx: ctx, keeper: k, ledger: l}, nil
}

// accountAddress derives a stable address from an account name
func accountAddress(name string) sdk.AccAddress {
	return sdk.AccAddress(crypto.AddressHash([]byte(name)))
}
