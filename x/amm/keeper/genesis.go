package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/pawamm/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state. Pool
// reserves are assumed to already be held by the module account in the ledger.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid amm genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	store := k.getStore(ctx)
	for _, pool := range genState.Pools {
		if err := k.setPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %s: %w", pool.Key(), err)
		}
		store.Set(types.LiquidityTokenKey(pool.LiquidityToken), types.PoolStoreKey(pool.Key()))

		if err := k.increaseTotalReserve(ctx, pool.AssetA, pool.ReserveA); err != nil {
			return fmt.Errorf("failed to index reserves of pool %s: %w", pool.Key(), err)
		}
		if err := k.increaseTotalReserve(ctx, pool.AssetB, pool.ReserveB); err != nil {
			return fmt.Errorf("failed to index reserves of pool %s: %w", pool.Key(), err)
		}
		k.recordReserves(pool)
	}
	k.setPoolCount(ctx, uint64(len(genState.Pools)))
	k.metrics.PoolsTotal.Set(float64(len(genState.Pools)))

	return nil
}

// ExportGenesis returns the amm module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}

	return &types.GenesisState{
		Params: params,
		Pools:  pools,
	}, nil
}
