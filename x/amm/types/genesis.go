package types

import (
	"fmt"
)

// GenesisState is the amm module's exported state
type GenesisState struct {
	Params Params `json:"params"`
	Pools  []Pool `json:"pools"`
}

// DefaultGenesis returns the default genesis state for the amm module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Pools:  []Pool{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.Params.MaxPools != 0 && uint64(len(gs.Pools)) > gs.Params.MaxPools {
		return ErrInvalidParams.Wrapf("%d pools exceed max pools %d", len(gs.Pools), gs.Params.MaxPools)
	}

	pairs := make(map[PoolKey]struct{}, len(gs.Pools))
	tokens := make(map[string]PoolKey, len(gs.Pools))
	for i, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d: %w", i, err)
		}
		key := pool.Key()
		if _, dup := pairs[key]; dup {
			return ErrLiquidityPoolAlreadyExists.Wrapf("duplicate pool %s", key)
		}
		pairs[key] = struct{}{}
		if other, dup := tokens[pool.LiquidityToken]; dup {
			return ErrLiquidityTokenInUse.Wrapf("liquidity token %s shared by %s and %s", pool.LiquidityToken, other, key)
		}
		tokens[pool.LiquidityToken] = key
	}
	return nil
}
