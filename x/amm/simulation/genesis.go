package simulation

import (
	"encoding/json"
	"math/rand"

	"github.com/cosmos/cosmos-sdk/types/module"

	"github.com/paw-chain/pawamm/x/amm/types"
)

// Simulation parameter keys
const (
	SwapFeeBps = "swap_fee_bps"
	MaxPools   = "max_pools"
)

// GenSwapFeeBps picks a fee between zero and one percent
func GenSwapFeeBps(r *rand.Rand) uint32 {
	return uint32(r.Intn(101))
}

// GenMaxPools leaves the registry unbounded half of the time
func GenMaxPools(r *rand.Rand) uint64 {
	if r.Intn(2) == 0 {
		return 0
	}
	return uint64(10 + r.Intn(91))
}

// RandomizedGenState generates a random GenesisState for the amm module.
// Pools start empty; they need ledger balances that genesis cannot assume.
func RandomizedGenState(simState *module.SimulationState) {
	var swapFeeBps uint32
	simState.AppParams.GetOrGenerate(SwapFeeBps, &swapFeeBps, simState.Rand,
		func(r *rand.Rand) { swapFeeBps = GenSwapFeeBps(r) },
	)

	var maxPools uint64
	simState.AppParams.GetOrGenerate(MaxPools, &maxPools, simState.Rand,
		func(r *rand.Rand) { maxPools = GenMaxPools(r) },
	)

	ammGenesis := types.GenesisState{
		Params: types.NewParams(swapFeeBps, maxPools),
		Pools:  []types.Pool{},
	}

	bz, err := json.Marshal(ammGenesis)
	if err != nil {
		panic(err)
	}
	simState.GenState[types.ModuleName] = bz
}
