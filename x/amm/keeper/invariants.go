package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawamm/x/amm/types"
)

// RegisterInvariants registers all amm invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-state", PoolStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "module-account-balance", ModuleAccountBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "liquidity-supply", LiquiditySupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "liquidity-token-index", LiquidityTokenIndexInvariant(k))
}

// AllInvariants runs all invariants of the amm module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolStateInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ModuleAccountBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = LiquiditySupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return LiquidityTokenIndexInvariant(k)(ctx)
	}
}

// PoolStateInvariant checks every pool record against the per-pool invariants
func PoolStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-state", err.Error()), true
		}
		for _, pool := range pools {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("%v\n", err)
			}
		}
		if n := k.GetPoolCount(ctx); n != uint64(len(pools)) {
			count++
			msg += fmt.Sprintf("pool count %d but %d pools stored\n", n, len(pools))
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-state",
			fmt.Sprintf("found %d invalid pool records\n%s", count, msg),
		), broken
	}
}

// ModuleAccountBalanceInvariant checks that, for every denom, the reserves of
// all pools sum to the aggregate reserve, and that the module account holds
// at least that amount.
func ModuleAccountBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		sums := make(map[string]math.Int)
		var denoms []string
		add := func(denom string, amount math.Int) {
			if _, ok := sums[denom]; !ok {
				sums[denom] = math.ZeroInt()
				denoms = append(denoms, denom)
			}
			sums[denom] = sums[denom].Add(amount)
		}

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			add(pool.AssetA, pool.ReserveA)
			add(pool.AssetB, pool.ReserveB)
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "module-account-balance", err.Error()), true
		}
		// denoms with an aggregate entry but no pool reserve
		err = k.IterateTotalReserves(ctx, func(denom string, _ math.Int) bool {
			add(denom, math.ZeroInt())
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "module-account-balance", err.Error()), true
		}

		moduleAddr := k.GetModuleAddress()
		for _, denom := range denoms {
			sum := sums[denom]
			total, err := k.GetTotalReserve(ctx, denom)
			if err != nil {
				count++
				msg += fmt.Sprintf("%s: %v\n", denom, err)
				continue
			}
			if !total.Equal(sum) {
				count++
				msg += fmt.Sprintf("%s: aggregate reserve %s != sum of pool reserves %s\n", denom, total, sum)
			}
			balance := k.ledger.GetBalance(ctx, moduleAddr, denom)
			if balance.Amount.LT(sum) {
				count++
				msg += fmt.Sprintf("%s: module balance %s < sum of pool reserves %s\n", denom, balance.Amount, sum)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "module-account-balance",
			fmt.Sprintf("found %d reserve mismatches\n%s", count, msg),
		), broken
	}
}

// LiquiditySupplyInvariant checks that each pool's total liquidity equals the
// ledger supply of its liquidity token.
func LiquiditySupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			supply := k.ledger.GetSupply(ctx, pool.LiquidityToken)
			if !supply.Amount.Equal(pool.TotalLiquidity) {
				count++
				msg += fmt.Sprintf("pool %s: %s supply %s != total liquidity %s\n",
					pool.Key(), pool.LiquidityToken, supply.Amount, pool.TotalLiquidity)
			}
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "liquidity-supply", err.Error()), true
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "liquidity-supply",
			fmt.Sprintf("found %d pools with mismatched share supply\n%s", count, msg),
		), broken
	}
}

// LiquidityTokenIndexInvariant checks that every pool is reachable through its
// liquidity token and that no token is shared.
func LiquidityTokenIndexInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		seen := make(map[string]types.PoolKey)
		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if other, dup := seen[pool.LiquidityToken]; dup {
				count++
				msg += fmt.Sprintf("pools %s and %s share liquidity token %s\n", other, pool.Key(), pool.LiquidityToken)
			}
			seen[pool.LiquidityToken] = pool.Key()

			indexed, found := k.getPoolKeyByLiquidityToken(ctx, pool.LiquidityToken)
			if !found || indexed != pool.Key() {
				count++
				msg += fmt.Sprintf("pool %s: liquidity token %s is not indexed to it\n", pool.Key(), pool.LiquidityToken)
			}
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "liquidity-token-index", err.Error()), true
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "liquidity-token-index",
			fmt.Sprintf("found %d liquidity token index errors\n%s", count, msg),
		), broken
	}
}
