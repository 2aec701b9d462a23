package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawamm/x/amm/types"
)

// SwapExactIn sells amountIn of assetIn into the pool at key and returns the
// amount of the other asset paid to the trader. The whole input, fee
// included, stays in the pool.
func (k Keeper) SwapExactIn(
	ctx context.Context,
	trader sdk.AccAddress,
	key types.PoolKey,
	assetIn string,
	amountIn, minAmountOut math.Int,
) (amountOut math.Int, err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
		}
		k.metrics.SwapsTotal.WithLabelValues(key.String(), assetIn, status).Inc()
	}()

	pool, err := k.loadPool(ctx, key)
	if err != nil {
		return math.Int{}, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}

	res, next, err := pool.PriceSwapExactIn(assetIn, amountIn, minAmountOut, params.SwapFeeBps)
	if err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	sold := sdk.NewCoins(sdk.NewCoin(res.AssetIn, res.AmountIn))
	if err := k.ledger.SendCoinsFromAccountToModule(cacheCtx, trader, types.ModuleName, sold); err != nil {
		return math.Int{}, errorsmod.Wrapf(err, "failed to collect %s", sold)
	}

	if err := k.setPool(cacheCtx, next); err != nil {
		return math.Int{}, err
	}
	if err := k.increaseTotalReserve(cacheCtx, res.AssetIn, res.AmountIn); err != nil {
		return math.Int{}, err
	}
	if err := k.decreaseTotalReserve(cacheCtx, res.AssetOut, res.AmountOut); err != nil {
		return math.Int{}, err
	}

	bought := sdk.NewCoins(sdk.NewCoin(res.AssetOut, res.AmountOut))
	if err := k.ledger.SendCoinsFromModuleToAccount(cacheCtx, types.ModuleName, trader, bought); err != nil {
		return math.Int{}, errorsmod.Wrapf(err, "failed to pay out %s", bought)
	}

	if k.hooks != nil {
		if err := k.hooks.AfterSwap(cacheCtx, trader.String(), key, res.AssetIn, res.AmountIn, res.AmountOut); err != nil {
			return math.Int{}, fmt.Errorf("AfterSwap hook: %w", err)
		}
	}

	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwapped,
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyPool, key.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, res.AssetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, res.AssetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, res.AmountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, res.AmountOut.String()),
		),
	)

	k.metrics.SwapVolume.WithLabelValues(key.String(), res.AssetIn).Add(amountToFloat(res.AmountIn))
	k.recordReserves(next)
	k.Logger(ctx).Debug("swap executed",
		"pool", key.String(),
		"trader", trader.String(),
		"asset_in", res.AssetIn,
		"amount_in", res.AmountIn.String(),
		"asset_out", res.AssetOut,
		"amount_out", res.AmountOut.String(),
	)

	return res.AmountOut, nil
}

// Quote returns what SwapExactIn would pay for amountIn of assetIn against the
// current reserves, without touching state.
func (k Keeper) Quote(ctx context.Context, key types.PoolKey, assetIn string, amountIn math.Int) (math.Int, error) {
	pool, err := k.loadPool(ctx, key)
	if err != nil {
		return math.Int{}, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}
	reserveIn, reserveOut, _, err := pool.Reserves(assetIn)
	if err != nil {
		return math.Int{}, err
	}
	return types.QuoteExactIn(amountIn, reserveIn, reserveOut, params.SwapFeeBps)
}

// SpotPrice returns the marginal price of assetIn in units of the other asset,
// reserve_out / reserve_in, truncated to 18 decimals.
func (k Keeper) SpotPrice(ctx context.Context, key types.PoolKey, assetIn string) (math.LegacyDec, error) {
	pool, err := k.loadPool(ctx, key)
	if err != nil {
		return math.LegacyDec{}, err
	}
	reserveIn, reserveOut, _, err := pool.Reserves(assetIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.LegacyDec{}, types.ErrDivisionByZero.Wrapf("pool %s is empty", key)
	}
	return math.LegacyNewDecFromInt(reserveOut).QuoTruncate(math.LegacyNewDecFromInt(reserveIn)), nil
}
