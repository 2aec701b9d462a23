package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawamm/x/amm/types"
)

// AddLiquidity deposits into the pool at key and mints liquidity tokens to the
// provider. An empty pool takes the desired amounts as-is; a funded pool takes
// the largest amounts matching its reserve ratio. It returns the amounts
// actually taken and the shares minted.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	key types.PoolKey,
	amountADesired, amountBDesired, amountAMin, amountBMin math.Int,
) (amountA, amountB, shares math.Int, err error) {
	pool, err := k.loadPool(ctx, key)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	deposit, next, err := pool.PriceDeposit(amountADesired, amountBDesired, amountAMin, amountBMin)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	deposited := sdk.NewCoins(
		sdk.NewCoin(pool.AssetA, deposit.AmountA),
		sdk.NewCoin(pool.AssetB, deposit.AmountB),
	)
	if err := k.ledger.SendCoinsFromAccountToModule(cacheCtx, provider, types.ModuleName, deposited); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, errorsmod.Wrapf(err, "failed to collect deposit %s", deposited)
	}

	if err := k.setPool(cacheCtx, next); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := k.increaseTotalReserve(cacheCtx, pool.AssetA, deposit.AmountA); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := k.increaseTotalReserve(cacheCtx, pool.AssetB, deposit.AmountB); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	minted := sdk.NewCoins(sdk.NewCoin(pool.LiquidityToken, deposit.Shares))
	if err := k.ledger.MintCoins(cacheCtx, types.ModuleName, minted); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, errorsmod.Wrapf(err, "failed to mint %s", minted)
	}
	if err := k.ledger.SendCoinsFromModuleToAccount(cacheCtx, types.ModuleName, provider, minted); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, errorsmod.Wrapf(err, "failed to deliver %s", minted)
	}

	if k.hooks != nil {
		if err := k.hooks.AfterLiquidityAdded(cacheCtx, provider.String(), key, deposit.AmountA, deposit.AmountB, deposit.Shares); err != nil {
			return math.Int{}, math.Int{}, math.Int{}, fmt.Errorf("AfterLiquidityAdded hook: %w", err)
		}
	}

	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyPool, key.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, deposit.AmountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, deposit.AmountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, deposit.Shares.String()),
		),
	)

	k.metrics.LiquidityAdded.WithLabelValues(key.String()).Inc()
	k.recordReserves(next)
	k.Logger(ctx).Debug("liquidity added",
		"pool", key.String(),
		"provider", provider.String(),
		"amount_a", deposit.AmountA.String(),
		"amount_b", deposit.AmountB.String(),
		"shares", deposit.Shares.String(),
	)

	return deposit.AmountA, deposit.AmountB, deposit.Shares, nil
}

// RemoveLiquidity burns shares held by the provider and pays out the pro-rata
// reserves, rounded down.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	key types.PoolKey,
	shares, amountAMin, amountBMin math.Int,
) (amountA, amountB math.Int, err error) {
	pool, err := k.loadPool(ctx, key)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := types.ValidateAmount(shares); err != nil {
		return math.Int{}, math.Int{}, err
	}
	balance := k.ledger.GetBalance(ctx, provider, pool.LiquidityToken)
	if balance.Amount.LT(shares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"provider holds %s, requested %s%s", balance, shares, pool.LiquidityToken)
	}

	withdrawal, next, err := pool.PriceWithdrawal(shares, amountAMin, amountBMin)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	burned := sdk.NewCoins(sdk.NewCoin(pool.LiquidityToken, withdrawal.Shares))
	if err := k.ledger.SendCoinsFromAccountToModule(cacheCtx, provider, types.ModuleName, burned); err != nil {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf("failed to collect %s: %v", burned, err)
	}
	if err := k.ledger.BurnCoins(cacheCtx, types.ModuleName, burned); err != nil {
		return math.Int{}, math.Int{}, errorsmod.Wrapf(err, "failed to burn %s", burned)
	}

	if err := k.setPool(cacheCtx, next); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.decreaseTotalReserve(cacheCtx, pool.AssetA, withdrawal.AmountA); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.decreaseTotalReserve(cacheCtx, pool.AssetB, withdrawal.AmountB); err != nil {
		return math.Int{}, math.Int{}, err
	}

	paid := sdk.NewCoins(
		sdk.NewCoin(pool.AssetA, withdrawal.AmountA),
		sdk.NewCoin(pool.AssetB, withdrawal.AmountB),
	)
	if err := k.ledger.SendCoinsFromModuleToAccount(cacheCtx, types.ModuleName, provider, paid); err != nil {
		return math.Int{}, math.Int{}, errorsmod.Wrapf(err, "failed to pay out %s", paid)
	}

	if k.hooks != nil {
		if err := k.hooks.AfterLiquidityRemoved(cacheCtx, provider.String(), key, withdrawal.AmountA, withdrawal.AmountB, withdrawal.Shares); err != nil {
			return math.Int{}, math.Int{}, fmt.Errorf("AfterLiquidityRemoved hook: %w", err)
		}
	}

	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyPool, key.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, withdrawal.AmountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, withdrawal.AmountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, withdrawal.Shares.String()),
		),
	)

	k.metrics.LiquidityRemoved.WithLabelValues(key.String()).Inc()
	k.recordReserves(next)
	k.Logger(ctx).Debug("liquidity removed",
		"pool", key.String(),
		"provider", provider.String(),
		"amount_a", withdrawal.AmountA.String(),
		"amount_b", withdrawal.AmountB.String(),
		"shares", withdrawal.Shares.String(),
	)

	return withdrawal.AmountA, withdrawal.AmountB, nil
}
