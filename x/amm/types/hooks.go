package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// AMMHooks lets other modules observe pool lifecycle events. Hooks run inside
// the operation's cached context: a hook error aborts the whole operation.
type AMMHooks interface {
	AfterPoolCreated(ctx context.Context, creator string, key PoolKey, liquidityToken string) error
	AfterLiquidityAdded(ctx context.Context, provider string, key PoolKey, amountA, amountB, shares sdkmath.Int) error
	AfterLiquidityRemoved(ctx context.Context, provider string, key PoolKey, amountA, amountB, shares sdkmath.Int) error
	AfterSwap(ctx context.Context, trader string, key PoolKey, assetIn string, amountIn, amountOut sdkmath.Int) error
}

// MultiAMMHooks combines multiple hooks into a single hook that calls all of them.
type MultiAMMHooks []AMMHooks

var _ AMMHooks = MultiAMMHooks{}

// NewMultiAMMHooks creates a new MultiAMMHooks from a list of hooks.
func NewMultiAMMHooks(hooks ...AMMHooks) MultiAMMHooks {
	return hooks
}

// AfterPoolCreated calls AfterPoolCreated on all registered hooks.
func (h MultiAMMHooks) AfterPoolCreated(ctx context.Context, creator string, key PoolKey, liquidityToken string) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterPoolCreated(ctx, creator, key, liquidityToken); err != nil {
			return err
		}
	}
	return nil
}

// AfterLiquidityAdded calls AfterLiquidityAdded on all registered hooks.
func (h MultiAMMHooks) AfterLiquidityAdded(ctx context.Context, provider string, key PoolKey, amountA, amountB, shares sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterLiquidityAdded(ctx, provider, key, amountA, amountB, shares); err != nil {
			return err
		}
	}
	return nil
}

// AfterLiquidityRemoved calls AfterLiquidityRemoved on all registered hooks.
func (h MultiAMMHooks) AfterLiquidityRemoved(ctx context.Context, provider string, key PoolKey, amountA, amountB, shares sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterLiquidityRemoved(ctx, provider, key, amountA, amountB, shares); err != nil {
			return err
		}
	}
	return nil
}

// AfterSwap calls AfterSwap on all registered hooks.
func (h MultiAMMHooks) AfterSwap(ctx context.Context, trader string, key PoolKey, assetIn string, amountIn, amountOut sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterSwap(ctx, trader, key, assetIn, amountIn, amountOut); err != nil {
			return err
		}
	}
	return nil
}
