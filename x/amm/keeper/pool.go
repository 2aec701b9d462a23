package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawamm/x/amm/types"
)

// CreatePool registers an empty pool for the unordered pair (assetA, assetB)
// whose shares are issued as liquidityToken. It returns the canonical key.
func (k Keeper) CreatePool(ctx context.Context, creator sdk.AccAddress, assetA, assetB, liquidityToken string) (types.PoolKey, error) {
	if err := sdk.ValidateDenom(assetA); err != nil {
		return types.PoolKey{}, types.ErrInvalidAssetIn.Wrapf("asset %q: %v", assetA, err)
	}
	if !k.assets.HasSupply(ctx, assetA) {
		return types.PoolKey{}, types.ErrInvalidAssetIn.Wrapf("unknown asset %s", assetA)
	}
	if err := sdk.ValidateDenom(assetB); err != nil {
		return types.PoolKey{}, types.ErrInvalidAssetOut.Wrapf("asset %q: %v", assetB, err)
	}
	if !k.assets.HasSupply(ctx, assetB) {
		return types.PoolKey{}, types.ErrInvalidAssetOut.Wrapf("unknown asset %s", assetB)
	}
	if assetA == assetB {
		return types.PoolKey{}, types.ErrInvalidAssetIn.Wrapf("pair assets must differ, got %s twice", assetA)
	}

	key := types.NewPoolKey(assetA, assetB)
	if err := sdk.ValidateDenom(liquidityToken); err != nil {
		return types.PoolKey{}, types.ErrInvalidLiquidityToken.Wrapf("liquidity token %q: %v", liquidityToken, err)
	}
	if key.Contains(liquidityToken) {
		return types.PoolKey{}, types.ErrInvalidLiquidityToken.Wrapf("liquidity token %s collides with a pool asset", liquidityToken)
	}

	if k.hasPool(ctx, key) {
		return types.PoolKey{}, types.ErrLiquidityPoolAlreadyExists.Wrapf("pool %s", key)
	}
	if other, found := k.getPoolKeyByLiquidityToken(ctx, liquidityToken); found {
		return types.PoolKey{}, types.ErrLiquidityTokenInUse.Wrapf("%s is the liquidity token of pool %s", liquidityToken, other)
	}
	if k.assets.HasSupply(ctx, liquidityToken) {
		return types.PoolKey{}, types.ErrInvalidLiquidityToken.Wrapf("liquidity token %s already has supply", liquidityToken)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.PoolKey{}, err
	}
	count := k.GetPoolCount(ctx)
	if params.MaxPools != 0 && count >= params.MaxPools {
		return types.PoolKey{}, types.ErrInvalidParams.Wrapf("pool limit %d reached", params.MaxPools)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	pool := types.NewPool(key, liquidityToken, creator)
	if err := k.setPool(cacheCtx, pool); err != nil {
		return types.PoolKey{}, err
	}
	k.getStore(cacheCtx).Set(types.LiquidityTokenKey(liquidityToken), types.PoolStoreKey(key))
	k.setPoolCount(cacheCtx, count+1)

	if k.hooks != nil {
		if err := k.hooks.AfterPoolCreated(cacheCtx, creator.String(), key, liquidityToken); err != nil {
			return types.PoolKey{}, fmt.Errorf("AfterPoolCreated hook: %w", err)
		}
	}

	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyPool, key.String()),
			sdk.NewAttribute(types.AttributeKeyAssetA, key.AssetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, key.AssetB),
			sdk.NewAttribute(types.AttributeKeyLiquidityToken, liquidityToken),
		),
	)

	k.metrics.PoolsTotal.Set(float64(count + 1))
	k.Logger(ctx).Info("pool created",
		"pool", key.String(),
		"liquidity_token", liquidityToken,
		"creator", creator.String(),
	)

	return key, nil
}

// GetPool returns the pool for an unordered pair
func (k Keeper) GetPool(ctx context.Context, assetA, assetB string) (types.Pool, bool) {
	return k.GetPoolByKey(ctx, types.NewPoolKey(assetA, assetB))
}

// GetPoolByKey returns the pool for a canonical key
func (k Keeper) GetPoolByKey(ctx context.Context, key types.PoolKey) (types.Pool, bool) {
	pool, err := k.loadPool(ctx, key)
	if err != nil {
		if !types.ErrPoolNotFound.Is(err) {
			k.Logger(ctx).Error("failed to load pool", "pool", key.String(), "error", err)
		}
		return types.Pool{}, false
	}
	return pool, true
}

// GetPoolByLiquidityToken returns the pool issuing the given liquidity token
func (k Keeper) GetPoolByLiquidityToken(ctx context.Context, denom string) (types.Pool, bool) {
	key, found := k.getPoolKeyByLiquidityToken(ctx, denom)
	if !found {
		return types.Pool{}, false
	}
	return k.GetPoolByKey(ctx, key)
}

// GetPoolCount returns the number of registered pools
func (k Keeper) GetPoolCount(ctx context.Context) uint64 {
	return types.BytesToUint64(k.getStore(ctx).Get(types.PoolCountKey))
}

func (k Keeper) setPoolCount(ctx context.Context, count uint64) {
	k.getStore(ctx).Set(types.PoolCountKey, types.Uint64ToBytes(count))
}

// IteratePools walks every pool in canonical key order until cb returns true
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("failed to unmarshal pool at %X: %w", iterator.Key(), err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns all pools in canonical key order
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := []types.Pool{}
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// GetTotalReserve returns the amount of denom held by the module across all pools
func (k Keeper) GetTotalReserve(ctx context.Context, denom string) (math.Int, error) {
	total := math.ZeroInt()
	bz := k.getStore(ctx).Get(types.TotalReserveKey(denom))
	if bz == nil {
		return total, nil
	}
	if err := total.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("failed to unmarshal total reserve of %s: %w", denom, err)
	}
	return total, nil
}

// IterateTotalReserves walks the aggregate reserve of every denom the module holds
func (k Keeper) IterateTotalReserves(ctx context.Context, cb func(denom string, amount math.Int) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.TotalReserveKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(types.TotalReserveKeyPrefix):])
		amount := math.ZeroInt()
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("failed to unmarshal total reserve of %s: %w", denom, err)
		}
		if cb(denom, amount) {
			break
		}
	}
	return nil
}

// increaseTotalReserve adds amount to the aggregate reserve of denom
func (k Keeper) increaseTotalReserve(ctx context.Context, denom string, amount math.Int) error {
	total, err := k.GetTotalReserve(ctx, denom)
	if err != nil {
		return err
	}
	next, ok, err := types.CheckedAdd(total, amount)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrReserveOverflow.Wrapf("aggregate %s reserve %s + %s", denom, total, amount)
	}
	return k.setTotalReserve(ctx, denom, next)
}

// decreaseTotalReserve subtracts amount from the aggregate reserve of denom
func (k Keeper) decreaseTotalReserve(ctx context.Context, denom string, amount math.Int) error {
	total, err := k.GetTotalReserve(ctx, denom)
	if err != nil {
		return err
	}
	next, ok, err := types.CheckedSub(total, amount)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrInsufficientReserves.Wrapf("aggregate %s reserve %s < %s", denom, total, amount)
	}
	return k.setTotalReserve(ctx, denom, next)
}

func (k Keeper) setTotalReserve(ctx context.Context, denom string, amount math.Int) error {
	store := k.getStore(ctx)
	if amount.IsZero() {
		store.Delete(types.TotalReserveKey(denom))
		return nil
	}
	bz, err := amount.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal total reserve of %s: %w", denom, err)
	}
	store.Set(types.TotalReserveKey(denom), bz)
	return nil
}

func (k Keeper) hasPool(ctx context.Context, key types.PoolKey) bool {
	return k.getStore(ctx).Has(types.PoolRecordKey(key))
}

// loadPool reads a pool, failing with ErrPoolNotFound when the pair is unknown
func (k Keeper) loadPool(ctx context.Context, key types.PoolKey) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolRecordKey(key))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %s", key)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("failed to unmarshal pool %s: %w", key, err)
	}
	return pool, nil
}

// setPool validates and stores a pool record
func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("failed to marshal pool %s: %w", pool.Key(), err)
	}
	k.getStore(ctx).Set(types.PoolRecordKey(pool.Key()), bz)
	return nil
}

func (k Keeper) getPoolKeyByLiquidityToken(ctx context.Context, denom string) (types.PoolKey, bool) {
	bz := k.getStore(ctx).Get(types.LiquidityTokenKey(denom))
	if bz == nil {
		return types.PoolKey{}, false
	}
	return types.ParsePoolStoreKey(bz)
}

// recordReserves updates the reserve gauges of a pool
func (k Keeper) recordReserves(pool types.Pool) {
	k.metrics.PoolReserves.WithLabelValues(pool.Key().String(), pool.AssetA).Set(amountToFloat(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(pool.Key().String(), pool.AssetB).Set(amountToFloat(pool.ReserveB))
}
