package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolKey identifies a pool by its canonical asset pair. AssetA always sorts
// before AssetB.
type PoolKey struct {
	AssetA string `json:"asset_a"`
	AssetB string `json:"asset_b"`
}

// NewPoolKey canonicalizes an unordered pair of denoms.
func NewPoolKey(denomA, denomB string) PoolKey {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	return PoolKey{AssetA: denomA, AssetB: denomB}
}

// String implements fmt.Stringer
func (k PoolKey) String() string {
	return k.AssetA + "/" + k.AssetB
}

// Contains reports whether denom is one of the pair's assets
func (k PoolKey) Contains(denom string) bool {
	return denom == k.AssetA || denom == k.AssetB
}

// Validate checks that the key is canonical and made of two distinct valid denoms
func (k PoolKey) Validate() error {
	if err := sdk.ValidateDenom(k.AssetA); err != nil {
		return ErrInvalidAssetIn.Wrapf("asset %q: %v", k.AssetA, err)
	}
	if err := sdk.ValidateDenom(k.AssetB); err != nil {
		return ErrInvalidAssetOut.Wrapf("asset %q: %v", k.AssetB, err)
	}
	if k.AssetA == k.AssetB {
		return ErrInvalidAssetIn.Wrapf("pair assets must differ, got %s twice", k.AssetA)
	}
	if k.AssetA > k.AssetB {
		return ErrInvalidAssetIn.Wrapf("pair %s is not in canonical order", k)
	}
	return nil
}

// Pool is the market state of one trading pair
type Pool struct {
	AssetA         string   `json:"asset_a"`
	AssetB         string   `json:"asset_b"`
	ReserveA       math.Int `json:"reserve_a"`
	ReserveB       math.Int `json:"reserve_b"`
	TotalLiquidity math.Int `json:"total_liquidity"`
	LiquidityToken string   `json:"liquidity_token"`
	Creator        string   `json:"creator"`
}

// NewPool returns an empty pool for a canonical pair
func NewPool(key PoolKey, liquidityToken string, creator sdk.AccAddress) Pool {
	return Pool{
		AssetA:         key.AssetA,
		AssetB:         key.AssetB,
		ReserveA:       math.ZeroInt(),
		ReserveB:       math.ZeroInt(),
		TotalLiquidity: math.ZeroInt(),
		LiquidityToken: liquidityToken,
		Creator:        creator.String(),
	}
}

// Key returns the canonical pair of the pool
func (p Pool) Key() PoolKey {
	return PoolKey{AssetA: p.AssetA, AssetB: p.AssetB}
}

// IsEmpty reports whether the pool holds no shares
func (p Pool) IsEmpty() bool {
	return p.TotalLiquidity.IsZero()
}

// Reserves returns the reserves oriented for a trade that sells assetIn.
func (p Pool) Reserves(assetIn string) (reserveIn, reserveOut math.Int, assetOut string, err error) {
	switch assetIn {
	case p.AssetA:
		return p.ReserveA, p.ReserveB, p.AssetB, nil
	case p.AssetB:
		return p.ReserveB, p.ReserveA, p.AssetA, nil
	default:
		return math.Int{}, math.Int{}, "", ErrInvalidAssetIn.Wrapf("%s is not an asset of pool %s", assetIn, p.Key())
	}
}

// WithReserves returns a copy of the pool with reserves set for a trade that
// sold assetIn. assetIn must be one of the pool assets.
func (p Pool) WithReserves(assetIn string, reserveIn, reserveOut math.Int) Pool {
	if assetIn == p.AssetA {
		p.ReserveA, p.ReserveB = reserveIn, reserveOut
	} else {
		p.ReserveB, p.ReserveA = reserveIn, reserveOut
	}
	return p
}

// Validate checks the per-pool invariants: canonical non-identical assets,
// non-negative reserves and shares within the integer domain, and that shares
// exist exactly when both reserves are funded.
func (p Pool) Validate() error {
	if err := p.Key().Validate(); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(p.LiquidityToken); err != nil {
		return ErrInvalidLiquidityToken.Wrapf("liquidity token %q: %v", p.LiquidityToken, err)
	}
	if p.Key().Contains(p.LiquidityToken) {
		return ErrInvalidLiquidityToken.Wrapf("liquidity token %s collides with a pool asset", p.LiquidityToken)
	}
	fields := []struct {
		name string
		v    math.Int
	}{
		{"reserve_a", p.ReserveA},
		{"reserve_b", p.ReserveB},
		{"total_liquidity", p.TotalLiquidity},
	}
	for _, f := range fields {
		if err := ValidateAmount(f.v); err != nil {
			return ErrInvariantViolation.Wrapf("pool %s: %s: %v", p.Key(), f.name, err)
		}
	}
	funded := p.ReserveA.IsPositive() && p.ReserveB.IsPositive()
	drained := p.ReserveA.IsZero() && p.ReserveB.IsZero()
	switch {
	case p.TotalLiquidity.IsZero() && !drained:
		return ErrInvariantViolation.Wrapf("pool %s has reserves (%s, %s) but no shares", p.Key(), p.ReserveA, p.ReserveB)
	case p.TotalLiquidity.IsPositive() && !funded:
		return ErrInvariantViolation.Wrapf("pool %s has %s shares but reserves (%s, %s)", p.Key(), p.TotalLiquidity, p.ReserveA, p.ReserveB)
	}
	return nil
}

// String implements fmt.Stringer
func (p Pool) String() string {
	return fmt.Sprintf("%s reserves=(%s,%s) shares=%s%s", p.Key(), p.ReserveA, p.ReserveB, p.TotalLiquidity, p.LiquidityToken)
}
