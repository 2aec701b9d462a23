package types

import (
	"fmt"
)

// Params configures pricing and registry limits
type Params struct {
	// SwapFeeBps is the fee kept by the pool on every swap, in basis points
	SwapFeeBps uint32 `json:"swap_fee_bps" mapstructure:"swap_fee_bps"`
	// MaxPools caps the number of registered pools; zero means unlimited
	MaxPools uint64 `json:"max_pools" mapstructure:"max_pools"`
}

// DefaultParams returns default parameters for the amm module.
// Swaps are fee-free unless configured otherwise.
func DefaultParams() Params {
	return Params{
		SwapFeeBps: 0,
		MaxPools:   0,
	}
}

// NewParams creates a new Params instance
func NewParams(swapFeeBps uint32, maxPools uint64) Params {
	return Params{SwapFeeBps: swapFeeBps, MaxPools: maxPools}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.SwapFeeBps >= FeeDenominator {
		return ErrInvalidParams.Wrapf("swap fee %d bps must be below %d", p.SwapFeeBps, FeeDenominator)
	}
	return nil
}

// String implements fmt.Stringer
func (p Params) String() string {
	return fmt.Sprintf("swap_fee_bps=%d max_pools=%d", p.SwapFeeBps, p.MaxPools)
}
