package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrLiquidityPoolAlreadyExists = errors.Register(ModuleName, 1, "liquidity pool already exists")
	ErrInvalidAssetIn             = errors.Register(ModuleName, 2, "invalid input asset")
	ErrInvalidAssetOut            = errors.Register(ModuleName, 3, "invalid output asset")
	ErrInsufficientLiquidity      = errors.Register(ModuleName, 4, "insufficient liquidity")
	ErrInsufficientReserves       = errors.Register(ModuleName, 5, "insufficient reserves")
	ErrLiquidityOverflow          = errors.Register(ModuleName, 6, "liquidity overflow")
	ErrReserveOverflow            = errors.Register(ModuleName, 7, "reserve overflow")
	ErrArithmeticOverflow         = errors.Register(ModuleName, 8, "arithmetic overflow")
	ErrDivisionByZero             = errors.Register(ModuleName, 9, "division by zero")
	ErrInsufficientAmountOut      = errors.Register(ModuleName, 10, "amount below requested minimum")
	ErrPoolNotFound               = errors.Register(ModuleName, 11, "liquidity pool not found")
	ErrInvalidLiquidityToken      = errors.Register(ModuleName, 12, "invalid liquidity token")
	ErrLiquidityTokenInUse        = errors.Register(ModuleName, 13, "liquidity token already used by another pool")
	ErrInvalidAmount              = errors.Register(ModuleName, 14, "invalid amount")
	ErrInvalidParams              = errors.Register(ModuleName, 15, "invalid module parameters")
	ErrInvariantViolation         = errors.Register(ModuleName, 16, "pool invariant violated")
)
