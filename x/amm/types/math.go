package types

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// FeeDenominator is the scale of SwapFeeBps (basis points)
const FeeDenominator = 10_000

// MaxAmount is the largest amount of the integer domain, 2^256-1. It matches
// the bit bound of math.Int and therefore of sdk.Coin amounts.
var MaxAmount = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))

// ValidateAmount checks that v is set and inside [0, MaxAmount]
func ValidateAmount(v math.Int) error {
	if v.IsNil() {
		return ErrInvalidAmount.Wrap("amount is not set")
	}
	if v.IsNegative() {
		return ErrInvalidAmount.Wrapf("amount %s is negative", v)
	}
	if v.GT(MaxAmount) {
		return ErrArithmeticOverflow.Wrapf("amount %s exceeds the integer domain", v)
	}
	return nil
}

func toU256(v math.Int) (*uint256.Int, error) {
	if err := ValidateAmount(v); err != nil {
		return nil, err
	}
	u, overflow := uint256.FromBig(v.BigInt())
	if overflow {
		return nil, ErrArithmeticOverflow.Wrapf("amount %s exceeds the integer domain", v)
	}
	return u, nil
}

func fromU256(u *uint256.Int) math.Int {
	return math.NewIntFromBigInt(u.ToBig())
}

// MulDiv returns floor(x*y/d). The product is formed in a 512-bit
// intermediate; ok is false when the quotient does not fit back into the
// integer domain. d must be non-zero.
func MulDiv(x, y, d math.Int) (res math.Int, ok bool, err error) {
	ux, err := toU256(x)
	if err != nil {
		return math.Int{}, false, err
	}
	uy, err := toU256(y)
	if err != nil {
		return math.Int{}, false, err
	}
	ud, err := toU256(d)
	if err != nil {
		return math.Int{}, false, err
	}
	if ud.IsZero() {
		return math.Int{}, false, ErrDivisionByZero.Wrapf("%s * %s / 0", x, y)
	}
	q, overflow := new(uint256.Int).MulDivOverflow(ux, uy, ud)
	if overflow {
		return math.Int{}, false, nil
	}
	return fromU256(q), true, nil
}

// CheckedAdd returns x+y, or ok=false when the sum leaves the integer domain
func CheckedAdd(x, y math.Int) (res math.Int, ok bool, err error) {
	ux, err := toU256(x)
	if err != nil {
		return math.Int{}, false, err
	}
	uy, err := toU256(y)
	if err != nil {
		return math.Int{}, false, err
	}
	sum, overflow := new(uint256.Int).AddOverflow(ux, uy)
	if overflow {
		return math.Int{}, false, nil
	}
	return fromU256(sum), true, nil
}

// CheckedSub returns x-y, or ok=false when y > x
func CheckedSub(x, y math.Int) (res math.Int, ok bool, err error) {
	ux, err := toU256(x)
	if err != nil {
		return math.Int{}, false, err
	}
	uy, err := toU256(y)
	if err != nil {
		return math.Int{}, false, err
	}
	diff, underflow := new(uint256.Int).SubOverflow(ux, uy)
	if underflow {
		return math.Int{}, false, nil
	}
	return fromU256(diff), true, nil
}

// InitialShares is the bootstrap share count for an empty pool:
// floor(sqrt(amountA * amountB)). The square root of the widened product
// never exceeds max(amountA, amountB), so the result always fits.
func InitialShares(amountA, amountB math.Int) (math.Int, error) {
	if err := ValidateAmount(amountA); err != nil {
		return math.Int{}, err
	}
	if err := ValidateAmount(amountB); err != nil {
		return math.Int{}, err
	}
	product := new(big.Int).Mul(amountA.BigInt(), amountB.BigInt())
	return math.NewIntFromBigInt(new(big.Int).Sqrt(product)), nil
}

// EffectiveAmountIn applies the swap fee: floor(amountIn * (10000 - feeBps) / 10000)
func EffectiveAmountIn(amountIn math.Int, feeBps uint32) (math.Int, error) {
	if feeBps >= FeeDenominator {
		return math.Int{}, ErrInvalidParams.Wrapf("swap fee %d bps must be below %d", feeBps, FeeDenominator)
	}
	eff, ok, err := MulDiv(amountIn, math.NewInt(int64(FeeDenominator-feeBps)), math.NewInt(FeeDenominator))
	if err != nil {
		return math.Int{}, err
	}
	if !ok {
		return math.Int{}, ErrArithmeticOverflow.Wrapf("fee discount of %s", amountIn)
	}
	return eff, nil
}

// QuoteExactIn prices selling amountIn against (reserveIn, reserveOut):
//
//	eff       = amountIn * (1 - fee)
//	amountOut = eff * reserveOut / (reserveIn + eff)
//
// Both Keeper.Quote and Keeper.SwapExactIn go through this function.
func QuoteExactIn(amountIn, reserveIn, reserveOut math.Int, feeBps uint32) (math.Int, error) {
	if err := ValidateAmount(amountIn); err != nil {
		return math.Int{}, err
	}
	if err := ValidateAmount(reserveIn); err != nil {
		return math.Int{}, err
	}
	if err := ValidateAmount(reserveOut); err != nil {
		return math.Int{}, err
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, ErrDivisionByZero.Wrapf("pool reserves (%s, %s) must both be positive", reserveIn, reserveOut)
	}
	// the pool will hold reserveIn + amountIn after the trade
	if _, ok, err := CheckedAdd(reserveIn, amountIn); err != nil {
		return math.Int{}, err
	} else if !ok {
		return math.Int{}, ErrArithmeticOverflow.Wrapf("reserve %s + amount in %s", reserveIn, amountIn)
	}
	eff, err := EffectiveAmountIn(amountIn, feeBps)
	if err != nil {
		return math.Int{}, err
	}
	// eff <= amountIn, so this sum cannot overflow after the check above
	denominator := reserveIn.Add(eff)
	amountOut, ok, err := MulDiv(eff, reserveOut, denominator)
	if err != nil {
		return math.Int{}, err
	}
	if !ok {
		return math.Int{}, ErrArithmeticOverflow.Wrapf("%s * %s / %s", eff, reserveOut, denominator)
	}
	return amountOut, nil
}

// ValidateSwapOutput applies the slippage guard and the drain guard to a
// priced swap.
func ValidateSwapOutput(amountOut, minAmountOut, reserveOut math.Int) error {
	if amountOut.IsZero() {
		return ErrInsufficientAmountOut.Wrap("swap output rounds down to zero")
	}
	if amountOut.LT(minAmountOut) {
		return ErrInsufficientAmountOut.Wrapf("expected at least %s, got %s", minAmountOut, amountOut)
	}
	if amountOut.GTE(reserveOut) {
		return ErrInsufficientReserves.Wrapf("output %s would drain reserve %s", amountOut, reserveOut)
	}
	return nil
}

// ConstantProduct returns reserveA * reserveB without narrowing
func ConstantProduct(reserveA, reserveB math.Int) *big.Int {
	return new(big.Int).Mul(reserveA.BigInt(), reserveB.BigInt())
}
