package types

import (
	"cosmossdk.io/math"
)

// Deposit is a priced liquidity provision
type Deposit struct {
	AmountA math.Int
	AmountB math.Int
	Shares  math.Int
}

// Withdrawal is a priced liquidity withdrawal
type Withdrawal struct {
	AmountA math.Int
	AmountB math.Int
	Shares  math.Int
}

// SwapResult is a priced exact-input swap
type SwapResult struct {
	AssetIn   string
	AssetOut  string
	AmountIn  math.Int
	AmountOut math.Int
}

// PriceDeposit computes the amounts taken and shares minted for a deposit,
// together with the resulting pool. The receiver is not modified.
//
// An empty pool accepts the desired amounts as-is and mints
// floor(sqrt(a*b)) shares. A funded pool takes the largest amounts that keep
// the reserve ratio, and mints the smaller of the two per-side share counts so
// rounding never favours the provider.
func (p Pool) PriceDeposit(desiredA, desiredB, minA, minB math.Int) (Deposit, Pool, error) {
	for _, v := range []math.Int{desiredA, desiredB, minA, minB} {
		if err := ValidateAmount(v); err != nil {
			return Deposit{}, p, err
		}
	}

	var d Deposit
	if p.IsEmpty() {
		shares, err := InitialShares(desiredA, desiredB)
		if err != nil {
			return Deposit{}, p, err
		}
		d = Deposit{AmountA: desiredA, AmountB: desiredB, Shares: shares}
	} else {
		var err error
		if d.AmountA, d.AmountB, err = p.optimalAmounts(desiredA, desiredB); err != nil {
			return Deposit{}, p, err
		}
	}

	if d.AmountA.LT(minA) || d.AmountB.LT(minB) {
		return Deposit{}, p, ErrInsufficientAmountOut.Wrapf(
			"deposit (%s, %s) below minimums (%s, %s)", d.AmountA, d.AmountB, minA, minB)
	}

	if !p.IsEmpty() {
		sharesA, okA, err := MulDiv(d.AmountA, p.TotalLiquidity, p.ReserveA)
		if err != nil {
			return Deposit{}, p, err
		}
		sharesB, okB, err := MulDiv(d.AmountB, p.TotalLiquidity, p.ReserveB)
		if err != nil {
			return Deposit{}, p, err
		}
		switch {
		case !okA && !okB:
			return Deposit{}, p, ErrLiquidityOverflow.Wrapf("shares for deposit (%s, %s)", d.AmountA, d.AmountB)
		case !okA:
			d.Shares = sharesB
		case !okB:
			d.Shares = sharesA
		default:
			d.Shares = math.MinInt(sharesA, sharesB)
		}
	}
	if d.Shares.IsZero() {
		return Deposit{}, p, ErrInsufficientLiquidity.Wrapf("deposit (%s, %s) mints zero shares", d.AmountA, d.AmountB)
	}

	next := p
	var ok bool
	var err error
	if next.ReserveA, ok, err = CheckedAdd(p.ReserveA, d.AmountA); err != nil {
		return Deposit{}, p, err
	} else if !ok {
		return Deposit{}, p, ErrReserveOverflow.Wrapf("%s reserve %s + %s", p.AssetA, p.ReserveA, d.AmountA)
	}
	if next.ReserveB, ok, err = CheckedAdd(p.ReserveB, d.AmountB); err != nil {
		return Deposit{}, p, err
	} else if !ok {
		return Deposit{}, p, ErrReserveOverflow.Wrapf("%s reserve %s + %s", p.AssetB, p.ReserveB, d.AmountB)
	}
	if next.TotalLiquidity, ok, err = CheckedAdd(p.TotalLiquidity, d.Shares); err != nil {
		return Deposit{}, p, err
	} else if !ok {
		return Deposit{}, p, ErrLiquidityOverflow.Wrapf("total liquidity %s + %s", p.TotalLiquidity, d.Shares)
	}
	return d, next, nil
}

// optimalAmounts returns the largest (a, b) <= (desiredA, desiredB) matching
// the pool's reserve ratio.
func (p Pool) optimalAmounts(desiredA, desiredB math.Int) (math.Int, math.Int, error) {
	optimalB, ok, err := MulDiv(desiredA, p.ReserveB, p.ReserveA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	// an overflowing optimalB is necessarily above desiredB
	if ok && optimalB.LTE(desiredB) {
		return desiredA, optimalB, nil
	}
	optimalA, ok, err := MulDiv(desiredB, p.ReserveA, p.ReserveB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !ok {
		return math.Int{}, math.Int{}, ErrArithmeticOverflow.Wrapf("%s * %s / %s", desiredB, p.ReserveA, p.ReserveB)
	}
	return optimalA, desiredB, nil
}

// PriceWithdrawal computes the pro-rata amounts paid out for burning shares,
// rounding down, together with the resulting pool.
func (p Pool) PriceWithdrawal(shares, minA, minB math.Int) (Withdrawal, Pool, error) {
	for _, v := range []math.Int{shares, minA, minB} {
		if err := ValidateAmount(v); err != nil {
			return Withdrawal{}, p, err
		}
	}
	if shares.IsZero() {
		return Withdrawal{}, p, ErrInsufficientLiquidity.Wrap("shares must be positive")
	}
	if shares.GT(p.TotalLiquidity) {
		return Withdrawal{}, p, ErrInsufficientLiquidity.Wrapf("pool %s has %s shares, requested %s", p.Key(), p.TotalLiquidity, shares)
	}

	w := Withdrawal{Shares: shares}
	var ok bool
	var err error
	if w.AmountA, ok, err = MulDiv(p.ReserveA, shares, p.TotalLiquidity); err != nil {
		return Withdrawal{}, p, err
	} else if !ok {
		return Withdrawal{}, p, ErrArithmeticOverflow.Wrapf("%s * %s / %s", p.ReserveA, shares, p.TotalLiquidity)
	}
	if w.AmountB, ok, err = MulDiv(p.ReserveB, shares, p.TotalLiquidity); err != nil {
		return Withdrawal{}, p, err
	} else if !ok {
		return Withdrawal{}, p, ErrArithmeticOverflow.Wrapf("%s * %s / %s", p.ReserveB, shares, p.TotalLiquidity)
	}

	if w.AmountA.LT(minA) || w.AmountB.LT(minB) {
		return Withdrawal{}, p, ErrInsufficientAmountOut.Wrapf(
			"withdrawal (%s, %s) below minimums (%s, %s)", w.AmountA, w.AmountB, minA, minB)
	}
	if w.AmountA.IsZero() || w.AmountB.IsZero() {
		return Withdrawal{}, p, ErrInsufficientLiquidity.Wrapf("burning %s shares pays out (%s, %s)", shares, w.AmountA, w.AmountB)
	}

	next := p
	if next.ReserveA, ok, err = CheckedSub(p.ReserveA, w.AmountA); err != nil {
		return Withdrawal{}, p, err
	} else if !ok {
		return Withdrawal{}, p, ErrInsufficientReserves.Wrapf("%s reserve %s < %s", p.AssetA, p.ReserveA, w.AmountA)
	}
	if next.ReserveB, ok, err = CheckedSub(p.ReserveB, w.AmountB); err != nil {
		return Withdrawal{}, p, err
	} else if !ok {
		return Withdrawal{}, p, ErrInsufficientReserves.Wrapf("%s reserve %s < %s", p.AssetB, p.ReserveB, w.AmountB)
	}
	next.TotalLiquidity = p.TotalLiquidity.Sub(shares)
	return w, next, nil
}

// PriceSwapExactIn prices selling amountIn of assetIn and returns the
// resulting pool. The whole input, fee included, is added to the reserve.
func (p Pool) PriceSwapExactIn(assetIn string, amountIn, minAmountOut math.Int, feeBps uint32) (SwapResult, Pool, error) {
	reserveIn, reserveOut, assetOut, err := p.Reserves(assetIn)
	if err != nil {
		return SwapResult{}, p, err
	}
	if err := ValidateAmount(minAmountOut); err != nil {
		return SwapResult{}, p, err
	}
	amountOut, err := QuoteExactIn(amountIn, reserveIn, reserveOut, feeBps)
	if err != nil {
		return SwapResult{}, p, err
	}
	if err := ValidateSwapOutput(amountOut, minAmountOut, reserveOut); err != nil {
		return SwapResult{}, p, err
	}

	// QuoteExactIn already proved reserveIn + amountIn fits
	next := p.WithReserves(assetIn, reserveIn.Add(amountIn), reserveOut.Sub(amountOut))
	if ConstantProduct(next.ReserveA, next.ReserveB).Cmp(ConstantProduct(p.ReserveA, p.ReserveB)) < 0 {
		return SwapResult{}, p, ErrInvariantViolation.Wrapf("constant product decreased in pool %s", p.Key())
	}
	return SwapResult{
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
	}, next, nil
}
