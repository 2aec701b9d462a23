// Package keeper implements the amm module keeper.
//
// The amm module is the accounting and pricing core of a constant-product
// automated market maker. It keeps one pool per unordered asset pair, mints
// and burns liquidity shares against deposits and withdrawals, and prices
// exact-in swaps with the x * y = k rule.
//
// # Key Types
//
// Keeper: Pool registry, liquidity engine and swap engine over one KV store.
// Balances move through a BalanceLedger supplied by the host.
//
// Pool: Reserves of both assets, outstanding shares and the liquidity token
// denom. See the types package.
//
// # Usage Patterns
//
// Creating and seeding a pool:
//
//	key, err := k.CreatePool(ctx, creator, "uatom", "upaw", "amm/uatom-upaw")
//	a, b, shares, err := k.AddLiquidity(ctx, creator, key, amountA, amountB, minA, minB)
//
// Swapping:
//
//	out, err := k.SwapExactIn(ctx, trader, key, "uatom", amountIn, minAmountOut)
//
// Every mutating operation runs inside a cache context and is committed only
// when ledger transfers, state writes and hooks all succeed.
//
// # Invariants
//
// RegisterInvariants exposes pool-state, module-account-balance,
// liquidity-supply and liquidity-token-index routes.
package keeper
