package types

// Event types for the AMM module
const (
	EventTypePoolCreated      = "pool_created"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeSwapped          = "swapped"
)

// Event attribute keys
const (
	AttributeKeyCreator        = "creator"
	AttributeKeyProvider       = "provider"
	AttributeKeyTrader         = "trader"
	AttributeKeyPool           = "pool"
	AttributeKeyAssetA         = "asset_a"
	AttributeKeyAssetB         = "asset_b"
	AttributeKeyLiquidityToken = "liquidity_token"
	AttributeKeyAmountA        = "amount_a"
	AttributeKeyAmountB        = "amount_b"
	AttributeKeyShares         = "shares"
	AttributeKeyAssetIn        = "asset_in"
	AttributeKeyAssetOut       = "asset_out"
	AttributeKeyAmountIn       = "amount_in"
	AttributeKeyAmountOut      = "amount_out"
)
