package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BalanceLedger is the custody capability the engine consumes. Its method set
// is a subset of the x/bank keeper, so a bank keeper can be injected directly.
type BalanceLedger interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	GetSupply(ctx context.Context, denom string) sdk.Coin
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
}

// AssetInspector answers whether a denom is a recognized asset.
type AssetInspector interface {
	HasSupply(ctx context.Context, denom string) bool
}
