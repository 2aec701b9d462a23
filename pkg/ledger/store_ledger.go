// Package ledger provides a minimal multi-denom balance ledger backed by a KV
// store. It implements the custody surface the amm keeper needs from x/bank so
// the engine can run in tests and in the simulator without a full app.
package ledger

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// StoreKey is the default store key name for the ledger
const StoreKey = "ledger"

var (
	balancePrefix = []byte{0x01}
	supplyPrefix  = []byte{0x02}
)

func balanceKey(addr sdk.AccAddress, denom string) []byte {
	key := append([]byte{}, balancePrefix...)
	key = append(key, address.MustLengthPrefix(addr)...)
	return append(key, []byte(denom)...)
}

func supplyKey(denom string) []byte {
	return append(append([]byte{}, supplyPrefix...), []byte(denom)...)
}

// StoreLedger keeps balances and total supply per denom. Module accounts are
// addressed the same way x/auth derives them.
type StoreLedger struct {
	storeKey storetypes.StoreKey
}

// NewStoreLedger creates a ledger over the given store key
func NewStoreLedger(key storetypes.StoreKey) StoreLedger {
	return StoreLedger{storeKey: key}
}

func (l StoreLedger) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(l.storeKey)
}

func (l StoreLedger) getInt(ctx context.Context, key []byte) (math.Int, error) {
	v := math.ZeroInt()
	bz := l.getStore(ctx).Get(key)
	if bz == nil {
		return v, nil
	}
	if err := v.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("failed to unmarshal ledger amount: %w", err)
	}
	return v, nil
}

func (l StoreLedger) setInt(ctx context.Context, key []byte, v math.Int) error {
	store := l.getStore(ctx)
	if v.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := v.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal ledger amount: %w", err)
	}
	store.Set(key, bz)
	return nil
}

// GetBalance returns the balance of addr in denom. Unreadable entries read as zero.
func (l StoreLedger) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	v, err := l.getInt(ctx, balanceKey(addr, denom))
	if err != nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}
	return sdk.NewCoin(denom, v)
}

// GetSupply returns the total amount of denom in existence
func (l StoreLedger) GetSupply(ctx context.Context, denom string) sdk.Coin {
	v, err := l.getInt(ctx, supplyKey(denom))
	if err != nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}
	return sdk.NewCoin(denom, v)
}

// HasSupply reports whether any amount of denom has been issued
func (l StoreLedger) HasSupply(ctx context.Context, denom string) bool {
	return l.GetSupply(ctx, denom).IsPositive()
}

// SendCoins moves amt from one account to another
func (l StoreLedger) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amt.String())
	}
	for _, coin := range amt {
		if err := l.subBalance(ctx, from, coin); err != nil {
			return err
		}
		if err := l.addBalance(ctx, to, coin); err != nil {
			return err
		}
	}
	return nil
}

// SendCoinsFromAccountToModule moves amt from an account to a module account
func (l StoreLedger) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return l.SendCoins(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

// SendCoinsFromModuleToAccount moves amt from a module account to an account
func (l StoreLedger) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return l.SendCoins(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

// MintCoins issues amt to a module account
func (l StoreLedger) MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	return l.mint(ctx, authtypes.NewModuleAddress(moduleName), amt)
}

// BurnCoins destroys amt held by a module account
func (l StoreLedger) BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	if !amt.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amt.String())
	}
	moduleAddr := authtypes.NewModuleAddress(moduleName)
	for _, coin := range amt {
		if err := l.subBalance(ctx, moduleAddr, coin); err != nil {
			return err
		}
		supply, err := l.getInt(ctx, supplyKey(coin.Denom))
		if err != nil {
			return err
		}
		if supply.LT(coin.Amount) {
			return sdkerrors.ErrInsufficientFunds.Wrapf("supply %s%s is smaller than %s", supply, coin.Denom, coin)
		}
		if err := l.setInt(ctx, supplyKey(coin.Denom), supply.Sub(coin.Amount)); err != nil {
			return err
		}
	}
	return nil
}

// Fund mints amt directly into an account. Used to seed test and simulator
// accounts.
func (l StoreLedger) Fund(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	return l.mint(ctx, addr, amt)
}

func (l StoreLedger) mint(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amt.String())
	}
	for _, coin := range amt {
		supply, err := l.getInt(ctx, supplyKey(coin.Denom))
		if err != nil {
			return err
		}
		newSupply, err := supply.SafeAdd(coin.Amount)
		if err != nil {
			return sdkerrors.ErrInvalidCoins.Wrapf("supply of %s overflows: %v", coin.Denom, err)
		}
		if err := l.setInt(ctx, supplyKey(coin.Denom), newSupply); err != nil {
			return err
		}
		if err := l.addBalance(ctx, addr, coin); err != nil {
			return err
		}
	}
	return nil
}

func (l StoreLedger) addBalance(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	key := balanceKey(addr, coin.Denom)
	balance, err := l.getInt(ctx, key)
	if err != nil {
		return err
	}
	newBalance, err := balance.SafeAdd(coin.Amount)
	if err != nil {
		return sdkerrors.ErrInvalidCoins.Wrapf("balance of %s in %s overflows: %v", addr, coin.Denom, err)
	}
	return l.setInt(ctx, key, newBalance)
}

func (l StoreLedger) subBalance(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	key := balanceKey(addr, coin.Denom)
	balance, err := l.getInt(ctx, key)
	if err != nil {
		return err
	}
	if balance.LT(coin.Amount) {
		return sdkerrors.ErrInsufficientFunds.Wrapf("spendable balance %s%s is smaller than %s", balance, coin.Denom, coin)
	}
	return l.setInt(ctx, key, balance.Sub(coin.Amount))
}
