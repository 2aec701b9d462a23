package types

import (
	"encoding/binary"

	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// Store key prefixes
var (
	// PoolKeyPrefix is the prefix for pool records keyed by canonical pair
	PoolKeyPrefix = []byte{0x01}

	// LiquidityTokenKeyPrefix indexes pools by their liquidity token denom
	LiquidityTokenKeyPrefix = []byte{0x02}

	// TotalReserveKeyPrefix holds the aggregate reserve per denom across all pools
	TotalReserveKeyPrefix = []byte{0x03}

	// PoolCountKey is the key for the registered pool counter
	PoolCountKey = []byte{0x04}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x05}
)

// PoolStoreKey returns the store key suffix for a canonical pair. Both denoms
// are length-prefixed so that denoms containing separators cannot collide.
func PoolStoreKey(key PoolKey) []byte {
	bz := address.MustLengthPrefix([]byte(key.AssetA))
	return append(bz, address.MustLengthPrefix([]byte(key.AssetB))...)
}

// ParsePoolStoreKey is the inverse of PoolStoreKey.
func ParsePoolStoreKey(bz []byte) (PoolKey, bool) {
	if len(bz) == 0 {
		return PoolKey{}, false
	}
	la := int(bz[0])
	if len(bz) < 1+la+1 {
		return PoolKey{}, false
	}
	a := string(bz[1 : 1+la])
	rest := bz[1+la:]
	lb := int(rest[0])
	if len(rest) != 1+lb {
		return PoolKey{}, false
	}
	return PoolKey{AssetA: a, AssetB: string(rest[1:])}, true
}

// PoolRecordKey returns the full store key of a pool record
func PoolRecordKey(key PoolKey) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), PoolStoreKey(key)...)
}

// LiquidityTokenKey returns the store key of the liquidity token index entry
func LiquidityTokenKey(denom string) []byte {
	return append(append([]byte{}, LiquidityTokenKeyPrefix...), []byte(denom)...)
}

// TotalReserveKey returns the store key of the aggregate reserve for a denom
func TotalReserveKey(denom string) []byte {
	return append(append([]byte{}, TotalReserveKeyPrefix...), []byte(denom)...)
}

// Uint64ToBytes encodes a counter value big-endian
func Uint64ToBytes(v uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, v)
	return bz
}

// BytesToUint64 decodes a big-endian counter value
func BytesToUint64(bz []byte) uint64 {
	if len(bz) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}
