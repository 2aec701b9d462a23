package simulation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/kv"

	"github.com/paw-chain/pawamm/x/amm/types"
)

// NewDecodeStore returns a decoder function closure that unmarshals the KVPair's
// value to the corresponding amm type.
func NewDecodeStore() func(kvA, kvB kv.Pair) string {
	return func(kvA, kvB kv.Pair) string {
		switch {
		case bytes.HasPrefix(kvA.Key, types.PoolKeyPrefix):
			var poolA, poolB types.Pool
			if err := json.Unmarshal(kvA.Value, &poolA); err != nil {
				panic(err)
			}
			if err := json.Unmarshal(kvB.Value, &poolB); err != nil {
				panic(err)
			}
			return fmt.Sprintf("%v\n%v", poolA, poolB)

		case bytes.HasPrefix(kvA.Key, types.LiquidityTokenKeyPrefix):
			keyA, okA := types.ParsePoolStoreKey(kvA.Value)
			keyB, okB := types.ParsePoolStoreKey(kvB.Value)
			if !okA || !okB {
				panic(fmt.Sprintf("invalid liquidity token index values %X %X", kvA.Value, kvB.Value))
			}
			return fmt.Sprintf("%v\n%v", keyA, keyB)

		case bytes.HasPrefix(kvA.Key, types.TotalReserveKeyPrefix):
			var reserveA, reserveB math.Int
			if err := reserveA.Unmarshal(kvA.Value); err != nil {
				panic(err)
			}
			if err := reserveB.Unmarshal(kvB.Value); err != nil {
				panic(err)
			}
			return fmt.Sprintf("%v\n%v", reserveA, reserveB)

		case bytes.Equal(kvA.Key, types.PoolCountKey):
			return fmt.Sprintf("%d\n%d", types.BytesToUint64(kvA.Value), types.BytesToUint64(kvB.Value))

		case bytes.Equal(kvA.Key, types.ParamsKey):
			var paramsA, paramsB types.Params
			if err := json.Unmarshal(kvA.Value, &paramsA); err != nil {
				panic(err)
			}
			if err := json.Unmarshal(kvB.Value, &paramsB); err != nil {
				panic(err)
			}
			return fmt.Sprintf("%v\n%v", paramsA, paramsB)

		default:
			panic(fmt.Sprintf("invalid %s key prefix %X", types.ModuleName, kvA.Key[:1]))
		}
	}
}
