package cmd

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawamm/x/amm/types"
)

const envPrefix = "AMM"

// Operation kinds understood by the runner
const (
	OpCreate = "create"
	OpAdd    = "add"
	OpRemove = "remove"
	OpSwap   = "swap"
	OpQuote  = "quote"
)

// Scenario is a replayable sequence of engine operations
type Scenario struct {
	LogLevel   string       `mapstructure:"log_level"`
	Params     types.Params `mapstructure:"params"`
	Accounts   []Account    `mapstructure:"accounts"`
	Operations []Operation  `mapstructure:"operations"`
}

// Account is a named actor funded before the first operation
type Account struct {
	Name  string `mapstructure:"name"`
	Coins string `mapstructure:"coins"`
}

// Operation is one scenario step. Amounts are decimal strings so that values
// beyond 64 bits survive config decoding.
type Operation struct {
	Op             string `mapstructure:"op"`
	Account        string `mapstructure:"account"`
	AssetA         string `mapstructure:"asset_a"`
	AssetB         string `mapstructure:"asset_b"`
	LiquidityToken string `mapstructure:"liquidity_token"`
	AmountA        string `mapstructure:"amount_a"`
	AmountB        string `mapstructure:"amount_b"`
	MinA           string `mapstructure:"min_a"`
	MinB           string `mapstructure:"min_b"`
	Shares         string `mapstructure:"shares"`
	AssetIn        string `mapstructure:"asset_in"`
	AmountIn       string `mapstructure:"amount_in"`
	MinOut         string `mapstructure:"min_out"`
	// ExpectError makes the step pass only if it fails with a message
	// containing this text.
	ExpectError string `mapstructure:"expect_error"`
}

// LoadScenario reads a scenario file. Top-level scalars can be overridden
// from the environment, e.g. AMM_PARAMS_SWAP_FEE_BPS=30.
func LoadScenario(path string) (Scenario, error) {
	v := newScenarioViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return decodeScenario(v)
}

func newScenarioViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := types.DefaultParams()
	v.SetDefault("log_level", "info")
	v.SetDefault("params.swap_fee_bps", defaults.SwapFeeBps)
	v.SetDefault("params.max_pools", defaults.MaxPools)
	return v
}

func decodeScenario(v *viper.Viper) (Scenario, error) {
	var sc Scenario
	if err := v.Unmarshal(&sc); err != nil {
		return Scenario{}, fmt.Errorf("failed to decode scenario: %w", err)
	}
	// environment overrides are only visible through Get
	sc.LogLevel = v.GetString("log_level")
	sc.Params.SwapFeeBps = v.GetUint32("params.swap_fee_bps")
	sc.Params.MaxPools = v.GetUint64("params.max_pools")

	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks the scenario before anything is executed
func (sc Scenario) Validate() error {
	if err := sc.Params.Validate(); err != nil {
		return err
	}

	names := make(map[string]struct{}, len(sc.Accounts))
	for _, acc := range sc.Accounts {
		if acc.Name == "" {
			return fmt.Errorf("account name cannot be empty")
		}
		if _, dup := names[acc.Name]; dup {
			return fmt.Errorf("duplicate account %q", acc.Name)
		}
		names[acc.Name] = struct{}{}
		if _, err := sdk.ParseCoinsNormalized(acc.Coins); err != nil {
			return fmt.Errorf("account %q: invalid coins: %w", acc.Name, err)
		}
	}

	for i, op := range sc.Operations {
		switch op.Op {
		case OpCreate, OpAdd, OpRemove, OpSwap:
			if _, ok := names[op.Account]; !ok {
				return fmt.Errorf("operation %d: unknown account %q", i+1, op.Account)
			}
		case OpQuote:
		default:
			return fmt.Errorf("operation %d: unknown op %q", i+1, op.Op)
		}
		if op.AssetA == "" || op.AssetB == "" {
			return fmt.Errorf("operation %d: asset_a and asset_b are required", i+1)
		}
	}
	return nil
}

// parseAmount decodes an optional decimal amount; empty means zero
func parseAmount(field, s string) (math.Int, error) {
	if s == "" {
		return math.ZeroInt(), nil
	}
	v, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}
