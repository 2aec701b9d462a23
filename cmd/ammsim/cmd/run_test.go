package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawamm/x/amm/types"
)

const referenceScenario = `log_level: error
params:
  swap_fee_bps: 0
accounts:
  - name: alice
    coins: 10000uatom,10000upaw
  - name: bob
    coins: 1000uatom
operations:
  - op: create
    account: alice
    asset_a: upaw
    asset_b: uatom
  - op: add
    account: alice
    asset_a: uatom
    asset_b: upaw
    amount_a: "1000"
    amount_b: "1000"
  - op: quote
    asset_a: uatom
    asset_b: upaw
    asset_in: uatom
    amount_in: "100"
  - op: swap
    account: bob
    asset_a: uatom
    asset_b: upaw
    asset_in: uatom
    amount_in: "100"
  - op: swap
    account: bob
    asset_a: uatom
    asset_b: upaw
    asset_in: uatom
    amount_in: "1"
    expect_error: rounds down to zero
  - op: remove
    account: alice
    asset_a: upaw
    asset_b: uatom
    shares: "500"
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunScenario_Reference(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, "scenario.yaml", referenceScenario))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, RunScenario(&out, log.NewNopLogger(), sc))

	require.Equal(t, `step 1 create: created uatom/upaw with liquidity token amm/uatom-upaw
step 2 add: deposited 1000uatom 1000upaw for 1000 shares
step 3 quote: 100uatom quotes 90upaw
step 4 swap: swapped 100uatom for 90upaw
step 5 swap: rejected as expected: swap output rounds down to zero: amount below requested minimum
step 6 remove: burned 500 shares for 550uatom 455upaw
pools: 1
  uatom/upaw reserves=(550,455) shares=500amm/uatom-upaw
`, out.String())
}

func TestRunScenario_UnexpectedErrorStops(t *testing.T) {
	sc := Scenario{
		Params:   types.DefaultParams(),
		Accounts: []Account{{Name: "alice", Coins: "100uatom"}},
		Operations: []Operation{
			{Op: OpSwap, Account: "alice", AssetA: "uatom", AssetB: "upaw", AssetIn: "uatom", AmountIn: "10"},
		},
	}
	require.NoError(t, sc.Validate())

	err := RunScenario(io.Discard, log.NewNopLogger(), sc)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	require.Contains(t, err.Error(), "step 1 swap")
}

func TestRunScenario_ExpectedErrorMustOccur(t *testing.T) {
	sc := Scenario{
		Params:   types.DefaultParams(),
		Accounts: []Account{{Name: "alice", Coins: "100uatom,100upaw"}},
		Operations: []Operation{
			{Op: OpCreate, Account: "alice", AssetA: "uatom", AssetB: "upaw", ExpectError: "already exists"},
		},
	}

	err := RunScenario(io.Discard, log.NewNopLogger(), sc)
	require.ErrorContains(t, err, "got success")
}

func TestRunScenario_MaxPools(t *testing.T) {
	sc := Scenario{
		Params:   types.NewParams(0, 1),
		Accounts: []Account{{Name: "alice", Coins: "1uatom,1uosmo,1upaw"}},
		Operations: []Operation{
			{Op: OpCreate, Account: "alice", AssetA: "uatom", AssetB: "upaw"},
			{Op: OpCreate, Account: "alice", AssetA: "uosmo", AssetB: "upaw", ExpectError: "invalid module parameters"},
		},
	}

	var out bytes.Buffer
	require.NoError(t, RunScenario(&out, log.NewNopLogger(), sc))
	require.Contains(t, out.String(), "pools: 1\n")
}

func TestRunCmd(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", referenceScenario)

	var out, errOut bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"run", "--config", path, "--metrics"})

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "step 4 swap: swapped 100uatom for 90upaw")
	require.Contains(t, out.String(), "paw_amm_swaps_total")
	require.Contains(t, out.String(), "paw_amm_pools_total")
}

// TestRunCmd_MetricsAddr runs with an already cancelled context, so the
// command stops serving as soon as the replay is done.
func TestRunCmd_MetricsAddr(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", referenceScenario)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"run", "--config", path, "--metrics-addr", "127.0.0.1:0"})

	require.NoError(t, rootCmd.ExecuteContext(ctx))
	require.Contains(t, out.String(), "pools: 1\n")
}

func TestRunCmd_MetricsAddrInvalid(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", referenceScenario)

	rootCmd := NewRootCmd()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"run", "--config", path, "--metrics-addr", "127.0.0.1:notaport"})

	require.ErrorContains(t, rootCmd.Execute(), "failed to listen on 127.0.0.1:notaport")
}

func TestRunCmd_MissingConfig(t *testing.T) {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"run", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

	require.ErrorContains(t, rootCmd.Execute(), "failed to read scenario")
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(io.Discard, "debug")
	require.NoError(t, err)

	_, err = newLogger(io.Discard, "loud")
	require.Error(t, err)
}
