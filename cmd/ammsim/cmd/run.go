package cmd

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawamm/x/amm/keeper"
	"github.com/paw-chain/pawamm/x/amm/types"
)

// RunCmd replays a scenario file against a fresh in-memory engine
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a scenario file against an in-memory engine",
		Long: `Replay a scenario file against an in-memory engine.

Every step is printed as it executes and all invariants are checked after it.
The command fails on the first unexpected error or broken invariant.
With --metrics-addr the metrics endpoint stays up after the replay until the
process receives SIGINT or SIGTERM.

Example:
  ammsim run --config scenario.yaml
  AMM_PARAMS_SWAP_FEE_BPS=30 ammsim run --config scenario.yaml
  ammsim run --config scenario.yaml --metrics-addr :36660`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			sc, err := LoadScenario(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(flagLogLevel) {
				sc.LogLevel, _ = cmd.Flags().GetString(flagLogLevel)
			}

			logger, err := newLogger(cmd.ErrOrStderr(), sc.LogLevel)
			if err != nil {
				return err
			}

			var server *http.Server
			if addr, _ := cmd.Flags().GetString(flagMetricsAddr); addr != "" {
				ln, err := net.Listen("tcp", addr)
				if err != nil {
					return fmt.Errorf("failed to listen on %s: %w", addr, err)
				}
				server = StartPrometheusServer(ln, logger)
				defer server.Close()
			}

			if err := RunScenario(cmd.OutOrStdout(), logger, sc); err != nil {
				return err
			}

			if dump, _ := cmd.Flags().GetBool(flagMetrics); dump {
				if err := WriteMetrics(cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			if server == nil {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Info("replay finished, serving metrics until interrupted", "addr", server.Addr)
			return ServeMetricsUntilDone(ctx, server)
		},
	}

	cmd.Flags().String(flagConfig, "scenario.yaml", "Scenario file (yaml, toml or json)")
	cmd.Flags().String(flagLogLevel, "info", "Engine log level (trace, debug, info, warn, error)")
	cmd.Flags().Bool(flagMetrics, false, "Print the engine's prometheus metrics after the run")
	cmd.Flags().String(flagMetricsAddr, "", "Serve prometheus metrics on this address; after the replay the command keeps serving until interrupted")

	return cmd
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewLogger(w, log.LevelOption(lvl), log.ColorOption(false)), nil
}

// RunScenario executes every operation of sc in order, writing one line per
// step followed by the final state of every pool.
func RunScenario(w io.Writer, logger log.Logger, sc Scenario) error {
	env, err := newSimEnv(logger, sc.Params)
	if err != nil {
		return err
	}

	for _, acc := range sc.Accounts {
		coins, err := sdk.ParseCoinsNormalized(acc.Coins)
		if err != nil {
			return fmt.Errorf("account %q: %w", acc.Name, err)
		}
		if err := env.ledger.Fund(env.ctx, accountAddress(acc.Name), coins); err != nil {
			return fmt.Errorf("failed to fund %q: %w", acc.Name, err)
		}
	}

	for i, op := range sc.Operations {
		step := i + 1
		summary, opErr := env.apply(op)

		switch {
		case op.ExpectError != "" && opErr == nil:
			return fmt.Errorf("step %d %s: expected error containing %q, got success", step, op.Op, op.ExpectError)
		case op.ExpectError != "" && !strings.Contains(opErr.Error(), op.ExpectError):
			return fmt.Errorf("step %d %s: expected error containing %q: %w", step, op.Op, op.ExpectError, opErr)
		case op.ExpectError != "":
			fmt.Fprintf(w, "step %d %s: rejected as expected: %s\n", step, op.Op, opErr.Error())
		case opErr != nil:
			return fmt.Errorf("step %d %s: %w", step, op.Op, opErr)
		default:
			fmt.Fprintf(w, "step %d %s: %s\n", step, op.Op, summary)
		}

		if msg, broken := keeper.AllInvariants(*env.keeper)(env.ctx); broken {
			return fmt.Errorf("step %d %s: %w: %s", step, op.Op, types.ErrInvariantViolation, msg)
		}
	}

	pools, err := env.keeper.GetAllPools(env.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pools: %d\n", len(pools))
	for _, pool := range pools {
		fmt.Fprintf(w, "  %s\n", pool)
	}
	return nil
}

func (env *simEnv) apply(op Operation) (string, error) {
	key := types.NewPoolKey(op.AssetA, op.AssetB)

	switch op.Op {
	case OpCreate:
		token := op.LiquidityToken
		if token == "" {
			token = fmt.Sprintf("%s/%s-%s", types.ModuleName, key.AssetA, key.AssetB)
		}
		created, err := env.keeper.CreatePool(env.ctx, accountAddress(op.Account), op.AssetA, op.AssetB, token)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("created %s with liquidity token %s", created, token), nil

	case OpAdd:
		amounts, err := parseAmounts(op, "amount_a", "amount_b", "min_a", "min_b")
		if err != nil {
			return "", err
		}
		desiredA, desiredB, minA, minB := orient(op, key, amounts[0], amounts[1], amounts[2], amounts[3])
		a, b, shares, err := env.keeper.AddLiquidity(env.ctx, accountAddress(op.Account), key, desiredA, desiredB, minA, minB)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("deposited %s%s %s%s for %s shares", a, key.AssetA, b, key.AssetB, shares), nil

	case OpRemove:
		amounts, err := parseAmounts(op, "shares", "min_a", "min_b")
		if err != nil {
			return "", err
		}
		_, _, minA, minB := orient(op, key, math.ZeroInt(), math.ZeroInt(), amounts[1], amounts[2])
		a, b, err := env.keeper.RemoveLiquidity(env.ctx, accountAddress(op.Account), key, amounts[0], minA, minB)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("burned %s shares for %s%s %s%s", amounts[0], a, key.AssetA, b, key.AssetB), nil

	case OpSwap:
		amounts, err := parseAmounts(op, "amount_in", "min_out")
		if err != nil {
			return "", err
		}
		out, err := env.keeper.SwapExactIn(env.ctx, accountAddress(op.Account), key, op.AssetIn, amounts[0], amounts[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("swapped %s%s for %s%s", amounts[0], op.AssetIn, out, otherAsset(key, op.AssetIn)), nil

	case OpQuote:
		amounts, err := parseAmounts(op, "amount_in")
		if err != nil {
			return "", err
		}
		out, err := env.keeper.Quote(env.ctx, key, op.AssetIn, amounts[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%s quotes %s%s", amounts[0], op.AssetIn, out, otherAsset(key, op.AssetIn)), nil
	}

	return "", fmt.Errorf("unknown op %q", op.Op)
}

// parseAmounts decodes the named amount fields of op in order
func parseAmounts(op Operation, fields ...string) ([]math.Int, error) {
	raw := map[string]string{
		"amount_a":  op.AmountA,
		"amount_b":  op.AmountB,
		"min_a":     op.MinA,
		"min_b":     op.MinB,
		"shares":    op.Shares,
		"amount_in": op.AmountIn,
		"min_out":   op.MinOut,
	}
	out := make([]math.Int, len(fields))
	for i, field := range fields {
		v, err := parseAmount(field, raw[field])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// orient maps amounts given in the operation's asset order onto the pool's
// canonical order.
func orient(op Operation, key types.PoolKey, a, b, minA, minB math.Int) (math.Int, math.Int, math.Int, math.Int) {
	if op.AssetA == key.AssetA {
		return a, b, minA, minB
	}
	return b, a, minB, minA
}

func otherAsset(key types.PoolKey, asset string) string {
	if asset == key.AssetA {
		return key.AssetB
	}
	return key.AssetA
}
