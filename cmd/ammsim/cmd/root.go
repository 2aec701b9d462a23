package cmd

import (
	"github.com/spf13/cobra"
)

const (
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagMetrics     = "metrics"
	flagMetricsAddr = "metrics-addr"
)

// NewRootCmd creates the ammsim root command. It is called once in the main
// function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ammsim",
		Short: "Constant-product AMM simulator",
		Long: `ammsim drives the amm engine against an in-memory store. It replays
scenario files of pool creations, deposits, withdrawals and swaps, and quotes
swaps against arbitrary reserves.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
		},
	}

	rootCmd.AddCommand(
		RunCmd(),
		QuoteCmd(),
	)

	return rootCmd
}
