package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paw-chain/pawamm/x/amm/types"
)

const flagFeeBps = "fee-bps"

// QuoteCmd prices an exact-in swap against the given reserves without any state
func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [amount-in] [reserve-in] [reserve-out]",
		Short: "Quote an exact-in swap against the given reserves",
		Long: `Quote an exact-in swap against the given reserves.

Example:
  ammsim quote 100 1000 1000
  ammsim quote 100000 1000000 1000000 --fee-bps 30`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := parseAmount("amount-in", args[0])
			if err != nil {
				return err
			}
			reserveIn, err := parseAmount("reserve-in", args[1])
			if err != nil {
				return err
			}
			reserveOut, err := parseAmount("reserve-out", args[2])
			if err != nil {
				return err
			}
			feeBps, err := cmd.Flags().GetUint32(flagFeeBps)
			if err != nil {
				return err
			}
			if err := types.NewParams(feeBps, 0).Validate(); err != nil {
				return err
			}

			out, err := types.QuoteExactIn(amountIn, reserveIn, reserveOut, feeBps)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}

	cmd.Flags().Uint32(flagFeeBps, 0, "Swap fee in basis points")

	return cmd
}
