package main

import (
	"os"

	"github.com/paw-chain/pawamm/cmd/ammsim/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
