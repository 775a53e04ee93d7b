package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "arcanad",
	Short: "Card influence engine for tarot spreads",
	Long: "Arcanad computes how the cards of a tarot spread modify each other's\n" +
		"meaning through a deterministic, explainable rule pipeline, and serves\n" +
		"the results over HTTP or on the command line.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(computeCmd)
	rootCmd.Version = version
}
