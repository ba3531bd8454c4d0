package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "boutique",
	Short:         "Boutique order and ledger API",
	Long:          "Boutique serves the order, payment and finance API and carries the operational commands around it.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(dbIndexCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(ledgerDriftCmd)
}
