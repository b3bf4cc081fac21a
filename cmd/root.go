package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-backtest",
	Short: "Trading strategy backtesting and risk analytics",
}

func Execute() error {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(demoCmd)
	return rootCmd.Execute()
}
