package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/census-approx/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "census-approx",
	Short: "Derive statistics from census estimates with propagated margins of error",
	Long: "Computes sums, ratios, proportions, products, percent changes, medians and " +
		"means from published U.S. Census Bureau estimates, propagating each figure's " +
		"margin of error through the derivation using the Bureau's formulas.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
