package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/census-approx/pkg/census"
)

var sumCmd = &cobra.Command{
	Use:   "sum value,moe [value,moe ...]",
	Short: "Total estimates and combine their margins of error",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		estimates, err := parseEstimates(args)
		if err != nil {
			return err
		}
		result, err := census.Sum(estimates...)
		if err != nil {
			return err
		}
		printEstimate(result)
		return nil
	},
}

var productCmd = &cobra.Command{
	Use:   "product value,moe value,moe",
	Short: "Multiply two estimates and approximate the margin of error",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		estimates, err := parseEstimates(args)
		if err != nil {
			return err
		}
		result, err := census.Product(estimates[0], estimates[1])
		if err != nil {
			return err
		}
		printEstimate(result)
		return nil
	},
}

var ratioCmd = &cobra.Command{
	Use:   "ratio numerator,moe denominator,moe",
	Short: "Divide two estimates when the numerator is not a subset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		estimates, err := parseEstimates(args)
		if err != nil {
			return err
		}
		result, err := census.Ratio(estimates[0], estimates[1])
		if err != nil {
			return err
		}
		printEstimate(result)
		return nil
	},
}

var proportionCmd = &cobra.Command{
	Use:   "proportion numerator,moe denominator,moe",
	Short: "Divide two estimates when the numerator is a subset of the denominator",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		estimates, err := parseEstimates(args)
		if err != nil {
			return err
		}
		result, err := census.Proportion(estimates[0], estimates[1])
		if err != nil {
			return err
		}
		printEstimate(result)
		return nil
	},
}

var percentChangeCmd = &cobra.Command{
	Use:   "percentchange before,moe after,moe",
	Short: "Percent change between two estimates, in percentage points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		estimates, err := parseEstimates(args)
		if err != nil {
			return err
		}
		result, err := census.PercentChange(estimates[0], estimates[1])
		if err != nil {
			return err
		}
		printEstimate(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sumCmd, productCmd, ratioCmd, proportionCmd, percentChangeCmd)
}
