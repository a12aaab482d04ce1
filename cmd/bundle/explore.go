package main

import (
	"github.com/Veraticus/the-bundle-must-flow/internal/basket"
	"github.com/Veraticus/the-bundle-must-flow/internal/common"
	"github.com/Veraticus/the-bundle-must-flow/internal/tui"
	"github.com/spf13/cobra"
)

func exploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore bundle recommendations interactively",
		Long: `Open an interactive explorer over the imported sales.

Use ← and → to change the minimum support, ↑ and ↓ to change the minimum
confidence and the number keys to toggle antecedent sizes. Every change
re-runs the miner; results for settings seen before are served from memory.`,
		Args: cobra.NoArgs,
		RunE: runExplore,
	}

	cmd.Flags().Float64("min-support", 0.2, "Starting minimum support")
	cmd.Flags().Float64("min-confidence", 0.6, "Starting minimum confidence")

	return cmd
}

func runExplore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	metric, err := basket.ParseMetric(appConfig.Bundle.Metric)
	if err != nil {
		return common.NewUserError("Unknown rule metric", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	matrix, err := loadMatrix(ctx, store)
	if err != nil {
		return err
	}

	miner := basket.NewCachedMiner(appConfig.Bundle.CacheTTL)
	defer miner.Close()

	return tui.Run(ctx,
		tui.WithData(matrix, miner),
		tui.WithThresholds(appConfig.Bundle.MinSupport, appConfig.Bundle.MinConfidence),
		tui.WithRuleMetric(metric, appConfig.Bundle.MinThreshold),
		tui.WithMaxLen(appConfig.Bundle.MaxLen),
	)
}
