package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/basket"
	"github.com/Veraticus/the-bundle-must-flow/internal/cli"
	"github.com/Veraticus/the-bundle-must-flow/internal/common"
	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate product bundle recommendations",
		Long: `Mine frequent itemsets from the imported sales with FP-Growth and derive
association rules from them. Every customer is one transaction; an item is
present when the customer bought it at least once.

Rules are generated with --metric and --min-threshold and then filtered by
--min-support, --min-confidence and --antecedent-size.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().Float64("min-support", 0.2, "Minimum support of an itemset, in (0, 1]")
	cmd.Flags().Float64("min-confidence", 0.6, "Minimum confidence of a rule, in [0, 1]")
	cmd.Flags().String("metric", "lift", "Metric rules are generated with (support, confidence, lift, leverage, conviction, zhangs_metric)")
	cmd.Flags().Float64("min-threshold", 1.0, "Minimum value of --metric for a rule to be kept")
	cmd.Flags().Int("max-len", 0, "Maximum itemset size (0 means no limit)")
	cmd.Flags().IntSlice("antecedent-size", nil, "Only show rules whose antecedent has one of these sizes")
	cmd.Flags().Bool("itemsets", false, "Also list the frequent itemsets")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	minSupport := appConfig.Bundle.MinSupport
	minConfidence := appConfig.Bundle.MinConfidence
	minThreshold := appConfig.Bundle.MinThreshold
	maxLen := appConfig.Bundle.MaxLen

	sizes, err := cmd.Flags().GetIntSlice("antecedent-size")
	if err != nil {
		return err
	}
	showItemsets, err := cmd.Flags().GetBool("itemsets")
	if err != nil {
		return err
	}

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

	start := time.Now()
	itemsets, err := basket.Mine(matrix, minSupport, basket.WithMaxLen(maxLen))
	if err != nil {
		return miningError(err)
	}
	slog.Debug("Mined frequent itemsets",
		"transactions", matrix.NumTransactions(),
		"items", len(matrix.Columns),
		"itemsets", len(itemsets),
		"duration", time.Since(start))

	if len(itemsets) == 0 {
		writeLine(out, cli.FormatWarning(fmt.Sprintf(
			"No frequent itemsets found at min support %s. Try a lower --min-support.",
			cli.FormatPercent(minSupport))))
		return nil
	}

	if showItemsets {
		writeLine(out, cli.FormatTitle("Frequent itemsets"))
		writeLine(out, cli.RenderItemsets(itemsets))
	}

	rules, err := basket.GenerateRules(itemsets, metric, minThreshold)
	if err != nil {
		return miningError(err)
	}

	filter := basket.RuleFilter{
		AntecedentSizes: sizes,
		MinSupport:      minSupport,
		MinConfidence:   minConfidence,
	}
	visible := filter.Apply(rules)
	basket.SortRules(visible, metric)

	if len(visible) == 0 {
		writeLine(out, cli.FormatWarning(fmt.Sprintf(
			"Found %s frequent itemsets but no rule passes %s >= %g and confidence >= %s.",
			cli.FormatCount(len(itemsets)), metric, minThreshold, cli.FormatPercent(minConfidence))))
		return nil
	}

	writeLine(out, cli.FormatTitle("Bundle recommendations"))
	writeLine(out, cli.RenderRules(visible))
	writeLine(out, cli.SubtleStyle.Render(fmt.Sprintf("%s of %s rules from %s transactions",
		cli.FormatCount(len(visible)), cli.FormatCount(len(rules)), cli.FormatCount(matrix.NumTransactions()))))

	return nil
}

// miningError maps basket errors to messages for the user.
func miningError(err error) error {
	switch {
	case errors.Is(err, basket.ErrInvalidParameter):
		return common.NewUserError("Invalid mining parameters", err)
	case errors.Is(err, basket.ErrUnsupportedMetric):
		return common.NewUserError("Unknown rule metric", err)
	case errors.Is(err, basket.ErrEmptyInput):
		return common.NewUserError("No transactions to mine", err)
	default:
		return fmt.Errorf("mining failed: %w", err)
	}
}
