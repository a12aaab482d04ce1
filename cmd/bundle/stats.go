package main

import (
	"fmt"

	"github.com/Veraticus/the-bundle-must-flow/internal/cli"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show what has been imported",
		Long: `Show the number of stored sales, customers and items together with the
history of imported files.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	records, err := loadSales(ctx, store)
	if err != nil {
		return err
	}

	customers := make(map[string]struct{})
	items := make(map[string]struct{})
	first, last := records[0].Date, records[0].Date
	for i := range records {
		customers[records[i].Customer] = struct{}{}
		items[records[i].ItemKey()] = struct{}{}
		if records[i].Date.Before(first) {
			first = records[i].Date
		}
		if records[i].Date.After(last) {
			last = records[i].Date
		}
	}

	batches, err := store.ListImportBatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to list imports: %w", err)
	}

	writeLine(out, cli.FormatTitle("Sales overview"))
	writef(out, "Sales:     %s\n", cli.FormatCount(len(records)))
	writef(out, "Customers: %s\n", cli.FormatCount(len(customers)))
	writef(out, "Items:     %s\n", cli.FormatCount(len(items)))
	writef(out, "Period:    %s - %s\n\n", cli.FormatDay(first), cli.FormatDay(last))
	writeLine(out, cli.RenderBatches(batches))

	return nil
}
