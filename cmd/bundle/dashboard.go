package main

import (
	"github.com/Veraticus/the-bundle-must-flow/internal/cli"
	"github.com/Veraticus/the-bundle-must-flow/internal/dashboard"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show best sellers, GMV per day and customer mix",
		Long: `Show the sales dashboard: the best selling items, gross merchandise value
per day for retail and member customers, and the share of line items per
customer type.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}

	cmd.Flags().IntP("top", "n", 15, "Number of best selling items to show")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
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

	top := appConfig.Dashboard.TopProducts
	retail := appConfig.Ingest.RetailCustomer

	writeLine(out, cli.FormatTitle("Best selling items"))
	writeLine(out, cli.RenderTopProducts(dashboard.TopProducts(records, top)))

	writeLine(out, cli.FormatTitle("GMV per day"))
	writeLine(out, cli.RenderGMV(dashboard.GMVByDay(records, retail)))

	writeLine(out, cli.FormatTitle("Customer type"))
	writeLine(out, cli.RenderShare(dashboard.CustomerShare(records, retail)))

	return nil
}
