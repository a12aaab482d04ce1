package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/cli"
	"github.com/Veraticus/the-bundle-must-flow/internal/common"
	"github.com/Veraticus/the-bundle-must-flow/internal/ingest"
	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// maxReportedRejections bounds how many rejected rows are listed per file.
const maxReportedRejections = 5

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import sales from Excel or CSV exports",
		Long: `Import point-of-sale line items from .xlsx or .csv files.

Each file needs the columns date, customer, item_name, unit, qty and total_price.
Rows with a zero quantity are dropped, quantities are rounded, unit and customer
aliases are normalised and every row is validated. Rows that were imported
before are skipped automatically.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")
	cmd.Flags().Bool("replace", false, "Remove previously imported sales first")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	replace, err := cmd.Flags().GetBool("replace")
	if err != nil {
		return err
	}

	results, err := ingest.ReadFilesWithLimit(ctx, args, appConfig.Ingest.Workers)
	if err != nil {
		return common.NewUserError("Failed to read sales files", err)
	}

	cleaner := ingest.NewCleaner(
		mergeAliases(ingest.DefaultUnitAliases(), appConfig.Ingest.UnitAliases),
		mergeAliases(ingest.DefaultCustomerAliases(), appConfig.Ingest.CustomerAliases),
	)

	type cleanedFile struct {
		result *ingest.CleanResult
		path   string
		stats  ingest.Statistics
	}
	cleaned := make([]cleanedFile, 0, len(results))

	bar := cli.NewProgressBar(out, len(results), "Cleaning files...")
	for _, file := range results {
		stats := ingest.ComputeStatistics(file.Rows)
		res := cleaner.Clean(file.Rows)
		cleaned = append(cleaned, cleanedFile{path: file.Path, result: res, stats: stats})

		slog.Debug("Cleaned file",
			"path", file.Path,
			"rows", stats.Rows,
			"records", len(res.Records),
			"rejected", len(res.Rejected),
			"dropped_zero_qty", res.DroppedZeros)
		cli.Advance(bar, 1)
	}

	total := 0
	for _, file := range cleaned {
		total += len(file.result.Records)
	}

	for _, file := range cleaned {
		writeLine(out, cli.FormatTitle(filepath.Base(file.path)))
		writeLine(out, cli.RenderStatistics(file.stats))
		if file.stats.CleanedPerfectly() {
			writeLine(out, cli.FormatSuccess("No missing cells or duplicate rows"))
		}
		reportCleaning(out, file.result)
	}

	if total == 0 {
		return common.NewUserError("Nothing to import", common.ErrNoValidRows)
	}

	if dryRun {
		writeLine(out, cli.FormatInfo(fmt.Sprintf("Dry run: %s sales would be imported", cli.FormatCount(total))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	if replace {
		if err := store.ClearSales(ctx); err != nil {
			return fmt.Errorf("failed to clear sales: %w", err)
		}
		slog.Info("Removed previously imported sales")
	}

	imported := 0
	for _, file := range cleaned {
		if len(file.result.Records) == 0 {
			continue
		}

		batch := &model.ImportBatch{
			ID:         uuid.NewString(),
			Source:     filepath.Base(file.path),
			ImportedAt: time.Now(),
		}
		n, err := store.SaveSales(ctx, batch, file.result.Records)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("Failed to save sales from %s", file.path), err)
		}
		imported += n

		skipped := len(file.result.Records) - n
		writeLine(out, cli.FormatSuccess(fmt.Sprintf("%s: imported %s sales, %s already present",
			batch.Source, cli.FormatCount(n), cli.FormatCount(skipped))))
	}

	slog.Info("Import complete", "files", len(cleaned), "imported", imported)
	return nil
}

func reportCleaning(out io.Writer, res *ingest.CleanResult) {
	writef(out, "%s valid rows, %s dropped with zero quantity, %s rejected\n",
		cli.FormatCount(len(res.Records)),
		cli.FormatCount(res.DroppedZeros),
		cli.FormatCount(len(res.Rejected)))

	for i, rej := range res.Rejected {
		if i == maxReportedRejections {
			writeLine(out, cli.SubtleStyle.Render(fmt.Sprintf("  ... and %d more", len(res.Rejected)-i)))
			break
		}
		writeLine(out, cli.FormatWarning(fmt.Sprintf("line %d: %s", rej.Line, rej.Reason)))
	}
}

// mergeAliases layers configured aliases over the built-in ones. Keys are
// compared case-insensitively since viper lowercases them.
func mergeAliases(defaults, configured map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(configured))
	for k, v := range defaults {
		merged[strings.ToUpper(k)] = v
	}
	for k, v := range configured {
		merged[strings.ToUpper(k)] = v
	}
	return merged
}
