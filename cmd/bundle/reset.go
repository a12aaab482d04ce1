package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/Veraticus/the-bundle-must-flow/internal/cli"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove all imported sales",
		Long: `Reset removes every imported sale and the import history so a new set of
files can be uploaded.

This is a destructive operation.`,
		Args: cobra.NoArgs,
		RunE: runReset,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	count, err := store.CountSales(ctx)
	if err != nil {
		return fmt.Errorf("failed to count sales: %w", err)
	}

	if count == 0 {
		writeLine(out, "No sales found. Nothing to reset.")
		return nil
	}

	// Confirm with user unless --force is used
	if !force {
		writef(out, "This will delete %s imported sales.\n", cli.FormatCount(count))
		writef(out, "\nAre you sure you want to continue? [y/N]: ")

		response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && response == "" {
			return fmt.Errorf("failed to read input: %w", err)
		}
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			writeLine(out, "Reset canceled.")
			return nil
		}
	}

	if err := store.ClearSales(ctx); err != nil {
		return fmt.Errorf("failed to clear sales: %w", err)
	}

	writeLine(out, cli.FormatSuccess(fmt.Sprintf("Successfully removed %s sales", cli.FormatCount(count))))
	writeLine(out, "\nImport a new file with 'bundle import FILE'.")

	return nil
}
