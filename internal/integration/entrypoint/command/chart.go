package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/accounting-office/backend/internal/application/usecase/parametrization"
	"github.com/accounting-office/backend/internal/integration/adapters"
)

func newChartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Manage the shared chart of accounts",
	}
	cmd.AddCommand(newChartImportCommand())
	return cmd
}

func newChartImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Add chart-of-accounts nodes from a CSV file",
		Long: "Add chart-of-accounts nodes from a CSV file with the header\n" +
			"  " + adapters.ChartCSVHeader + "\n" +
			"Codes already in the chart are skipped, never updated.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening chart file: %w", err)
			}
			defer f.Close()

			nodes, err := adapters.ReadChartNodes(f)
			if err != nil {
				return err
			}
			if len(nodes) == 0 {
				return fmt.Errorf("%s has no chart nodes", args[0])
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			output, err := s.ImportChart.Execute(cmd.Context(), parametrization.ImportChartInput{
				Nodes:  nodes,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printWarnings(w, output.Warnings)
			if len(output.Skipped) > 0 {
				printInfof(w, "Skipped %d existing code(s): %s", len(output.Skipped), strings.Join(output.Skipped, ", "))
			}
			if dryRun {
				printInfof(w, "Dry run: %d node(s) would be created", len(output.Created))
				return nil
			}
			printSuccess(w, fmt.Sprintf("Created %d chart node(s)", len(output.Created)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and report without storing")

	return cmd
}
