package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accounting-office/backend/internal/application/usecase/parametrization"
	"github.com/accounting-office/backend/internal/integration/entrypoint/dto"
)

func newStatementCommand() *cobra.Command {
	var companyID string
	var year int
	var month int
	var format string

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Print the parametrized statement of one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			company, err := parseCompanyID(companyID)
			if err != nil {
				return err
			}
			if err := checkFormat(format); err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			output, err := s.GetStatement.Execute(cmd.Context(), parametrization.GetStatementInput{
				CompanyID: company,
				Year:      year,
				Month:     month,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == formatJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(dto.ToStatementResponse(output)); err != nil {
					return fmt.Errorf("encoding statement: %w", err)
				}
				return nil
			}

			printInfof(w, "Company %s, %04d-%02d (%s)", output.CompanyID, output.Year, output.Month, output.Status)
			printWarnings(w, output.Warnings)
			if len(output.Lines) == 0 {
				printInfof(w, "No parametrized account has a value this month")
				return nil
			}
			renderStatement(w, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company ID (required)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().IntVar(&year, "year", 0, "fiscal year (required)")
	_ = cmd.MarkFlagRequired("year")
	cmd.Flags().IntVar(&month, "month", 0, "month, 1 to 12 (required)")
	_ = cmd.MarkFlagRequired("month")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or json")

	return cmd
}
