package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/accounting-office/backend/internal/application/usecase/parametrization"
	"github.com/accounting-office/backend/internal/integration/entrypoint/dto"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func newRunCommand() *cobra.Command {
	var companyID string
	var year int
	var years []int
	var refresh bool
	var showAll bool
	var allowWarnings bool
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Validate the parametrization of a company for one or more fiscal years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			company, err := parseCompanyID(companyID)
			if err != nil {
				return err
			}
			if err := checkFormat(format); err != nil {
				return err
			}

			selected := append([]int(nil), years...)
			if year != 0 {
				selected = append(selected, year)
			}
			if len(selected) == 0 {
				return fmt.Errorf("at least one of --year or --years is required")
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			output, err := s.RunValidation.ExecuteYears(cmd.Context(), parametrization.RunValidationForYearsInput{
				CompanyID: company,
				Years:     selected,
				SkipCache: refresh,
			})
			if err != nil {
				return err
			}

			if format == formatJSON {
				if err := writeRunsJSON(cmd.OutOrStdout(), output.Runs); err != nil {
					return err
				}
			} else {
				for _, run := range output.Runs {
					writeRunTable(cmd.OutOrStdout(), run, showAll)
				}
			}

			if !output.AllConsistent {
				return ErrInconsistent
			}
			if output.Warnings > 0 && !allowWarnings {
				return ErrConfigurationWarnings
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company ID (required)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().IntVar(&year, "year", 0, "fiscal year to validate")
	cmd.Flags().IntSliceVar(&years, "years", nil, "comma-separated fiscal years to validate")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached reports")
	cmd.Flags().BoolVar(&showAll, "all", false, "list consistent findings too")
	cmd.Flags().BoolVar(&allowWarnings, "allow-warnings", false, "exit 0 when checks pass despite configuration warnings")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or json")

	return cmd
}

func writeRunsJSON(w io.Writer, runs []*parametrization.RunValidationOutput) error {
	resp := make([]dto.ValidationRunResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, dto.ToValidationRunResponse(run))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func writeRunTable(w io.Writer, run *parametrization.RunValidationOutput, showAll bool) {
	source := "fresh"
	if run.Cached {
		source = "cached"
	}
	printInfof(w, "Company %s, fiscal year %d: %d month(s) validated (%s)",
		run.CompanyID, run.Year, run.Summary.MonthsValidated, source)

	printWarnings(w, run.Warnings)
	if run.Summary.MonthsValidated == 0 {
		printInfof(w, "No parametrized trial balance for %d", run.Year)
		return
	}

	renderFindings(w, run.Findings, showAll)
	renderBalance(w, run.BalanceFindings)

	if run.Summary.AllConsistent && run.Summary.Warnings > 0 {
		printWarn(w, fmt.Sprintf("%d mother account check(s) consistent, but %d configuration warning(s) need attention",
			run.Summary.MothersChecked, run.Summary.Warnings))
		return
	}
	if run.Summary.AllConsistent {
		printSuccess(w, fmt.Sprintf("%d mother account check(s) consistent, balance equation holds",
			run.Summary.MothersChecked))
		return
	}
	printError(w, fmt.Sprintf("%d of %d mother account check(s) inconsistent, %d month(s) with an unbalanced equation",
		run.Summary.Inconsistencies, run.Summary.MothersChecked, run.Summary.BalanceInconsistencies))
}

func parseCompanyID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid company ID %q", raw)
	}
	return id, nil
}

func checkFormat(format string) error {
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("unknown format %q: use %s or %s", format, formatTable, formatJSON)
	}
	return nil
}
