// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// RunValidationInput represents the input for a validation run.
type RunValidationInput struct {
	CompanyID uuid.UUID
	Year      int
	// SkipCache forces a fresh run even when a cached report exists.
	SkipCache bool
}

// ValidationSummary aggregates the outcome of a run.
type ValidationSummary struct {
	MonthsValidated        int
	MothersChecked         int
	Inconsistencies        int
	BalanceInconsistencies int
	// Warnings counts configuration gaps. They do not affect AllConsistent.
	Warnings      int
	AllConsistent bool
}

// RunValidationOutput represents the output of a validation run.
// Findings are ordered by month, then deepest level first, then code.
type RunValidationOutput struct {
	CompanyID       uuid.UUID
	Year            int
	Months          []int
	Findings        []valueobject.ValidationFinding
	BalanceFindings []valueobject.BalanceEquationFinding
	Warnings        []valueobject.ConfigurationWarning
	Summary         ValidationSummary
	Cached          bool
}

// RunValidationUseCase validates the parametrization of a company for every
// eligible month of a fiscal year.
type RunValidationUseCase struct {
	chartRepo           adapter.ChartOfAccountsRepository
	parametrizationRepo adapter.ParametrizationRepository
	trialBalanceRepo    adapter.TrialBalanceRepository
	cache               adapter.ValidationCache
	resolver            *valueobject.NatureResolver
	config              valueobject.ValidationConfig
}

// NewRunValidationUseCase creates a new RunValidationUseCase instance.
// cache may be nil.
func NewRunValidationUseCase(
	chartRepo adapter.ChartOfAccountsRepository,
	parametrizationRepo adapter.ParametrizationRepository,
	trialBalanceRepo adapter.TrialBalanceRepository,
	cache adapter.ValidationCache,
	config valueobject.ValidationConfig,
) *RunValidationUseCase {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &RunValidationUseCase{
		chartRepo:           chartRepo,
		parametrizationRepo: parametrizationRepo,
		trialBalanceRepo:    trialBalanceRepo,
		cache:               cache,
		resolver:            valueobject.NewNatureResolver(slog.Default()),
		config:              config,
	}
}

type monthResult struct {
	findings []valueobject.ValidationFinding
	balance  valueobject.BalanceEquationFinding
}

// Execute runs the validation. Any upstream failure aborts the whole run;
// partial results are never returned.
func (uc *RunValidationUseCase) Execute(ctx context.Context, input RunValidationInput) (*RunValidationOutput, error) {
	if err := validateCompanyYear(input.CompanyID, input.Year); err != nil {
		return nil, err
	}

	if uc.cache != nil && !input.SkipCache {
		report, ok, err := uc.cache.Get(ctx, input.CompanyID, input.Year)
		if err != nil {
			slog.Warn("Failed to read cached validation report",
				"error", err, "companyID", input.CompanyID, "year", input.Year)
		} else if ok {
			return outputFromReport(report, true), nil
		}
	}

	months, err := uc.trialBalanceRepo.FindEligibleMonths(ctx, input.CompanyID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible months: %w", err)
	}
	months = normalizeMonths(months)
	if len(months) == 0 {
		return outputFromReport(&adapter.ValidationReport{
			CompanyID: input.CompanyID,
			Year:      input.Year,
		}, false), nil
	}

	eng, err := loadEngine(ctx, uc.chartRepo, uc.parametrizationRepo, uc.resolver, uc.config, input.CompanyID)
	if err != nil {
		return nil, err
	}

	results := make([]monthResult, len(months))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.config.Workers)
	for i, month := range months {
		i, month := i, month
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines, err := uc.trialBalanceRepo.FindLines(gctx, input.CompanyID, input.Year, month)
			if err != nil {
				return fmt.Errorf("failed to load trial balance lines for %04d-%02d: %w", input.Year, month, err)
			}
			idx := IndexLines(lines)
			results[i] = monthResult{
				findings: eng.hierarchy.ValidateMonth(input.Year, month, idx),
				balance:  eng.balance.ValidateMonth(input.CompanyID, input.Year, month, idx),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &adapter.ValidationReport{
		CompanyID:       input.CompanyID,
		Year:            input.Year,
		Months:          months,
		Findings:        make([]valueobject.ValidationFinding, 0),
		BalanceFindings: make([]valueobject.BalanceEquationFinding, 0, len(months)),
		Warnings:        eng.warnings,
	}
	for _, r := range results {
		report.Findings = append(report.Findings, r.findings...)
		report.BalanceFindings = append(report.BalanceFindings, r.balance)
	}

	output := outputFromReport(report, false)
	slog.Info("Parametrization validation finished",
		"companyID", input.CompanyID,
		"year", input.Year,
		"months", output.Summary.MonthsValidated,
		"inconsistencies", output.Summary.Inconsistencies,
		"balanceInconsistencies", output.Summary.BalanceInconsistencies,
		"warnings", len(report.Warnings),
	)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, report, uc.config.CacheTTL); err != nil {
			slog.Warn("Failed to cache validation report",
				"error", err, "companyID", input.CompanyID, "year", input.Year)
		}
	}

	return output, nil
}

// RunValidationForYearsInput represents the input for a multi-year run.
type RunValidationForYearsInput struct {
	CompanyID uuid.UUID
	Years     []int
	SkipCache bool
}

// RunValidationForYearsOutput holds one run per year, in ascending year order.
type RunValidationForYearsOutput struct {
	Runs          []*RunValidationOutput
	AllConsistent bool
	Warnings      int
}

// ExecuteYears runs Execute for each distinct year in ascending order and
// stops at the first error.
func (uc *RunValidationUseCase) ExecuteYears(ctx context.Context, input RunValidationForYearsInput) (*RunValidationForYearsOutput, error) {
	years := append([]int(nil), input.Years...)
	sort.Ints(years)

	out := &RunValidationForYearsOutput{AllConsistent: true}
	for i, year := range years {
		if i > 0 && years[i-1] == year {
			continue
		}
		run, err := uc.Execute(ctx, RunValidationInput{
			CompanyID: input.CompanyID,
			Year:      year,
			SkipCache: input.SkipCache,
		})
		if err != nil {
			return nil, fmt.Errorf("validation of %d failed: %w", year, err)
		}
		out.Runs = append(out.Runs, run)
		out.AllConsistent = out.AllConsistent && run.Summary.AllConsistent
		out.Warnings += run.Summary.Warnings
	}
	return out, nil
}

// normalizeMonths sorts months ascending and drops duplicates and values
// outside 1..12.
func normalizeMonths(months []int) []int {
	out := make([]int, 0, len(months))
	seen := make(map[int]bool, len(months))
	for _, m := range months {
		if m < 1 || m > 12 || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

func outputFromReport(report *adapter.ValidationReport, cached bool) *RunValidationOutput {
	out := &RunValidationOutput{
		CompanyID:       report.CompanyID,
		Year:            report.Year,
		Months:          report.Months,
		Findings:        report.Findings,
		BalanceFindings: report.BalanceFindings,
		Warnings:        report.Warnings,
		Cached:          cached,
	}
	if out.Months == nil {
		out.Months = []int{}
	}
	if out.Findings == nil {
		out.Findings = []valueobject.ValidationFinding{}
	}
	if out.BalanceFindings == nil {
		out.BalanceFindings = []valueobject.BalanceEquationFinding{}
	}
	if out.Warnings == nil {
		out.Warnings = []valueobject.ConfigurationWarning{}
	}
	out.Summary = summarize(out)
	return out
}

func summarize(out *RunValidationOutput) ValidationSummary {
	s := ValidationSummary{
		MonthsValidated: len(out.Months),
		MothersChecked:  len(out.Findings),
		Warnings:        len(out.Warnings),
	}
	for _, f := range out.Findings {
		if !f.IsConsistent() {
			s.Inconsistencies++
		}
	}
	for _, b := range out.BalanceFindings {
		if !b.IsConsistent {
			s.BalanceInconsistencies++
		}
	}
	s.AllConsistent = s.Inconsistencies == 0 && s.BalanceInconsistencies == 0
	return s
}
