// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/application/adapter"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// engine bundles the per-company state shared by every month of a run.
// Nothing in it is mutated after loadEngine returns.
type engine struct {
	catalog    *Catalog
	pmap       *ParametrizationMap
	calculator *ValueCalculator
	hierarchy  *HierarchyValidator
	balance    *BalanceEquationValidator
	warnings   []valueobject.ConfigurationWarning
}

func loadEngine(
	ctx context.Context,
	chartRepo adapter.ChartOfAccountsRepository,
	parametrizationRepo adapter.ParametrizationRepository,
	resolver *valueobject.NatureResolver,
	config valueobject.ValidationConfig,
	companyID uuid.UUID,
) (*engine, error) {
	nodes, err := chartRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	if len(nodes) == 0 {
		return nil, domainerror.NewParametrizationError(
			domainerror.ErrCodeChartOfAccountsEmpty,
			"chart of accounts is empty",
			domainerror.ErrChartOfAccountsEmpty,
		)
	}

	links, err := parametrizationRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parametrization links: %w", err)
	}

	catalog, warnings := NewCatalog(nodes)
	pmap, mapWarnings := BuildParametrizationMap(catalog, links)
	warnings = append(warnings, mapWarnings...)

	warnings = append(warnings, missingRootWarnings(catalog)...)
	sortWarnings(warnings)

	calculator := NewValueCalculator(catalog, pmap, resolver, config.ValueSource)
	return &engine{
		catalog:    catalog,
		pmap:       pmap,
		calculator: calculator,
		hierarchy:  NewHierarchyValidator(catalog, calculator, config),
		balance:    NewBalanceEquationValidator(catalog, calculator, config),
		warnings:   warnings,
	}, nil
}

func missingRootWarnings(catalog *Catalog) []valueobject.ConfigurationWarning {
	var warnings []valueobject.ConfigurationWarning
	for _, code := range catalog.MissingRoots() {
		warnings = append(warnings, valueobject.ConfigurationWarning{
			Kind:    valueobject.WarningMissingRoot,
			Code:    code,
			Message: fmt.Sprintf("root account %s is not in the chart of accounts, balance equation cannot pass", code),
		})
	}
	return warnings
}

func sortWarnings(warnings []valueobject.ConfigurationWarning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		a, b := warnings[i], warnings[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		if a.TrialBalanceCode != b.TrialBalanceCode {
			return a.TrialBalanceCode < b.TrialBalanceCode
		}
		return a.ChartNodeID.String() < b.ChartNodeID.String()
	})
}
