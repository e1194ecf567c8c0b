// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// ImportChartInput represents the input for importing chart-of-accounts nodes.
type ImportChartInput struct {
	Nodes []*entity.ChartNode
	// DryRun validates and reports without storing anything.
	DryRun bool
}

// ImportChartOutput represents the output of a chart import.
type ImportChartOutput struct {
	Created []*entity.ChartNode
	// Skipped lists codes already present in the catalog.
	Skipped []string
	// Warnings are the configuration warnings of the resulting catalog.
	Warnings []valueobject.ConfigurationWarning
}

// ImportChartUseCase adds nodes to the shared chart of accounts.
type ImportChartUseCase struct {
	chartRepo adapter.ChartOfAccountsRepository
	cache     adapter.ValidationCache
}

// NewImportChartUseCase creates a new ImportChartUseCase instance.
// cache may be nil.
func NewImportChartUseCase(chartRepo adapter.ChartOfAccountsRepository, cache adapter.ValidationCache) *ImportChartUseCase {
	return &ImportChartUseCase{
		chartRepo: chartRepo,
		cache:     cache,
	}
}

// Execute validates every node before storing any. Existing codes are
// skipped, never updated.
func (uc *ImportChartUseCase) Execute(ctx context.Context, input ImportChartInput) (*ImportChartOutput, error) {
	seen := make(map[string]struct{}, len(input.Nodes))
	for i, n := range input.Nodes {
		if err := validateImportedNode(n); err != nil {
			return nil, invalidChartNode(fmt.Sprintf("row %d: %s", i+1, err))
		}
		if _, dup := seen[n.Code]; dup {
			return nil, invalidChartNode(fmt.Sprintf("row %d: code %s appears more than once", i+1, n.Code))
		}
		seen[n.Code] = struct{}{}
	}

	existing, err := uc.chartRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	existingCodes := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		existingCodes[n.Code] = struct{}{}
	}

	out := &ImportChartOutput{
		Created: make([]*entity.ChartNode, 0, len(input.Nodes)),
		Skipped: make([]string, 0),
	}
	for _, n := range input.Nodes {
		if _, ok := existingCodes[n.Code]; ok {
			out.Skipped = append(out.Skipped, n.Code)
			continue
		}
		out.Created = append(out.Created, n)
	}
	sort.SliceStable(out.Created, func(i, j int) bool {
		return entity.CompareCodes(out.Created[i].Code, out.Created[j].Code) < 0
	})
	sort.SliceStable(out.Skipped, func(i, j int) bool {
		return entity.CompareCodes(out.Skipped[i], out.Skipped[j]) < 0
	})

	merged := make([]*entity.ChartNode, 0, len(existing)+len(out.Created))
	merged = append(merged, existing...)
	merged = append(merged, out.Created...)
	catalog, warnings := NewCatalog(merged)
	warnings = append(warnings, missingRootWarnings(catalog)...)
	sortWarnings(warnings)
	out.Warnings = warnings

	if input.DryRun || len(out.Created) == 0 {
		return out, nil
	}

	if err := uc.chartRepo.CreateBatch(ctx, out.Created); err != nil {
		return nil, fmt.Errorf("failed to store chart nodes: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateAll(ctx); err != nil {
			slog.Warn("Failed to invalidate cached validation reports", "error", err)
		}
	}

	slog.Info("Chart of accounts imported",
		"created", len(out.Created),
		"skipped", len(out.Skipped),
		"warnings", len(out.Warnings),
	)
	return out, nil
}

func validateImportedNode(n *entity.ChartNode) error {
	if n == nil {
		return fmt.Errorf("node is empty")
	}
	if !entity.IsValidCode(n.Code) {
		return fmt.Errorf("invalid code %q", n.Code)
	}
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("code %s has no name", n.Code)
	}
	if !n.BusinessType.IsValid() {
		return fmt.Errorf("code %s has unknown business type %q", n.Code, n.BusinessType)
	}
	return nil
}

func invalidChartNode(message string) error {
	return domainerror.NewParametrizationError(
		domainerror.ErrCodeInvalidChartNode,
		message,
		domainerror.ErrInvalidChartNode,
	)
}
