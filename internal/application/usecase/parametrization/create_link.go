// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
)

// CreateLinkInput represents the input for linking trial-balance codes to a
// chart node.
type CreateLinkInput struct {
	CompanyID         uuid.UUID
	ChartNodeID       uuid.UUID
	TrialBalanceCodes []string
}

// CreateLinkOutput represents the output of link creation.
type CreateLinkOutput struct {
	Link      *entity.ParametrizationLink
	ChartNode *entity.ChartNode
}

// CreateLinkUseCase handles parametrization link creation.
type CreateLinkUseCase struct {
	chartRepo           adapter.ChartOfAccountsRepository
	parametrizationRepo adapter.ParametrizationRepository
	cache               adapter.ValidationCache
}

// NewCreateLinkUseCase creates a new CreateLinkUseCase instance.
// cache may be nil.
func NewCreateLinkUseCase(
	chartRepo adapter.ChartOfAccountsRepository,
	parametrizationRepo adapter.ParametrizationRepository,
	cache adapter.ValidationCache,
) *CreateLinkUseCase {
	return &CreateLinkUseCase{
		chartRepo:           chartRepo,
		parametrizationRepo: parametrizationRepo,
		cache:               cache,
	}
}

// Execute creates the link. A code already mapped anywhere in the company is
// rejected, so every code keeps a single owner.
func (uc *CreateLinkUseCase) Execute(ctx context.Context, input CreateLinkInput) (*CreateLinkOutput, error) {
	if input.CompanyID == uuid.Nil {
		return nil, domainerror.NewParametrizationError(
			domainerror.ErrCodeCompanyRequired,
			"company id is required",
			domainerror.ErrCompanyRequired,
		)
	}
	if input.ChartNodeID == uuid.Nil {
		return nil, domainerror.NewParametrizationError(
			domainerror.ErrCodeMissingLinkFields,
			"chart node id is required",
			domainerror.ErrChartNodeNotFound,
		)
	}

	codes := entity.NormalizeCodes(input.TrialBalanceCodes)
	if len(codes) == 0 {
		return nil, domainerror.NewParametrizationError(
			domainerror.ErrCodeEmptyCodes,
			"at least one trial balance code is required",
			domainerror.ErrEmptyTrialBalanceCodes,
		)
	}

	node, err := uc.chartRepo.FindByID(ctx, input.ChartNodeID)
	if err != nil {
		if errors.Is(err, domainerror.ErrChartNodeNotFound) {
			return nil, domainerror.NewParametrizationError(
				domainerror.ErrCodeChartNodeNotFound,
				"chart node not found",
				domainerror.ErrChartNodeNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find chart node: %w", err)
	}

	owners, err := uc.parametrizationRepo.FindCodeOwners(ctx, input.CompanyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to check mapped codes: %w", err)
	}
	if len(owners) > 0 {
		taken := make([]string, 0, len(owners))
		for code := range owners {
			taken = append(taken, code)
		}
		sort.Strings(taken)
		return nil, domainerror.NewParametrizationError(
			domainerror.ErrCodeCodeAlreadyMapped,
			"trial balance codes already mapped: "+strings.Join(taken, ", "),
			domainerror.ErrTrialBalanceCodeAlreadyMapped,
		)
	}

	link := entity.NewParametrizationLink(input.CompanyID, node.ID, codes)
	if err := uc.parametrizationRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to create parametrization link: %w", err)
	}

	invalidateCompany(ctx, uc.cache, input.CompanyID)

	return &CreateLinkOutput{
		Link:      link,
		ChartNode: node,
	}, nil
}

// invalidateCompany drops cached reports after the mapping changed. Cache
// failures are logged; the stored mapping is already authoritative.
func invalidateCompany(ctx context.Context, cache adapter.ValidationCache, companyID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateCompany(ctx, companyID); err != nil {
		slog.Warn("Failed to invalidate cached validation reports",
			"error", err, "companyID", companyID)
	}
}
