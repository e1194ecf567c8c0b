// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/application/adapter"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
)

// DeleteLinkInput represents the input for removing a link.
type DeleteLinkInput struct {
	CompanyID uuid.UUID
	LinkID    uuid.UUID
}

// DeleteLinkUseCase handles parametrization link removal.
type DeleteLinkUseCase struct {
	parametrizationRepo adapter.ParametrizationRepository
	cache               adapter.ValidationCache
}

// NewDeleteLinkUseCase creates a new DeleteLinkUseCase instance.
func NewDeleteLinkUseCase(parametrizationRepo adapter.ParametrizationRepository, cache adapter.ValidationCache) *DeleteLinkUseCase {
	return &DeleteLinkUseCase{
		parametrizationRepo: parametrizationRepo,
		cache:               cache,
	}
}

// Execute removes the link and drops the company's cached reports.
func (uc *DeleteLinkUseCase) Execute(ctx context.Context, input DeleteLinkInput) error {
	if input.CompanyID == uuid.Nil {
		return domainerror.NewParametrizationError(
			domainerror.ErrCodeCompanyRequired,
			"company id is required",
			domainerror.ErrCompanyRequired,
		)
	}

	if err := uc.parametrizationRepo.DeleteByID(ctx, input.CompanyID, input.LinkID); err != nil {
		if errors.Is(err, domainerror.ErrParametrizationLinkNotFound) {
			return domainerror.NewParametrizationError(
				domainerror.ErrCodeLinkNotFound,
				"parametrization link not found",
				domainerror.ErrParametrizationLinkNotFound,
			)
		}
		return fmt.Errorf("failed to delete parametrization link: %w", err)
	}

	invalidateCompany(ctx, uc.cache, input.CompanyID)
	return nil
}
