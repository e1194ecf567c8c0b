// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/integration/persistence/model"
)

// parametrizationRepository implements the adapter.ParametrizationRepository interface.
type parametrizationRepository struct {
	db *gorm.DB
}

// NewParametrizationRepository creates a new parametrization repository instance.
func NewParametrizationRepository(db *gorm.DB) adapter.ParametrizationRepository {
	return &parametrizationRepository{
		db: db,
	}
}

// FindByCompany retrieves all links of a company.
func (r *parametrizationRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.ParametrizationLink, error) {
	var rows []model.ParametrizationLinkModel
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Order("link_id ASC").
		Order("position ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return model.ParametrizationLinksToEntities(rows), nil
}

// FindCodeOwners returns the chart account owning each already-mapped code.
func (r *parametrizationRepository) FindCodeOwners(ctx context.Context, companyID uuid.UUID, codes []string) (map[string]uuid.UUID, error) {
	owners := make(map[string]uuid.UUID)
	if len(codes) == 0 {
		return owners, nil
	}

	var rows []model.ParametrizationLinkModel
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND trial_balance_code IN ?", companyID, codes).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		owners[row.TrialBalanceCode] = row.ChartAccountID
	}
	return owners, nil
}

// Create stores a link, one row per code, in a single transaction.
func (r *parametrizationRepository) Create(ctx context.Context, link *entity.ParametrizationLink) error {
	rows := model.ParametrizationLinkRowsFromEntity(link)
	if len(rows) == 0 {
		return domainerror.ErrEmptyTrialBalanceCodes
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// DeleteByID removes every row of a link owned by the company.
func (r *parametrizationRepository) DeleteByID(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND link_id = ?", companyID, id).
		Delete(&model.ParametrizationLinkModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrParametrizationLinkNotFound
	}
	return nil
}
