// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/integration/persistence/model"
)

// trialBalanceRepository implements the adapter.TrialBalanceRepository interface.
type trialBalanceRepository struct {
	db *gorm.DB
}

// NewTrialBalanceRepository creates a new trial balance repository instance.
func NewTrialBalanceRepository(db *gorm.DB) adapter.TrialBalanceRepository {
	return &trialBalanceRepository{
		db: db,
	}
}

// FindEligibleMonths returns the months of a year ready for validation.
func (r *trialBalanceRepository) FindEligibleMonths(ctx context.Context, companyID uuid.UUID, year int) ([]int, error) {
	statuses := entity.EligibleTrialBalanceStatuses()
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	var months []int
	result := r.db.WithContext(ctx).
		Model(&model.TrialBalanceModel{}).
		Where("company_id = ? AND year = ? AND status IN ?", companyID, year, values).
		Order("month ASC").
		Pluck("month", &months)
	if result.Error != nil {
		return nil, result.Error
	}
	return months, nil
}

// FindLines retrieves the lines of a single month ordered by code.
func (r *trialBalanceRepository) FindLines(ctx context.Context, companyID uuid.UUID, year, month int) ([]*entity.TrialBalanceLine, error) {
	var models []model.TrialBalanceLineModel
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND year = ? AND month = ?", companyID, year, month).
		Order("code ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	lines := make([]*entity.TrialBalanceLine, len(models))
	for i := range models {
		lines[i] = models[i].ToEntity()
	}
	return lines, nil
}

// FindByPeriod retrieves the trial balance header of a month.
func (r *trialBalanceRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, year, month int) (*entity.TrialBalance, error) {
	var m model.TrialBalanceModel
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND year = ? AND month = ?", companyID, year, month).
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTrialBalanceNotFound
		}
		return nil, result.Error
	}
	return m.ToEntity(), nil
}
