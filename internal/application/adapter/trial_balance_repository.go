// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/domain/entity"
)

// TrialBalanceRepository defines the interface for imported trial balances.
type TrialBalanceRepository interface {
	// FindEligibleMonths returns, in ascending order, the months of year whose
	// trial balance status is eligible for validation.
	FindEligibleMonths(ctx context.Context, companyID uuid.UUID, year int) ([]int, error)

	// FindLines retrieves the trial balance lines of a single month.
	FindLines(ctx context.Context, companyID uuid.UUID, year, month int) ([]*entity.TrialBalanceLine, error)

	// FindByPeriod retrieves the trial balance header of a month.
	FindByPeriod(ctx context.Context, companyID uuid.UUID, year, month int) (*entity.TrialBalance, error)
}
