// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accounting-office/backend/internal/domain/entity"
)

// TrialBalanceModel represents the trial_balances table in the database.
type TrialBalanceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_trial_balances_period,priority:1"`
	Year      int       `gorm:"not null;uniqueIndex:idx_trial_balances_period,priority:2"`
	Month     int       `gorm:"not null;uniqueIndex:idx_trial_balances_period,priority:3"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pendente';index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the TrialBalanceModel.
func (TrialBalanceModel) TableName() string {
	return "trial_balances"
}

// ToEntity converts a TrialBalanceModel to a domain TrialBalance entity.
func (m *TrialBalanceModel) ToEntity() *entity.TrialBalance {
	return &entity.TrialBalance{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Year:      m.Year,
		Month:     m.Month,
		Status:    entity.TrialBalanceStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TrialBalanceFromEntity creates a TrialBalanceModel from a domain TrialBalance entity.
func TrialBalanceFromEntity(tb *entity.TrialBalance) *TrialBalanceModel {
	return &TrialBalanceModel{
		ID:        tb.ID,
		CompanyID: tb.CompanyID,
		Year:      tb.Year,
		Month:     tb.Month,
		Status:    string(tb.Status),
		CreatedAt: tb.CreatedAt,
		UpdatedAt: tb.UpdatedAt,
	}
}

// TrialBalanceLineModel represents the trial_balance_lines table in the database.
type TrialBalanceLineModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_trial_balance_lines_period,priority:1"`
	Year           int             `gorm:"not null;index:idx_trial_balance_lines_period,priority:2"`
	Month          int             `gorm:"not null;index:idx_trial_balance_lines_period,priority:3"`
	Code           string          `gorm:"type:varchar(64);not null"`
	Name           string          `gorm:"type:varchar(255)"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	ClosingBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TrialBalanceLineModel.
func (TrialBalanceLineModel) TableName() string {
	return "trial_balance_lines"
}

// ToEntity converts a TrialBalanceLineModel to a domain TrialBalanceLine entity.
func (m *TrialBalanceLineModel) ToEntity() *entity.TrialBalanceLine {
	return &entity.TrialBalanceLine{
		ID:             m.ID,
		CompanyID:      m.CompanyID,
		Year:           m.Year,
		Month:          m.Month,
		Code:           m.Code,
		Name:           m.Name,
		OpeningBalance: m.OpeningBalance,
		ClosingBalance: m.ClosingBalance,
	}
}

// TrialBalanceLineFromEntity creates a TrialBalanceLineModel from a domain TrialBalanceLine entity.
func TrialBalanceLineFromEntity(line *entity.TrialBalanceLine) *TrialBalanceLineModel {
	id := line.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &TrialBalanceLineModel{
		ID:             id,
		CompanyID:      line.CompanyID,
		Year:           line.Year,
		Month:          line.Month,
		Code:           line.Code,
		Name:           line.Name,
		OpeningBalance: line.OpeningBalance,
		ClosingBalance: line.ClosingBalance,
		CreatedAt:      time.Now().UTC(),
	}
}
