// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrialBalanceStatus is the lifecycle stage of an imported trial balance.
type TrialBalanceStatus string

const (
	TrialBalanceStatusPending       TrialBalanceStatus = "pendente"
	TrialBalanceStatusParametrizing TrialBalanceStatus = "parametrizando"
	TrialBalanceStatusParametrized  TrialBalanceStatus = "parametrizado"
)

// IsValid reports whether the status is known.
func (s TrialBalanceStatus) IsValid() bool {
	switch s {
	case TrialBalanceStatusPending, TrialBalanceStatusParametrizing, TrialBalanceStatusParametrized:
		return true
	}
	return false
}

// IsEligibleForValidation reports whether the user has committed to mapping
// this trial balance, which is the only data the engine validates.
func (s TrialBalanceStatus) IsEligibleForValidation() bool {
	return s == TrialBalanceStatusParametrizing || s == TrialBalanceStatusParametrized
}

// EligibleTrialBalanceStatuses lists the statuses validated by the engine.
func EligibleTrialBalanceStatuses() []TrialBalanceStatus {
	return []TrialBalanceStatus{TrialBalanceStatusParametrized, TrialBalanceStatusParametrizing}
}

// TrialBalance is the header of a monthly trial balance ("balancete") import.
type TrialBalance struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Year      int
	Month     int
	Status    TrialBalanceStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTrialBalance creates a new TrialBalance entity in the pending stage.
func NewTrialBalance(companyID uuid.UUID, year, month int) *TrialBalance {
	now := time.Now().UTC()

	return &TrialBalance{
		ID:        uuid.New(),
		CompanyID: companyID,
		Year:      year,
		Month:     month,
		Status:    TrialBalanceStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TrialBalanceLine is one account row of a monthly trial balance.
type TrialBalanceLine struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	Year           int
	Month          int
	Code           string
	Name           string
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
}

// Movement returns the activity of the account in the period.
func (l *TrialBalanceLine) Movement() decimal.Decimal {
	return l.ClosingBalance.Sub(l.OpeningBalance)
}
