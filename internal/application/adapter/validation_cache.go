// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// ValidationReport is the cacheable result of a validation run.
type ValidationReport struct {
	CompanyID       uuid.UUID
	Year            int
	Months          []int
	Findings        []valueobject.ValidationFinding
	BalanceFindings []valueobject.BalanceEquationFinding
	Warnings        []valueobject.ConfigurationWarning
}

// ValidationCache defines the interface for an externally owned result cache.
type ValidationCache interface {
	// Get returns the cached report for a company and year, if present.
	Get(ctx context.Context, companyID uuid.UUID, year int) (*ValidationReport, bool, error)

	// Set stores a report for the given time to live.
	Set(ctx context.Context, report *ValidationReport, ttl time.Duration) error

	// InvalidateCompany drops every cached report of a company.
	InvalidateCompany(ctx context.Context, companyID uuid.UUID) error

	// InvalidateAll drops every cached report, used when the shared chart of
	// accounts changes.
	InvalidateAll(ctx context.Context) error
}
