// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/domain/entity"
)

// ParametrizationRepository defines the interface for parametrization link persistence.
type ParametrizationRepository interface {
	// FindByCompany retrieves all links of a company.
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.ParametrizationLink, error)

	// FindCodeOwners returns, for each given code already mapped in the company,
	// the chart node ID it is mapped to.
	FindCodeOwners(ctx context.Context, companyID uuid.UUID, codes []string) (map[string]uuid.UUID, error)

	// Create stores a new link.
	Create(ctx context.Context, link *entity.ParametrizationLink) error

	// DeleteByID removes a link of a company.
	DeleteByID(ctx context.Context, companyID, id uuid.UUID) error
}
