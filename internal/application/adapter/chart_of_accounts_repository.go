// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/domain/entity"
)

// ChartOfAccountsRepository defines the interface for the standard chart of accounts.
type ChartOfAccountsRepository interface {
	// FindAll retrieves the full catalog ordered by code.
	FindAll(ctx context.Context) ([]*entity.ChartNode, error)

	// FindByID retrieves a chart node by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ChartNode, error)

	// Create stores a new chart node.
	Create(ctx context.Context, node *entity.ChartNode) error

	// CreateBatch stores several chart nodes atomically.
	CreateBatch(ctx context.Context, nodes []*entity.ChartNode) error
}
