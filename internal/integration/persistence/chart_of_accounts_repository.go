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

// chartOfAccountsRepository implements the adapter.ChartOfAccountsRepository interface.
type chartOfAccountsRepository struct {
	db *gorm.DB
}

// NewChartOfAccountsRepository creates a new chart of accounts repository instance.
func NewChartOfAccountsRepository(db *gorm.DB) adapter.ChartOfAccountsRepository {
	return &chartOfAccountsRepository{
		db: db,
	}
}

// FindAll retrieves every chart account ordered by code.
func (r *chartOfAccountsRepository) FindAll(ctx context.Context) ([]*entity.ChartNode, error) {
	var models []model.ChartAccountModel
	result := r.db.WithContext(ctx).Order("code ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	nodes := make([]*entity.ChartNode, len(models))
	for i := range models {
		nodes[i] = models[i].ToEntity()
	}
	return nodes, nil
}

// FindByID retrieves a chart account by its ID.
func (r *chartOfAccountsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ChartNode, error) {
	var m model.ChartAccountModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrChartNodeNotFound
		}
		return nil, result.Error
	}
	return m.ToEntity(), nil
}

// Create stores a new chart account.
func (r *chartOfAccountsRepository) Create(ctx context.Context, node *entity.ChartNode) error {
	return r.db.WithContext(ctx).Create(model.ChartAccountFromEntity(node)).Error
}

// CreateBatch stores chart accounts in one transaction.
func (r *chartOfAccountsRepository) CreateBatch(ctx context.Context, nodes []*entity.ChartNode) error {
	if len(nodes) == 0 {
		return nil
	}
	models := make([]*model.ChartAccountModel, 0, len(nodes))
	for _, n := range nodes {
		models = append(models, model.ChartAccountFromEntity(n))
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, 100).Error
	})
}
