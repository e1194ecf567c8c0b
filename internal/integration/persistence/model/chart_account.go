// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/domain/entity"
)

// ChartAccountModel represents the chart_accounts table in the database.
type ChartAccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code         string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(255);not null"`
	BusinessType string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the ChartAccountModel.
func (ChartAccountModel) TableName() string {
	return "chart_accounts"
}

// ToEntity converts a ChartAccountModel to a domain ChartNode entity.
func (m *ChartAccountModel) ToEntity() *entity.ChartNode {
	return &entity.ChartNode{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		BusinessType: entity.BusinessType(m.BusinessType),
	}
}

// ChartAccountFromEntity creates a ChartAccountModel from a domain ChartNode entity.
func ChartAccountFromEntity(node *entity.ChartNode) *ChartAccountModel {
	now := time.Now().UTC()
	return &ChartAccountModel{
		ID:           node.ID,
		Code:         node.Code,
		Name:         node.Name,
		BusinessType: string(node.BusinessType),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
