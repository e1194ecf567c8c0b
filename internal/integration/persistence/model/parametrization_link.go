// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/domain/entity"
)

// ParametrizationLinkModel represents the parametrization_links table.
// A link with several codes is stored as one row per code sharing LinkID,
// so the (company_id, trial_balance_code) index keeps each code single-owned.
type ParametrizationLinkModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	LinkID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_parametrization_company_code,priority:1"`
	ChartAccountID   uuid.UUID `gorm:"type:uuid;not null;index"`
	TrialBalanceCode string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_parametrization_company_code,priority:2"`
	Position         int       `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the ParametrizationLinkModel.
func (ParametrizationLinkModel) TableName() string {
	return "parametrization_links"
}

// ParametrizationLinkRowsFromEntity splits a link into one row per code.
func ParametrizationLinkRowsFromEntity(link *entity.ParametrizationLink) []ParametrizationLinkModel {
	rows := make([]ParametrizationLinkModel, 0, len(link.TrialBalanceCodes))
	for i, code := range link.TrialBalanceCodes {
		rows = append(rows, ParametrizationLinkModel{
			ID:               uuid.New(),
			LinkID:           link.ID,
			CompanyID:        link.CompanyID,
			ChartAccountID:   link.ChartNodeID,
			TrialBalanceCode: code,
			Position:         i,
			CreatedAt:        link.CreatedAt,
			UpdatedAt:        link.UpdatedAt,
		})
	}
	return rows
}

// ParametrizationLinksToEntities groups rows back into links. Rows must be
// ordered by link and position; link order follows first appearance.
func ParametrizationLinksToEntities(rows []ParametrizationLinkModel) []*entity.ParametrizationLink {
	links := make([]*entity.ParametrizationLink, 0)
	byID := make(map[uuid.UUID]*entity.ParametrizationLink)
	for _, row := range rows {
		link, ok := byID[row.LinkID]
		if !ok {
			link = &entity.ParametrizationLink{
				ID:          row.LinkID,
				CompanyID:   row.CompanyID,
				ChartNodeID: row.ChartAccountID,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			}
			byID[row.LinkID] = link
			links = append(links, link)
		}
		link.TrialBalanceCodes = append(link.TrialBalanceCodes, row.TrialBalanceCode)
	}
	return links
}
