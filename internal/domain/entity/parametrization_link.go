// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParametrizationLink maps one or more trial-balance codes of a company onto
// exactly one chart-of-accounts node.
type ParametrizationLink struct {
	ID                uuid.UUID
	CompanyID         uuid.UUID
	ChartNodeID       uuid.UUID
	TrialBalanceCodes []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewParametrizationLink creates a new ParametrizationLink entity.
// Codes are trimmed and de-duplicated, keeping their first occurrence order.
func NewParametrizationLink(companyID, chartNodeID uuid.UUID, codes []string) *ParametrizationLink {
	now := time.Now().UTC()

	return &ParametrizationLink{
		ID:                uuid.New(),
		CompanyID:         companyID,
		ChartNodeID:       chartNodeID,
		TrialBalanceCodes: NormalizeCodes(codes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// NormalizeCodes trims codes and drops blanks and repeats.
func NormalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
