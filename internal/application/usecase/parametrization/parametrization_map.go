// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accounting-office/backend/internal/domain/entity"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// ParametrizationMap resolves the trial-balance codes feeding each chart node
// of one company. A code feeds at most one node.
type ParametrizationMap struct {
	codesByNode map[uuid.UUID][]string
	nodeByCode  map[string]uuid.UUID
}

// BuildParametrizationMap indexes the links of a company against the catalog.
//
// Links pointing at nodes absent from the catalog are reported as warnings
// and excluded. When stored data maps one code to several nodes, the code is
// kept for the node with the lowest chart code and the others are reported.
func BuildParametrizationMap(catalog *Catalog, links []*entity.ParametrizationLink) (*ParametrizationMap, []valueobject.ConfigurationWarning) {
	m := &ParametrizationMap{
		codesByNode: make(map[uuid.UUID][]string),
		nodeByCode:  make(map[string]uuid.UUID),
	}

	type resolved struct {
		link *entity.ParametrizationLink
		node *entity.ChartNode
	}

	var warnings []valueobject.ConfigurationWarning
	known := make([]resolved, 0, len(links))
	for _, link := range links {
		if link == nil {
			continue
		}
		node, ok := catalog.ByID(link.ChartNodeID)
		if !ok {
			for _, code := range link.TrialBalanceCodes {
				warnings = append(warnings, valueobject.ConfigurationWarning{
					Kind:             valueobject.WarningUnknownChartNode,
					ChartNodeID:      link.ChartNodeID,
					TrialBalanceCode: code,
					Message:          fmt.Sprintf("trial balance code %s is linked to chart node %s, which is not in the chart of accounts", code, link.ChartNodeID),
				})
			}
			continue
		}
		known = append(known, resolved{link: link, node: node})
	}

	// Deterministic ownership regardless of repository order.
	sort.SliceStable(known, func(i, j int) bool {
		if c := entity.CompareCodes(known[i].node.Code, known[j].node.Code); c != 0 {
			return c < 0
		}
		return known[i].link.ID.String() < known[j].link.ID.String()
	})

	for _, r := range known {
		for _, code := range entity.NormalizeCodes(r.link.TrialBalanceCodes) {
			if owner, taken := m.nodeByCode[code]; taken {
				if owner == r.node.ID {
					continue
				}
				ownerNode, _ := catalog.ByID(owner)
				warnings = append(warnings, valueobject.ConfigurationWarning{
					Kind:             valueobject.WarningDuplicateCode,
					Code:             r.node.Code,
					ChartNodeID:      r.node.ID,
					TrialBalanceCode: code,
					Message:          fmt.Sprintf("trial balance code %s is already mapped to %s; ignored for %s", code, ownerNode.Code, r.node.Code),
				})
				continue
			}
			m.nodeByCode[code] = r.node.ID
			m.codesByNode[r.node.ID] = append(m.codesByNode[r.node.ID], code)
		}
	}

	return m, warnings
}

// CodesFor returns the trial-balance codes linked to a node.
func (m *ParametrizationMap) CodesFor(nodeID uuid.UUID) []string {
	return m.codesByNode[nodeID]
}

// IsMapped reports whether the node has at least one linked code.
func (m *ParametrizationMap) IsMapped(nodeID uuid.UUID) bool {
	return len(m.codesByNode[nodeID]) > 0
}

// RawAggregate sums the figures of the codes linked to a node, sign as
// imported. Codes absent from the month contribute zero.
func (m *ParametrizationMap) RawAggregate(nodeID uuid.UUID, lines PeriodLines, source valueobject.ValueSource) decimal.Decimal {
	total := decimal.Zero
	for _, code := range m.codesByNode[nodeID] {
		line, ok := lines[code]
		if !ok {
			continue
		}
		if source == valueobject.ValueSourceMovement {
			total = total.Add(line.Movement())
		} else {
			total = total.Add(line.ClosingBalance)
		}
	}
	return total
}

// PeriodLines indexes one month of trial-balance lines by code.
type PeriodLines map[string]*entity.TrialBalanceLine

// IndexLines builds the per-month index. Repeated codes are merged by summing
// their balances.
func IndexLines(lines []*entity.TrialBalanceLine) PeriodLines {
	idx := make(PeriodLines, len(lines))
	for _, l := range lines {
		if l == nil {
			continue
		}
		if existing, ok := idx[l.Code]; ok {
			merged := *existing
			merged.OpeningBalance = merged.OpeningBalance.Add(l.OpeningBalance)
			merged.ClosingBalance = merged.ClosingBalance.Add(l.ClosingBalance)
			idx[l.Code] = &merged
			continue
		}
		idx[l.Code] = l
	}
	return idx
}
