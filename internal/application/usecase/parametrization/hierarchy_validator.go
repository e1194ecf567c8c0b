// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// HierarchyValidator checks that every mother node's parametrized value
// matches the sum of its direct children.
type HierarchyValidator struct {
	catalog    *Catalog
	calculator *ValueCalculator
	config     valueobject.ValidationConfig
}

// NewHierarchyValidator creates a new HierarchyValidator instance.
func NewHierarchyValidator(catalog *Catalog, calculator *ValueCalculator, config valueobject.ValidationConfig) *HierarchyValidator {
	return &HierarchyValidator{
		catalog:    catalog,
		calculator: calculator,
		config:     config,
	}
}

// ValidateMonth emits one finding per mother node, deepest level first.
// Leaves never produce a finding.
func (v *HierarchyValidator) ValidateMonth(year, month int, lines PeriodLines) []valueobject.ValidationFinding {
	mothers := v.catalog.Mothers()
	findings := make([]valueobject.ValidationFinding, 0, len(mothers))

	for _, node := range mothers {
		children := v.calculator.Contributions(node, lines)
		valuation := v.calculator.Valuate(node, lines)

		diff := valuation.ParametrizedValue.Sub(valuation.CalculatedValue).Abs()
		status := valueobject.FindingStatusConsistent
		if !v.config.IsWithinTolerance(valuation.ParametrizedValue, valuation.CalculatedValue) {
			status = valueobject.FindingStatusInconsistent
		}

		findings = append(findings, valueobject.ValidationFinding{
			ChartNodeID:        node.ID,
			Code:               node.Code,
			Name:               node.Name,
			Level:              node.Level(),
			Year:               year,
			Month:              month,
			Nature:             valuation.Nature,
			ParametrizedValue:  valuation.ParametrizedValue,
			CalculatedValue:    valuation.CalculatedValue,
			AbsoluteDifference: diff,
			Status:             status,
			Children:           children,
		})
	}

	return findings
}
