// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"

	"github.com/google/uuid"
)

// BusinessType represents the accounting class of a chart-of-accounts node.
type BusinessType string

const (
	BusinessTypeAsset     BusinessType = "asset"
	BusinessTypeLiability BusinessType = "liability"
	BusinessTypeEquity    BusinessType = "equity"
	BusinessTypeRevenue   BusinessType = "revenue"
	BusinessTypeExpense   BusinessType = "expense"
	BusinessTypeCost      BusinessType = "cost"
)

// IsValid reports whether the business type is one of the known types.
func (t BusinessType) IsValid() bool {
	switch t {
	case BusinessTypeAsset, BusinessTypeLiability, BusinessTypeEquity,
		BusinessTypeRevenue, BusinessTypeExpense, BusinessTypeCost:
		return true
	}
	return false
}

// Root codes of the standard chart of accounts.
const (
	RootCodeAssets           = "1"
	RootCodeLiabilities      = "2"
	RootCodeRevenues         = "3"
	RootCodeCostsAndExpenses = "4"

	// CodeEquity is the equity group under liabilities.
	CodeEquity = "2.3"
	// CodeRetainedEarnings is the "Lucros/Prejuízos Acumulados" node.
	CodeRetainedEarnings = "2.3.3"
	// CodeRevenueDeductions is the "Deduções da Receita Bruta" contra-revenue node.
	CodeRevenueDeductions = "3.1.2"
)

const codeSeparator = "."

// ChartNode is a node of the standard chart of accounts.
// The hierarchy is derived from the dot-separated code, never stored.
type ChartNode struct {
	ID           uuid.UUID
	Code         string
	Name         string
	BusinessType BusinessType
}

// NewChartNode creates a new ChartNode entity.
func NewChartNode(code, name string, businessType BusinessType) *ChartNode {
	return &ChartNode{
		ID:           uuid.New(),
		Code:         strings.TrimSpace(code),
		Name:         name,
		BusinessType: businessType,
	}
}

// Level returns the depth of the node (1 for roots).
func (n *ChartNode) Level() int {
	return CodeLevel(n.Code)
}

// ParentCode returns the code of the node's parent, or "" for a root.
func (n *ChartNode) ParentCode() string {
	return ParentCode(n.Code)
}

// CodeLevel returns the number of dot segments of a code.
func CodeLevel(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, codeSeparator) + 1
}

// ParentCode strips the last segment of a code. Level-1 codes have no parent.
func ParentCode(code string) string {
	idx := strings.LastIndex(code, codeSeparator)
	if idx < 0 {
		return ""
	}
	return code[:idx]
}

// IsDirectChildOf reports whether child sits exactly one level below parent.
func IsDirectChildOf(child, parent string) bool {
	return parent != "" && ParentCode(child) == parent
}

// HasCodePrefix reports whether code equals prefix or descends from it,
// comparing whole segments ("3" matches "3.1" but not "30").
func HasCodePrefix(code, prefix string) bool {
	if code == prefix {
		return true
	}
	return strings.HasPrefix(code, prefix+codeSeparator)
}

// IsValidCode reports whether code is a non-empty dot-separated list of
// numeric segments such as "1.2.10".
func IsValidCode(code string) bool {
	if code == "" {
		return false
	}
	for _, segment := range strings.Split(code, codeSeparator) {
		if !isDigits(segment) {
			return false
		}
	}
	return true
}

// CompareCodes orders codes segment by segment, numerically when both
// segments are numbers, so "1.10" sorts after "1.9".
func CompareCodes(a, b string) int {
	as := strings.Split(a, codeSeparator)
	bs := strings.Split(b, codeSeparator)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareSegment(a, b string) int {
	if isDigits(a) && isDigits(b) {
		a = strings.TrimLeft(a, "0")
		b = strings.TrimLeft(b, "0")
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
