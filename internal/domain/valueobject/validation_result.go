// Package valueobject contains domain value objects for the accounting office system.
package valueobject

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FindingStatus is the outcome of a mother-node check.
type FindingStatus string

const (
	FindingStatusConsistent   FindingStatus = "consistent"
	FindingStatusInconsistent FindingStatus = "inconsistent"
)

// NodeValuation holds the values computed for one node in one month.
// CalculatedValue is only meaningful when HasChildren is true.
type NodeValuation struct {
	ChartNodeID       uuid.UUID
	Code              string
	RawAggregate      decimal.Decimal
	Nature            Nature
	ParametrizedValue decimal.Decimal
	CalculatedValue   decimal.Decimal
	HasChildren       bool
}

// ChildContribution is one direct child's share of a mother node's
// calculated value.
type ChildContribution struct {
	ChartNodeID       uuid.UUID
	Code              string
	Name              string
	Nature            Nature
	ParametrizedValue decimal.Decimal
}

// ValidationFinding is the parent-equals-sum-of-children check of one mother
// node in one month.
type ValidationFinding struct {
	ChartNodeID        uuid.UUID
	Code               string
	Name               string
	Level              int
	Year               int
	Month              int
	Nature             Nature
	ParametrizedValue  decimal.Decimal
	CalculatedValue    decimal.Decimal
	AbsoluteDifference decimal.Decimal
	Status             FindingStatus
	Children           []ChildContribution
}

// IsConsistent reports whether the finding passed.
func (f ValidationFinding) IsConsistent() bool {
	return f.Status == FindingStatusConsistent
}

// BalanceEquationFinding is the Assets − Liabilities = Revenues − Expenses
// check of one month.
type BalanceEquationFinding struct {
	CompanyID        uuid.UUID
	Year             int
	Month            int
	Assets           decimal.Decimal
	Liabilities      decimal.Decimal
	Revenues         decimal.Decimal
	CostsAndExpenses decimal.Decimal
	PatrimonialDelta decimal.Decimal
	ResultDelta      decimal.Decimal
	Difference       decimal.Decimal
	IsConsistent     bool
	MissingRoots     []string
}

// WarningKind classifies configuration gaps found during a run.
type WarningKind string

const (
	WarningUnknownChartNode    WarningKind = "unknown_chart_node"
	WarningMissingRoot         WarningKind = "missing_root"
	WarningDuplicateCode       WarningKind = "duplicate_code"
	WarningOrphanNode          WarningKind = "orphan_node"
	WarningUnknownBusinessType WarningKind = "unknown_business_type"
)

// ConfigurationWarning reports a configuration gap. Gaps never turn into a
// consistent result on their own.
type ConfigurationWarning struct {
	Kind             WarningKind
	Code             string
	ChartNodeID      uuid.UUID
	TrialBalanceCode string
	Message          string
}

// StatementLine is one row of a balancete-style statement.
type StatementLine struct {
	ChartNodeID uuid.UUID
	Code        string
	Name        string
	Level       int
	Nature      Nature
	Value       decimal.Decimal
}
