// Package valueobject contains domain value objects for the accounting office system.
package valueobject

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/accounting-office/backend/internal/domain/entity"
)

// Nature is the debit/credit classification that decides the sign applied
// to a node's raw aggregate.
type Nature string

const (
	NatureDebit  Nature = "debit"
	NatureCredit Nature = "credit"
)

// Sign applies the nature to a raw aggregate: credit nodes are negated.
func (n Nature) Sign(raw decimal.Decimal) decimal.Decimal {
	if n == NatureCredit {
		return raw.Neg()
	}
	return raw
}

// Rule names, in evaluation order.
const (
	RuleRetainedEarnings  = "retained_earnings"
	RuleRevenueDeductions = "revenue_deductions"
	RuleRevenueRoot       = "revenue_root"
	RuleEquityRoot        = "equity_root"
	RuleBusinessType      = "business_type"
	RuleDefault           = "default"
)

// NatureRule is one row of the nature table. Matches decides whether the rule
// applies; Nature yields the result for a matching node.
type NatureRule struct {
	Name    string
	Matches func(node *entity.ChartNode, raw decimal.Decimal) bool
	Nature  func(node *entity.ChartNode, raw decimal.Decimal) Nature
}

// contraAssetMarkers flag asset accounts that reduce the asset group.
// The catalog has no structured flag for this, so the display name is used.
var contraAssetMarkers = []string{"(-)", "deprecia", "amortiza"}

// DefaultNatureRules returns the nature table. The first matching rule wins,
// so the order is part of the contract.
func DefaultNatureRules() []NatureRule {
	return []NatureRule{
		{
			Name: RuleRetainedEarnings,
			Matches: func(node *entity.ChartNode, _ decimal.Decimal) bool {
				return node.Code == entity.CodeRetainedEarnings
			},
			Nature: func(_ *entity.ChartNode, raw decimal.Decimal) Nature {
				if raw.IsNegative() {
					return NatureDebit
				}
				return NatureCredit
			},
		},
		{
			Name: RuleRevenueDeductions,
			Matches: func(node *entity.ChartNode, _ decimal.Decimal) bool {
				return node.Code == entity.CodeRevenueDeductions
			},
			Nature: constantNature(NatureDebit),
		},
		{
			Name: RuleRevenueRoot,
			Matches: func(node *entity.ChartNode, _ decimal.Decimal) bool {
				return entity.HasCodePrefix(node.Code, entity.RootCodeRevenues)
			},
			Nature: constantNature(NatureCredit),
		},
		{
			Name: RuleEquityRoot,
			Matches: func(node *entity.ChartNode, _ decimal.Decimal) bool {
				return entity.HasCodePrefix(node.Code, entity.CodeEquity)
			},
			Nature: constantNature(NatureCredit),
		},
		{
			Name: RuleBusinessType,
			Matches: func(node *entity.ChartNode, _ decimal.Decimal) bool {
				return hasBusinessTypeNature(node.BusinessType)
			},
			Nature: func(node *entity.ChartNode, _ decimal.Decimal) Nature {
				return natureForBusinessType(node)
			},
		},
		{
			Name: RuleDefault,
			Matches: func(*entity.ChartNode, decimal.Decimal) bool {
				return true
			},
			Nature: constantNature(NatureDebit),
		},
	}
}

func constantNature(n Nature) func(*entity.ChartNode, decimal.Decimal) Nature {
	return func(*entity.ChartNode, decimal.Decimal) Nature { return n }
}

// hasBusinessTypeNature reports whether the business type has its own
// nature. Equity does not: outside 2.3 it takes the default.
func hasBusinessTypeNature(bt entity.BusinessType) bool {
	switch bt {
	case entity.BusinessTypeAsset, entity.BusinessTypeLiability, entity.BusinessTypeRevenue,
		entity.BusinessTypeExpense, entity.BusinessTypeCost:
		return true
	default:
		return false
	}
}

func natureForBusinessType(node *entity.ChartNode) Nature {
	switch node.BusinessType {
	case entity.BusinessTypeAsset:
		if IsContraAsset(node.Name) {
			return NatureCredit
		}
		return NatureDebit
	case entity.BusinessTypeLiability, entity.BusinessTypeRevenue:
		return NatureCredit
	default:
		return NatureDebit
	}
}

// IsContraAsset reports whether an asset name marks a contra-asset account
// such as accumulated depreciation.
func IsContraAsset(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range contraAssetMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// NatureResolver evaluates the nature table against chart nodes.
// It is safe for concurrent use.
type NatureResolver struct {
	rules  []NatureRule
	logger *slog.Logger
}

// NewNatureResolver creates a resolver over the default nature table.
func NewNatureResolver(logger *slog.Logger) *NatureResolver {
	return NewNatureResolverWithRules(DefaultNatureRules(), logger)
}

// NewNatureResolverWithRules creates a resolver over a custom table.
func NewNatureResolverWithRules(rules []NatureRule, logger *slog.Logger) *NatureResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &NatureResolver{
		rules:  rules,
		logger: logger,
	}
}

// Resolve returns the nature of node given its raw aggregate.
func (r *NatureResolver) Resolve(node *entity.ChartNode, raw decimal.Decimal) Nature {
	nature, _ := r.ResolveWithRule(node, raw)
	return nature
}

// ResolveWithRule returns the nature and the name of the rule that decided it.
func (r *NatureResolver) ResolveWithRule(node *entity.ChartNode, raw decimal.Decimal) (Nature, string) {
	for _, rule := range r.rules {
		if !rule.Matches(node, raw) {
			continue
		}
		if rule.Name == RuleDefault && !node.BusinessType.IsValid() {
			r.logger.Warn("Unrecognized business type, defaulting nature to debit",
				"code", node.Code,
				"business_type", string(node.BusinessType),
			)
		}
		return rule.Nature(node, raw), rule.Name
	}
	return NatureDebit, RuleDefault
}

// Rules returns the rule names in evaluation order.
func (r *NatureResolver) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}
