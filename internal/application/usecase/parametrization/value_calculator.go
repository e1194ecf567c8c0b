// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"github.com/shopspring/decimal"

	"github.com/accounting-office/backend/internal/domain/entity"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// ValueCalculator computes node values for one company. It only reads its
// inputs and can be shared across month workers.
type ValueCalculator struct {
	catalog  *Catalog
	pmap     *ParametrizationMap
	resolver *valueobject.NatureResolver
	source   valueobject.ValueSource
}

// NewValueCalculator creates a new ValueCalculator instance.
func NewValueCalculator(catalog *Catalog, pmap *ParametrizationMap, resolver *valueobject.NatureResolver, source valueobject.ValueSource) *ValueCalculator {
	if !source.IsValid() {
		source = valueobject.ValueSourceClosing
	}
	return &ValueCalculator{
		catalog:  catalog,
		pmap:     pmap,
		resolver: resolver,
		source:   source,
	}
}

// RawAggregate returns the unsigned-by-nature sum of the node's linked codes.
func (c *ValueCalculator) RawAggregate(node *entity.ChartNode, lines PeriodLines) decimal.Decimal {
	return c.pmap.RawAggregate(node.ID, lines, c.source)
}

// ParametrizedValue returns the node's direct mapping, signed by its nature.
func (c *ValueCalculator) ParametrizedValue(node *entity.ChartNode, lines PeriodLines) decimal.Decimal {
	raw := c.RawAggregate(node, lines)
	return c.resolver.Resolve(node, raw).Sign(raw)
}

// CalculatedValue sums the parametrized values of the node's direct
// children. Leaves return zero; use Catalog.HasChildren to tell them apart.
func (c *ValueCalculator) CalculatedValue(node *entity.ChartNode, lines PeriodLines) decimal.Decimal {
	total := decimal.Zero
	for _, child := range c.catalog.Children(node.Code) {
		total = total.Add(c.ParametrizedValue(child, lines))
	}
	return total
}

// UnsignedAggregate returns the magnitude of the raw aggregate. The balance
// equation compares magnitudes, unlike the hierarchy check.
func (c *ValueCalculator) UnsignedAggregate(node *entity.ChartNode, lines PeriodLines) decimal.Decimal {
	return c.RawAggregate(node, lines).Abs()
}

// Valuate computes every value of a node for one month.
func (c *ValueCalculator) Valuate(node *entity.ChartNode, lines PeriodLines) valueobject.NodeValuation {
	raw := c.RawAggregate(node, lines)
	nature := c.resolver.Resolve(node, raw)

	v := valueobject.NodeValuation{
		ChartNodeID:       node.ID,
		Code:              node.Code,
		RawAggregate:      raw,
		Nature:            nature,
		ParametrizedValue: nature.Sign(raw),
		HasChildren:       c.catalog.HasChildren(node.Code),
	}
	if v.HasChildren {
		v.CalculatedValue = c.CalculatedValue(node, lines)
	}
	return v
}

// Contributions lists each direct child's signed value, ordered by code.
func (c *ValueCalculator) Contributions(node *entity.ChartNode, lines PeriodLines) []valueobject.ChildContribution {
	children := c.catalog.Children(node.Code)
	out := make([]valueobject.ChildContribution, 0, len(children))
	for _, child := range children {
		raw := c.RawAggregate(child, lines)
		nature := c.resolver.Resolve(child, raw)
		out = append(out, valueobject.ChildContribution{
			ChartNodeID:       child.ID,
			Code:              child.Code,
			Name:              child.Name,
			Nature:            nature,
			ParametrizedValue: nature.Sign(raw),
		})
	}
	return out
}
