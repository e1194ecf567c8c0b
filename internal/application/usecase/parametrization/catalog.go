// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/domain/entity"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// Catalog is a read-only index over the chart of accounts, keyed by code.
// Parent/child relations are derived from the codes when the index is built.
type Catalog struct {
	nodes    []*entity.ChartNode
	byCode   map[string]*entity.ChartNode
	byID     map[uuid.UUID]*entity.ChartNode
	children map[string][]*entity.ChartNode
}

// NewCatalog indexes the given nodes. The returned warnings list nodes whose
// parent code is missing and nodes with an unrecognized business type.
func NewCatalog(nodes []*entity.ChartNode) (*Catalog, []valueobject.ConfigurationWarning) {
	c := &Catalog{
		nodes:    make([]*entity.ChartNode, 0, len(nodes)),
		byCode:   make(map[string]*entity.ChartNode, len(nodes)),
		byID:     make(map[uuid.UUID]*entity.ChartNode, len(nodes)),
		children: make(map[string][]*entity.ChartNode),
	}

	for _, n := range nodes {
		if n == nil || n.Code == "" {
			continue
		}
		if _, dup := c.byCode[n.Code]; dup {
			continue
		}
		c.nodes = append(c.nodes, n)
		c.byCode[n.Code] = n
		c.byID[n.ID] = n
	}

	sort.SliceStable(c.nodes, func(i, j int) bool {
		return entity.CompareCodes(c.nodes[i].Code, c.nodes[j].Code) < 0
	})

	var warnings []valueobject.ConfigurationWarning
	for _, n := range c.nodes {
		if parent := n.ParentCode(); parent != "" {
			if _, ok := c.byCode[parent]; ok {
				c.children[parent] = append(c.children[parent], n)
			} else {
				warnings = append(warnings, valueobject.ConfigurationWarning{
					Kind:        valueobject.WarningOrphanNode,
					Code:        n.Code,
					ChartNodeID: n.ID,
					Message:     fmt.Sprintf("parent code %s of %s is not in the chart of accounts", parent, n.Code),
				})
			}
		}
		if !n.BusinessType.IsValid() {
			warnings = append(warnings, valueobject.ConfigurationWarning{
				Kind:        valueobject.WarningUnknownBusinessType,
				Code:        n.Code,
				ChartNodeID: n.ID,
				Message:     fmt.Sprintf("unrecognized business type %q, nature defaults to debit", n.BusinessType),
			})
		}
	}

	return c, warnings
}

// Len returns the number of indexed nodes.
func (c *Catalog) Len() int {
	return len(c.nodes)
}

// Nodes returns every node ordered by code.
func (c *Catalog) Nodes() []*entity.ChartNode {
	return c.nodes
}

// ByCode looks a node up by its code.
func (c *Catalog) ByCode(code string) (*entity.ChartNode, bool) {
	n, ok := c.byCode[code]
	return n, ok
}

// ByID looks a node up by its ID.
func (c *Catalog) ByID(id uuid.UUID) (*entity.ChartNode, bool) {
	n, ok := c.byID[id]
	return n, ok
}

// Children returns the direct children of code, ordered by code.
func (c *Catalog) Children(code string) []*entity.ChartNode {
	return c.children[code]
}

// HasChildren reports whether code is a mother account.
func (c *Catalog) HasChildren(code string) bool {
	return len(c.children[code]) > 0
}

// Mothers returns every node with at least one direct child, deepest level
// first and ordered by code within a level.
func (c *Catalog) Mothers() []*entity.ChartNode {
	mothers := make([]*entity.ChartNode, 0, len(c.children))
	for _, n := range c.nodes {
		if c.HasChildren(n.Code) {
			mothers = append(mothers, n)
		}
	}
	sort.SliceStable(mothers, func(i, j int) bool {
		li, lj := mothers[i].Level(), mothers[j].Level()
		if li != lj {
			return li > lj
		}
		return entity.CompareCodes(mothers[i].Code, mothers[j].Code) < 0
	})
	return mothers
}

// MissingRoots returns which of the balance-equation roots are absent.
func (c *Catalog) MissingRoots() []string {
	var missing []string
	for _, code := range balanceRoots {
		if _, ok := c.byCode[code]; !ok {
			missing = append(missing, code)
		}
	}
	return missing
}

var balanceRoots = []string{
	entity.RootCodeAssets,
	entity.RootCodeLiabilities,
	entity.RootCodeRevenues,
	entity.RootCodeCostsAndExpenses,
}
