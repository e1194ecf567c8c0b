package valueobject

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/accounting-office/backend/internal/domain/entity"
)

func TestNatureResolver_Rules(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		nodeName   string
		bt         entity.BusinessType
		raw        string
		wantNature Nature
		wantRule   string
	}{
		{name: "retained earnings with profit", code: "2.3.3", bt: entity.BusinessTypeEquity, raw: "500", wantNature: NatureCredit, wantRule: RuleRetainedEarnings},
		{name: "retained earnings at zero", code: "2.3.3", bt: entity.BusinessTypeEquity, raw: "0", wantNature: NatureCredit, wantRule: RuleRetainedEarnings},
		{name: "retained earnings with loss", code: "2.3.3", bt: entity.BusinessTypeEquity, raw: "-500", wantNature: NatureDebit, wantRule: RuleRetainedEarnings},
		{name: "revenue deductions", code: "3.1.2", bt: entity.BusinessTypeRevenue, raw: "50", wantNature: NatureDebit, wantRule: RuleRevenueDeductions},
		{name: "revenue root", code: "3", bt: entity.BusinessTypeRevenue, raw: "1", wantNature: NatureCredit, wantRule: RuleRevenueRoot},
		{name: "revenue descendant with expense type", code: "3.2.1", bt: entity.BusinessTypeExpense, raw: "1", wantNature: NatureCredit, wantRule: RuleRevenueRoot},
		{name: "revenue deductions descendant", code: "3.1.2.1", bt: entity.BusinessTypeRevenue, raw: "1", wantNature: NatureCredit, wantRule: RuleRevenueRoot},
		{name: "equity root", code: "2.3", bt: entity.BusinessTypeEquity, raw: "1", wantNature: NatureCredit, wantRule: RuleEquityRoot},
		{name: "equity descendant with asset type", code: "2.3.1", bt: entity.BusinessTypeAsset, raw: "1", wantNature: NatureCredit, wantRule: RuleEquityRoot},
		{name: "code 30 is not revenue", code: "30", bt: entity.BusinessTypeAsset, raw: "1", wantNature: NatureDebit, wantRule: RuleBusinessType},
		{name: "code 2.30 is not equity", code: "2.30", bt: entity.BusinessTypeLiability, raw: "1", wantNature: NatureCredit, wantRule: RuleBusinessType},
		{name: "asset", code: "1.1.1", nodeName: "Caixa", bt: entity.BusinessTypeAsset, raw: "1", wantNature: NatureDebit, wantRule: RuleBusinessType},
		{name: "contra asset marker", code: "1.2.2", nodeName: "(-) Provisão", bt: entity.BusinessTypeAsset, raw: "1", wantNature: NatureCredit, wantRule: RuleBusinessType},
		{name: "depreciation", code: "1.2.3", nodeName: "Depreciação Acumulada", bt: entity.BusinessTypeAsset, raw: "1", wantNature: NatureCredit, wantRule: RuleBusinessType},
		{name: "amortization", code: "1.2.4", nodeName: "AMORTIZAÇÃO ACUMULADA", bt: entity.BusinessTypeAsset, raw: "1", wantNature: NatureCredit, wantRule: RuleBusinessType},
		{name: "liability", code: "2.1", bt: entity.BusinessTypeLiability, raw: "1", wantNature: NatureCredit, wantRule: RuleBusinessType},
		{name: "equity outside 2.3 takes the default", code: "2.4", bt: entity.BusinessTypeEquity, raw: "1", wantNature: NatureDebit, wantRule: RuleDefault},
		{name: "revenue outside 3", code: "5.1", bt: entity.BusinessTypeRevenue, raw: "1", wantNature: NatureCredit, wantRule: RuleBusinessType},
		{name: "expense", code: "4.1", bt: entity.BusinessTypeExpense, raw: "1", wantNature: NatureDebit, wantRule: RuleBusinessType},
		{name: "cost", code: "4.2", bt: entity.BusinessTypeCost, raw: "1", wantNature: NatureDebit, wantRule: RuleBusinessType},
		{name: "unknown business type", code: "9", bt: entity.BusinessType("other"), raw: "1", wantNature: NatureDebit, wantRule: RuleDefault},
	}

	resolver := NewNatureResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := entity.NewChartNode(tt.code, tt.nodeName, tt.bt)
			nature, rule := resolver.ResolveWithRule(n, decimal.RequireFromString(tt.raw))
			assert.Equal(t, tt.wantNature, nature)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestNatureResolver_RuleOrder(t *testing.T) {
	assert.Equal(t, []string{
		RuleRetainedEarnings,
		RuleRevenueDeductions,
		RuleRevenueRoot,
		RuleEquityRoot,
		RuleBusinessType,
		RuleDefault,
	}, NewNatureResolver(nil).Rules())
}

func TestNatureResolver_IndependentOfIterationOrder(t *testing.T) {
	nodes := []*entity.ChartNode{
		entity.NewChartNode("1", "Ativo", entity.BusinessTypeAsset),
		entity.NewChartNode("1.2.2", "(-) Depreciação", entity.BusinessTypeAsset),
		entity.NewChartNode("2.3", "PL", entity.BusinessTypeEquity),
		entity.NewChartNode("2.3.3", "Lucros", entity.BusinessTypeEquity),
		entity.NewChartNode("3", "Receitas", entity.BusinessTypeRevenue),
		entity.NewChartNode("3.1.2", "Deduções", entity.BusinessTypeRevenue),
		entity.NewChartNode("4", "Despesas", entity.BusinessTypeExpense),
	}
	resolver := NewNatureResolver(nil)
	raw := decimal.NewFromInt(-10)

	want := make(map[string]Nature, len(nodes))
	for _, n := range nodes {
		want[n.Code] = resolver.Resolve(n, raw)
	}

	r := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		r.Shuffle(len(nodes), func(a, b int) { nodes[a], nodes[b] = nodes[b], nodes[a] })
		for _, n := range nodes {
			assert.Equal(t, want[n.Code], resolver.Resolve(n, raw), n.Code)
		}
	}
}

func TestNature_Sign(t *testing.T) {
	raw := decimal.RequireFromString("12.34")
	assert.True(t, NatureDebit.Sign(raw).Equal(raw))
	assert.True(t, NatureCredit.Sign(raw).Equal(raw.Neg()))
}

func TestValidationConfig(t *testing.T) {
	cfg := DefaultValidationConfig()
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsWithinTolerance(decimal.RequireFromString("1.00"), decimal.RequireFromString("0.99")))
	assert.False(t, cfg.IsWithinTolerance(decimal.RequireFromString("1.00"), decimal.RequireFromString("0.989")))

	bad := cfg
	bad.Tolerance = decimal.RequireFromString("-0.01")
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Workers = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.ValueSource = "average"
	assert.Error(t, bad.Validate())
}
