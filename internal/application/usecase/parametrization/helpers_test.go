package parametrization

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// standardChart is a trimmed version of the standard chart of accounts.
type standardChart struct {
	nodes  []*entity.ChartNode
	byCode map[string]*entity.ChartNode
}

func newStandardChart() *standardChart {
	nodes := []*entity.ChartNode{
		node("1", "Ativo", entity.BusinessTypeAsset),
		node("1.1", "Ativo Circulante", entity.BusinessTypeAsset),
		node("1.1.1", "Caixa", entity.BusinessTypeAsset),
		node("1.1.2", "Bancos", entity.BusinessTypeAsset),
		node("1.2", "Ativo Não Circulante", entity.BusinessTypeAsset),
		node("1.2.1", "Imobilizado", entity.BusinessTypeAsset),
		node("1.2.2", "(-) Depreciação Acumulada", entity.BusinessTypeAsset),
		node("2", "Passivo", entity.BusinessTypeLiability),
		node("2.1", "Passivo Circulante", entity.BusinessTypeLiability),
		node("2.3", "Patrimônio Líquido", entity.BusinessTypeEquity),
		node("2.3.3", "Lucros ou Prejuízos Acumulados", entity.BusinessTypeEquity),
		node("3", "Receitas", entity.BusinessTypeRevenue),
		node("3.1", "Receita Bruta", entity.BusinessTypeRevenue),
		node("3.1.1", "Vendas", entity.BusinessTypeRevenue),
		node("3.1.2", "Deduções da Receita Bruta", entity.BusinessTypeRevenue),
		node("4", "Custos e Despesas", entity.BusinessTypeExpense),
		node("4.1", "Despesas Administrativas", entity.BusinessTypeExpense),
	}
	c := &standardChart{nodes: nodes, byCode: make(map[string]*entity.ChartNode)}
	for _, n := range nodes {
		c.byCode[n.Code] = n
	}
	return c
}

func (c *standardChart) get(code string) *entity.ChartNode {
	return c.byCode[code]
}

func (c *standardChart) shuffled(seed int64) []*entity.ChartNode {
	out := append([]*entity.ChartNode(nil), c.nodes...)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func newCalculator(t *testing.T, nodes []*entity.ChartNode, links []*entity.ParametrizationLink) (*Catalog, *ValueCalculator) {
	t.Helper()
	catalog, _ := NewCatalog(nodes)
	pmap, _ := BuildParametrizationMap(catalog, links)
	return catalog, NewValueCalculator(catalog, pmap, valueobject.NewNatureResolver(nil), valueobject.ValueSourceClosing)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func requireErrorCode(t *testing.T, err error, code domainerror.ParametrizationErrorCode) {
	t.Helper()
	var pe *domainerror.ParametrizationError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, code, pe.Code)
}

func findingFor(findings []valueobject.ValidationFinding, code string, month int) *valueobject.ValidationFinding {
	for i := range findings {
		if findings[i].Code == code && findings[i].Month == month {
			return &findings[i]
		}
	}
	return nil
}

var testCompanyID = uuid.MustParse("0b7c1f1e-5f7a-4a43-9d1c-2a8f3c9e6b10")
