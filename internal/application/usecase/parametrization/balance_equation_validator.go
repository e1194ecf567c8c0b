// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accounting-office/backend/internal/domain/entity"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// BalanceEquationValidator checks Assets − Liabilities ≈ Revenues − Expenses
// on the unsigned aggregates of the four level-1 roots.
type BalanceEquationValidator struct {
	catalog    *Catalog
	calculator *ValueCalculator
	config     valueobject.ValidationConfig
}

// NewBalanceEquationValidator creates a new BalanceEquationValidator instance.
func NewBalanceEquationValidator(catalog *Catalog, calculator *ValueCalculator, config valueobject.ValidationConfig) *BalanceEquationValidator {
	return &BalanceEquationValidator{
		catalog:    catalog,
		calculator: calculator,
		config:     config,
	}
}

// ValidateMonth computes the balance-equation finding of one month.
// A missing root counts as zero, is listed in MissingRoots and forces the
// finding to inconsistent.
func (v *BalanceEquationValidator) ValidateMonth(companyID uuid.UUID, year, month int, lines PeriodLines) valueobject.BalanceEquationFinding {
	var missing []string
	rootValue := func(code string) decimal.Decimal {
		node, ok := v.catalog.ByCode(code)
		if !ok {
			missing = append(missing, code)
			return decimal.Zero
		}
		return v.calculator.UnsignedAggregate(node, lines)
	}

	assets := rootValue(entity.RootCodeAssets)
	liabilities := rootValue(entity.RootCodeLiabilities)
	revenues := rootValue(entity.RootCodeRevenues)
	costs := rootValue(entity.RootCodeCostsAndExpenses)

	patrimonial := assets.Sub(liabilities)
	result := revenues.Sub(costs)
	diff := patrimonial.Sub(result).Abs()

	return valueobject.BalanceEquationFinding{
		CompanyID:        companyID,
		Year:             year,
		Month:            month,
		Assets:           assets,
		Liabilities:      liabilities,
		Revenues:         revenues,
		CostsAndExpenses: costs,
		PatrimonialDelta: patrimonial,
		ResultDelta:      result,
		Difference:       diff,
		IsConsistent:     len(missing) == 0 && v.config.IsWithinTolerance(patrimonial, result),
		MissingRoots:     missing,
	}
}
