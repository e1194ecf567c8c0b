package parametrization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

func TestGetStatement_ListsNonZeroParametrizedNodesByCode(t *testing.T) {
	f := newRunFixture()
	f.tbs.addMonth(2024, 5, entity.TrialBalanceStatusParametrizing,
		line("301", "-500"),
		line("101", "600"),
		line("102", "0"),
		line("410", "320"),
	)
	uc := NewGetStatementUseCase(f.charts, f.links, f.tbs, valueobject.DefaultValidationConfig())

	out, err := uc.Execute(context.Background(), GetStatementInput{CompanyID: testCompanyID, Year: 2024, Month: 5})

	require.NoError(t, err)
	assert.Equal(t, entity.TrialBalanceStatusParametrizing, out.Status)

	codes := make([]string, len(out.Lines))
	for i, l := range out.Lines {
		codes[i] = l.Code
	}
	assert.Equal(t, []string{"1.1.1", "3.1.1", "4.1"}, codes)
	assertDecimal(t, "600", out.Lines[0].Value)
	assert.Equal(t, valueobject.NatureCredit, out.Lines[1].Nature)
	assertDecimal(t, "500", out.Lines[1].Value)
	assert.Equal(t, 2, out.Lines[2].Level)
}

func TestGetStatement_Errors(t *testing.T) {
	f := newRunFixture()
	f.tbs.addMonth(2024, 1, entity.TrialBalanceStatusPending, line("101", "1"))
	uc := NewGetStatementUseCase(f.charts, f.links, f.tbs, valueobject.DefaultValidationConfig())

	tests := []struct {
		name     string
		input    GetStatementInput
		wantCode domainerror.ParametrizationErrorCode
	}{
		{name: "pending month", input: GetStatementInput{CompanyID: testCompanyID, Year: 2024, Month: 1}, wantCode: domainerror.ErrCodeTrialBalanceNotFound},
		{name: "missing month", input: GetStatementInput{CompanyID: testCompanyID, Year: 2024, Month: 2}, wantCode: domainerror.ErrCodeTrialBalanceNotFound},
		{name: "invalid month", input: GetStatementInput{CompanyID: testCompanyID, Year: 2024, Month: 13}, wantCode: domainerror.ErrCodeInvalidMonth},
		{name: "invalid year", input: GetStatementInput{CompanyID: testCompanyID, Year: 0, Month: 1}, wantCode: domainerror.ErrCodeInvalidYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			requireErrorCode(t, err, tt.wantCode)
		})
	}
}
