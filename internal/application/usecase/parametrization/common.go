// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"github.com/google/uuid"

	domainerror "github.com/accounting-office/backend/internal/domain/error"
)

const (
	minFiscalYear = 1900
	maxFiscalYear = 9999
)

// validateCompanyYear checks the company and fiscal year of a request.
func validateCompanyYear(companyID uuid.UUID, year int) error {
	if companyID == uuid.Nil {
		return domainerror.NewParametrizationError(
			domainerror.ErrCodeCompanyRequired,
			"company id is required",
			domainerror.ErrCompanyRequired,
		)
	}
	if year < minFiscalYear || year > maxFiscalYear {
		return domainerror.NewParametrizationError(
			domainerror.ErrCodeInvalidYear,
			"year must be between 1900 and 9999",
			domainerror.ErrInvalidYear,
		)
	}
	return nil
}

// validateMonth checks a calendar month.
func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return domainerror.NewParametrizationError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}
	return nil
}
