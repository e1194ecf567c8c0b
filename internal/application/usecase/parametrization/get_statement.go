// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// GetStatementInput represents the input for building a monthly statement.
type GetStatementInput struct {
	CompanyID uuid.UUID
	Year      int
	Month     int
}

// GetStatementOutput represents a balancete-style statement of one month.
type GetStatementOutput struct {
	CompanyID uuid.UUID
	Year      int
	Month     int
	Status    entity.TrialBalanceStatus
	Lines     []valueobject.StatementLine
	Warnings  []valueobject.ConfigurationWarning
}

// GetStatementUseCase lists the signed value of every parametrized node.
type GetStatementUseCase struct {
	chartRepo           adapter.ChartOfAccountsRepository
	parametrizationRepo adapter.ParametrizationRepository
	trialBalanceRepo    adapter.TrialBalanceRepository
	resolver            *valueobject.NatureResolver
	config              valueobject.ValidationConfig
}

// NewGetStatementUseCase creates a new GetStatementUseCase instance.
func NewGetStatementUseCase(
	chartRepo adapter.ChartOfAccountsRepository,
	parametrizationRepo adapter.ParametrizationRepository,
	trialBalanceRepo adapter.TrialBalanceRepository,
	config valueobject.ValidationConfig,
) *GetStatementUseCase {
	return &GetStatementUseCase{
		chartRepo:           chartRepo,
		parametrizationRepo: parametrizationRepo,
		trialBalanceRepo:    trialBalanceRepo,
		resolver:            valueobject.NewNatureResolver(slog.Default()),
		config:              config,
	}
}

// Execute builds the statement. Only nodes with at least one linked code and
// a non-zero signed value are listed, ordered by code.
func (uc *GetStatementUseCase) Execute(ctx context.Context, input GetStatementInput) (*GetStatementOutput, error) {
	if err := validateCompanyYear(input.CompanyID, input.Year); err != nil {
		return nil, err
	}
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}

	tb, err := uc.trialBalanceRepo.FindByPeriod(ctx, input.CompanyID, input.Year, input.Month)
	if err != nil {
		if errors.Is(err, domainerror.ErrTrialBalanceNotFound) {
			return nil, trialBalanceNotFound(input.Year, input.Month)
		}
		return nil, fmt.Errorf("failed to load trial balance: %w", err)
	}
	if !tb.Status.IsEligibleForValidation() {
		return nil, trialBalanceNotFound(input.Year, input.Month)
	}

	eng, err := loadEngine(ctx, uc.chartRepo, uc.parametrizationRepo, uc.resolver, uc.config, input.CompanyID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.trialBalanceRepo.FindLines(ctx, input.CompanyID, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load trial balance lines: %w", err)
	}
	idx := IndexLines(lines)

	statement := make([]valueobject.StatementLine, 0)
	for _, node := range eng.catalog.Nodes() {
		if !eng.pmap.IsMapped(node.ID) {
			continue
		}
		valuation := eng.calculator.Valuate(node, idx)
		if valuation.ParametrizedValue.IsZero() {
			continue
		}
		statement = append(statement, valueobject.StatementLine{
			ChartNodeID: node.ID,
			Code:        node.Code,
			Name:        node.Name,
			Level:       node.Level(),
			Nature:      valuation.Nature,
			Value:       valuation.ParametrizedValue,
		})
	}

	return &GetStatementOutput{
		CompanyID: input.CompanyID,
		Year:      input.Year,
		Month:     input.Month,
		Status:    tb.Status,
		Lines:     statement,
		Warnings:  eng.warnings,
	}, nil
}

func trialBalanceNotFound(year, month int) error {
	return domainerror.NewParametrizationError(
		domainerror.ErrCodeTrialBalanceNotFound,
		fmt.Sprintf("no parametrized trial balance for %04d-%02d", year, month),
		domainerror.ErrTrialBalanceNotFound,
	)
}
