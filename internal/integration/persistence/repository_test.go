package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.ChartAccountModel{},
		&model.ParametrizationLinkModel{},
		&model.TrialBalanceModel{},
		&model.TrialBalanceLineModel{},
	))
	return db
}

func TestChartOfAccountsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewChartOfAccountsRepository(newTestDB(t))

	assets := entity.NewChartNode("1", "Ativo", entity.BusinessTypeAsset)
	cash := entity.NewChartNode("1.1", "Caixa", entity.BusinessTypeAsset)
	require.NoError(t, repo.Create(ctx, cash))
	require.NoError(t, repo.Create(ctx, assets))

	nodes, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "1", nodes[0].Code)
	assert.Equal(t, entity.BusinessTypeAsset, nodes[1].BusinessType)

	got, err := repo.FindByID(ctx, cash.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caixa", got.Name)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrChartNodeNotFound)

	assert.Error(t, repo.Create(ctx, entity.NewChartNode("1", "Duplicado", entity.BusinessTypeAsset)))
}

func TestChartOfAccountsRepository_CreateBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewChartOfAccountsRepository(newTestDB(t))

	require.NoError(t, repo.CreateBatch(ctx, []*entity.ChartNode{
		entity.NewChartNode("2", "Passivo", entity.BusinessTypeLiability),
		entity.NewChartNode("2.1", "Passivo Circulante", entity.BusinessTypeLiability),
	}))
	require.NoError(t, repo.CreateBatch(ctx, nil))

	err := repo.CreateBatch(ctx, []*entity.ChartNode{
		entity.NewChartNode("3", "Receitas", entity.BusinessTypeRevenue),
		entity.NewChartNode("2", "Passivo repetido", entity.BusinessTypeLiability),
	})
	assert.Error(t, err)

	nodes, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "2", nodes[0].Code)
	assert.Equal(t, "2.1", nodes[1].Code)
}

func TestParametrizationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewParametrizationRepository(newTestDB(t))
	companyID := uuid.New()
	otherCompany := uuid.New()
	nodeA, nodeB := uuid.New(), uuid.New()

	first := entity.NewParametrizationLink(companyID, nodeA, []string{"101", "102"})
	second := entity.NewParametrizationLink(companyID, nodeB, []string{"201"})
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, entity.NewParametrizationLink(otherCompany, nodeA, []string{"101"})))

	t.Run("find by company regroups rows", func(t *testing.T) {
		links, err := repo.FindByCompany(ctx, companyID)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, first.ID, links[0].ID)
		assert.Equal(t, []string{"101", "102"}, links[0].TrialBalanceCodes)
		assert.Equal(t, nodeA, links[0].ChartNodeID)
		assert.Equal(t, []string{"201"}, links[1].TrialBalanceCodes)
	})

	t.Run("code owners are scoped to the company", func(t *testing.T) {
		owners, err := repo.FindCodeOwners(ctx, companyID, []string{"102", "201", "999"})
		require.NoError(t, err)
		assert.Equal(t, map[string]uuid.UUID{"102": nodeA, "201": nodeB}, owners)

		owners, err = repo.FindCodeOwners(ctx, otherCompany, []string{"102"})
		require.NoError(t, err)
		assert.Empty(t, owners)
	})

	t.Run("a code cannot be stored twice for one company", func(t *testing.T) {
		err := repo.Create(ctx, entity.NewParametrizationLink(companyID, nodeB, []string{"300", "101"}))
		assert.Error(t, err)

		owners, err := repo.FindCodeOwners(ctx, companyID, []string{"300"})
		require.NoError(t, err)
		assert.Empty(t, owners, "failed insert must not leave partial rows")
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteByID(ctx, otherCompany, first.ID), domainerror.ErrParametrizationLinkNotFound)
		require.NoError(t, repo.DeleteByID(ctx, companyID, first.ID))

		links, err := repo.FindByCompany(ctx, companyID)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, second.ID, links[0].ID)
	})
}

func TestTrialBalanceRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTrialBalanceRepository(db)
	companyID := uuid.New()

	statuses := map[int]entity.TrialBalanceStatus{
		1: entity.TrialBalanceStatusPending,
		2: entity.TrialBalanceStatusParametrized,
		3: entity.TrialBalanceStatusParametrizing,
	}
	for month, status := range statuses {
		tb := entity.NewTrialBalance(companyID, 2024, month)
		tb.Status = status
		require.NoError(t, db.Create(model.TrialBalanceFromEntity(tb)).Error)
	}
	other := entity.NewTrialBalance(uuid.New(), 2024, 4)
	other.Status = entity.TrialBalanceStatusParametrized
	require.NoError(t, db.Create(model.TrialBalanceFromEntity(other)).Error)

	for _, l := range []*entity.TrialBalanceLine{
		{CompanyID: companyID, Year: 2024, Month: 2, Code: "102", Name: "Bancos", OpeningBalance: decimal.RequireFromString("10"), ClosingBalance: decimal.RequireFromString("150.25")},
		{CompanyID: companyID, Year: 2024, Month: 2, Code: "101", Name: "Caixa", ClosingBalance: decimal.RequireFromString("-20")},
		{CompanyID: companyID, Year: 2024, Month: 3, Code: "101", Name: "Caixa", ClosingBalance: decimal.RequireFromString("5")},
	} {
		require.NoError(t, db.Create(model.TrialBalanceLineFromEntity(l)).Error)
	}

	months, err := repo.FindEligibleMonths(ctx, companyID, 2024)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, months)

	months, err = repo.FindEligibleMonths(ctx, companyID, 2023)
	require.NoError(t, err)
	assert.Empty(t, months)

	lines, err := repo.FindLines(ctx, companyID, 2024, 2)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "101", lines[0].Code)
	assert.True(t, lines[1].ClosingBalance.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, lines[1].Movement().Equal(decimal.RequireFromString("140.25")))

	tb, err := repo.FindByPeriod(ctx, companyID, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, entity.TrialBalanceStatusParametrizing, tb.Status)

	_, err = repo.FindByPeriod(ctx, companyID, 2024, 9)
	assert.ErrorIs(t, err, domainerror.ErrTrialBalanceNotFound)
}
