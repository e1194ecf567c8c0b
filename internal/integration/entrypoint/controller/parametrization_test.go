package controller

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/accounting-office/backend/internal/application/usecase/parametrization"
	"github.com/accounting-office/backend/internal/domain/entity"
	"github.com/accounting-office/backend/internal/domain/valueobject"
	"github.com/accounting-office/backend/internal/integration/entrypoint/dto"
	"github.com/accounting-office/backend/internal/integration/persistence"
	"github.com/accounting-office/backend/internal/integration/persistence/model"
)

type controllerFixture struct {
	db        *gorm.DB
	engine    *gin.Engine
	companyID uuid.UUID
	nodes     map[string]*entity.ChartNode
}

func newControllerFixture(t *testing.T, seedChart bool) *controllerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	chartRepo := persistence.NewChartOfAccountsRepository(db)
	linkRepo := persistence.NewParametrizationRepository(db)
	tbRepo := persistence.NewTrialBalanceRepository(db)
	config := valueobject.DefaultValidationConfig()

	ctrl := NewParametrizationController(
		parametrization.NewRunValidationUseCase(chartRepo, linkRepo, tbRepo, nil, config),
		parametrization.NewGetStatementUseCase(chartRepo, linkRepo, tbRepo, config),
		parametrization.NewListLinksUseCase(chartRepo, linkRepo),
		parametrization.NewCreateLinkUseCase(chartRepo, linkRepo, nil),
		parametrization.NewDeleteLinkUseCase(linkRepo, nil),
	)

	engine := gin.New()
	group := engine.Group("/api/v1/companies/:company_id/parametrization")
	group.GET("/validation", ctrl.RunValidation)
	group.GET("/statements", ctrl.GetStatement)
	group.GET("/links", ctrl.ListLinks)
	group.POST("/links", ctrl.CreateLink)
	group.DELETE("/links/:id", ctrl.DeleteLink)

	f := &controllerFixture{
		db:        db,
		engine:    engine,
		companyID: uuid.New(),
		nodes:     make(map[string]*entity.ChartNode),
	}
	if seedChart {
		f.seed(t)
	}
	return f
}

// seed stores a two-level chart with every node linked to its own code and
// one balanced month.
func (f *controllerFixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	chartRepo := persistence.NewChartOfAccountsRepository(f.db)
	linkRepo := persistence.NewParametrizationRepository(f.db)

	chart := []struct {
		code, name, tbCode string
		businessType       entity.BusinessType
		closing            string
	}{
		{"1", "Ativo", "1", entity.BusinessTypeAsset, "1000"},
		{"1.1", "Caixa", "11", entity.BusinessTypeAsset, "1000"},
		{"2", "Passivo", "2", entity.BusinessTypeLiability, "-800"},
		{"2.1", "Fornecedores", "21", entity.BusinessTypeLiability, "-800"},
		{"3", "Receitas", "3", entity.BusinessTypeRevenue, "-500"},
		{"3.1", "Vendas", "31", entity.BusinessTypeRevenue, "-500"},
		{"4", "Custos e Despesas", "4", entity.BusinessTypeExpense, "300"},
		{"4.1", "Aluguel", "41", entity.BusinessTypeExpense, "300"},
	}

	tb := entity.NewTrialBalance(f.companyID, 2024, 1)
	tb.Status = entity.TrialBalanceStatusParametrized
	require.NoError(t, f.db.Create(model.TrialBalanceFromEntity(tb)).Error)

	for _, row := range chart {
		n := entity.NewChartNode(row.code, row.name, row.businessType)
		require.NoError(t, chartRepo.Create(ctx, n))
		f.nodes[row.code] = n
		require.NoError(t, linkRepo.Create(ctx, entity.NewParametrizationLink(f.companyID, n.ID, []string{row.tbCode})))
		require.NoError(t, f.db.Create(model.TrialBalanceLineFromEntity(&entity.TrialBalanceLine{
			CompanyID:      f.companyID,
			Year:           2024,
			Month:          1,
			Code:           row.tbCode,
			Name:           row.name,
			OpeningBalance: decimal.Zero,
			ClosingBalance: decimal.RequireFromString(row.closing),
		})).Error)
	}
}

func (f *controllerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func (f *controllerFixture) url(suffix string) string {
	return "/api/v1/companies/" + f.companyID.String() + "/parametrization" + suffix
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestParametrizationController_RunValidation(t *testing.T) {
	t.Run("consistent month", func(t *testing.T) {
		f := newControllerFixture(t, true)

		rec := f.do(t, http.MethodGet, f.url("/validation?year=2024"), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp dto.ValidationRunResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []int{1}, resp.Months)
		assert.True(t, resp.Summary.AllConsistent)
		assert.Equal(t, 4, resp.Summary.MothersChecked)
		require.Len(t, resp.BalanceFindings, 1)
		assert.Equal(t, "200.00", resp.BalanceFindings[0].PatrimonialDelta)
		assert.Equal(t, "200.00", resp.BalanceFindings[0].ResultDelta)
		assert.False(t, resp.Cached)
	})

	t.Run("inconsistent mother", func(t *testing.T) {
		f := newControllerFixture(t, true)
		require.NoError(t, f.db.Model(&model.TrialBalanceLineModel{}).
			Where("company_id = ? AND code = ?", f.companyID, "1").
			Update("closing_balance", decimal.RequireFromString("1200")).Error)

		rec := f.do(t, http.MethodGet, f.url("/validation?year=2024&refresh=true"), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp dto.ValidationRunResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Summary.AllConsistent)
		assert.Equal(t, 1, resp.Summary.Inconsistencies)
		assert.Equal(t, 1, resp.Summary.BalanceInconsistencies)

		var root *dto.FindingResponse
		for i := range resp.Findings {
			if resp.Findings[i].Code == "1" {
				root = &resp.Findings[i]
			}
		}
		require.NotNil(t, root)
		assert.Equal(t, "inconsistent", root.Status)
		assert.Equal(t, "1200.00", root.ParametrizedValue)
		assert.Equal(t, "1000.00", root.CalculatedValue)
		assert.Equal(t, "200.00", root.AbsoluteDifference)
		require.Len(t, root.Children, 1)
		assert.Equal(t, "1.1", root.Children[0].Code)
	})

	t.Run("year without eligible months", func(t *testing.T) {
		f := newControllerFixture(t, true)

		rec := f.do(t, http.MethodGet, f.url("/validation?year=2023"), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.ValidationRunResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Months)
		assert.Empty(t, resp.Findings)
		assert.True(t, resp.Summary.AllConsistent)
	})

	t.Run("empty chart of accounts", func(t *testing.T) {
		f := newControllerFixture(t, false)
		tb := entity.NewTrialBalance(f.companyID, 2024, 1)
		tb.Status = entity.TrialBalanceStatusParametrizing
		require.NoError(t, f.db.Create(model.TrialBalanceFromEntity(tb)).Error)

		rec := f.do(t, http.MethodGet, f.url("/validation?year=2024"), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PRM-020004", decodeError(t, rec).Code)
	})

	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{"missing year", "/validation", "PRM-010002"},
		{"year out of range", "/validation?year=1800", "PRM-010002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newControllerFixture(t, false)
			rec := f.do(t, http.MethodGet, f.url(tt.path), nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}

	t.Run("invalid company id", func(t *testing.T) {
		f := newControllerFixture(t, false)
		rec := f.do(t, http.MethodGet, "/api/v1/companies/not-a-uuid/parametrization/validation?year=2024", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "PRM-010001", decodeError(t, rec).Code)
	})
}

func TestParametrizationController_GetStatement(t *testing.T) {
	f := newControllerFixture(t, true)

	t.Run("lists signed values in code order", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, f.url("/statements?year=2024&month=1"), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp dto.StatementResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "parametrizado", resp.Status)
		require.Len(t, resp.Lines, 8)
		assert.Equal(t, "1", resp.Lines[0].Code)
		assert.Equal(t, "1.1", resp.Lines[1].Code)
		assert.Equal(t, "2", resp.Lines[2].Code)
		assert.Equal(t, "credit", resp.Lines[2].Nature)
		assert.Equal(t, "800.00", resp.Lines[2].Value)
		assert.Equal(t, 2, resp.Lines[7].Level)
	})

	t.Run("month without trial balance", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, f.url("/statements?year=2024&month=2"), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PRM-020003", decodeError(t, rec).Code)
	})

	t.Run("invalid month", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, f.url("/statements?year=2024&month=13"), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "PRM-010003", decodeError(t, rec).Code)
	})
}

func TestParametrizationController_Links(t *testing.T) {
	f := newControllerFixture(t, true)

	t.Run("list", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, f.url("/links"), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.LinkListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Links, 8)
		require.NotNil(t, resp.Links[0].ChartNode)
		assert.Equal(t, "1", resp.Links[0].ChartNode.Code)
		assert.Equal(t, []string{"1"}, resp.Links[0].TrialBalanceCodes)
	})

	t.Run("create rejects a mapped code", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, f.url("/links"), dto.CreateLinkRequest{
			ChartNodeID:       f.nodes["4.1"].ID.String(),
			TrialBalanceCodes: []string{"11", "42"},
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "PRM-020002", decodeError(t, rec).Code)
	})

	t.Run("create rejects an unknown node", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, f.url("/links"), dto.CreateLinkRequest{
			ChartNodeID:       uuid.NewString(),
			TrialBalanceCodes: []string{"42"},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PRM-020001", decodeError(t, rec).Code)
	})

	t.Run("create rejects an invalid body", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, f.url("/links"), map[string]any{"chart_node_id": "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "PRM-010005", decodeError(t, rec).Code)
	})

	var created dto.LinkResponse
	t.Run("create", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, f.url("/links"), dto.CreateLinkRequest{
			ChartNodeID:       f.nodes["4.1"].ID.String(),
			TrialBalanceCodes: []string{" 42 ", "43", "42"},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, []string{"42", "43"}, created.TrialBalanceCodes)
		require.NotNil(t, created.ChartNode)
		assert.Equal(t, "4.1", created.ChartNode.Code)
	})

	t.Run("delete", func(t *testing.T) {
		require.NotEmpty(t, created.ID)

		rec := f.do(t, http.MethodDelete, f.url("/links/"+created.ID), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = f.do(t, http.MethodDelete, f.url("/links/"+created.ID), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PRM-020005", decodeError(t, rec).Code)
	})

	t.Run("delete rejects an invalid id", func(t *testing.T) {
		rec := f.do(t, http.MethodDelete, f.url("/links/abc"), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthController_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		db         func() bool
		cache      func() bool
		wantStatus string
		wantCache  string
	}{
		{"all up", func() bool { return true }, func() bool { return true }, "ok", "connected"},
		{"cache disabled", func() bool { return true }, nil, "ok", "disabled"},
		{"cache down", func() bool { return true }, func() bool { return false }, "ok", "disconnected"},
		{"database down", func() bool { return false }, nil, "degraded", "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", NewHealthController(tt.db, tt.cache).Check)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantCache, resp.Cache)
		})
	}
}
