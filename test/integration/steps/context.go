// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/accounting-office/backend/config"
	"github.com/accounting-office/backend/internal/infra/dependency"
	"github.com/accounting-office/backend/internal/integration/persistence/model"
	"github.com/accounting-office/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	accessToken string

	companies  map[string]uuid.UUID
	chartNodes map[string]uuid.UUID
	lastLinkID uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testServer *httptest.Server

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"chart_accounts":        &model.ChartAccountModel{},
			"parametrization_links": &model.ParametrizationLinkModel{},
			"trial_balances":        &model.TrialBalanceModel{},
			"trial_balance_lines":   &model.TrialBalanceLineModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Auth steps
	ctx.Given(`^I am authenticated with scope "([^"]*)"$`, test.iAmAuthenticatedWithScope)
	ctx.Given(`^I am authenticated with an expired token$`, test.iAmAuthenticatedWithAnExpiredToken)

	// Bookkeeping data steps
	ctx.Given(`^the chart of accounts:$`, test.theChartOfAccounts)
	ctx.Given(`^company "([^"]*)" links the accounts:$`, test.companyLinksTheAccounts)
	ctx.Given(`^company "([^"]*)" has a "([^"]*)" trial balance for (\d{4})-(\d{2}) with lines:$`, test.companyHasATrialBalanceWithLines)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database and cache assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the validation cache should hold (\d+) reports?$`, test.theValidationCacheShouldHoldReports)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.companies = make(map[string]uuid.UUID)
	t.chartNodes = make(map[string]uuid.UUID)
	t.lastLinkID = uuid.Nil

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.JWT.Secret = testJWTSecret
		cfg.Validation.RunsPerMinute = 0

		injector, err := dependency.NewInjector(cfg, t.db.DbConn, mock.NewRedis())
		if err != nil {
			startErr = err
			return
		}
		testServer = httptest.NewServer(injector.Router.Setup("test"))
	})
	if testServer == nil {
		return fmt.Errorf("test server is not running: %v", startErr)
	}
	t.uri = testServer.URL
	return nil
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

// company returns the ID bound to a scenario-local company alias.
func (t *testContext) company(alias string) uuid.UUID {
	id, ok := t.companies[alias]
	if !ok {
		id = uuid.New()
		t.companies[alias] = id
	}
	return id
}
