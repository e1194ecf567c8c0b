// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/accounting-office/backend/config"
	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/application/usecase/parametrization"
	"github.com/accounting-office/backend/internal/infra/server/router"
	"github.com/accounting-office/backend/internal/integration/adapters"
	"github.com/accounting-office/backend/internal/integration/cache"
	"github.com/accounting-office/backend/internal/integration/entrypoint/controller"
	"github.com/accounting-office/backend/internal/integration/entrypoint/middleware"
	"github.com/accounting-office/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	TokenService adapter.TokenService

	RunValidation *parametrization.RunValidationUseCase
	GetStatement  *parametrization.GetStatementUseCase
	ImportChart   *parametrization.ImportChartUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// db and redisClient may be nil; without a database only /health is served.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	policy, err := cfg.Validation.Policy()
	if err != nil {
		return nil, err
	}

	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	var validationCache adapter.ValidationCache
	var cacheHealthChecker func() bool
	if redisClient != nil {
		validationCache = cache.NewValidationCache(redisClient)
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}

	dbHealthChecker := func() bool { return false }
	if db != nil {
		dbHealthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)

	injector := &Injector{
		Config:       cfg,
		DB:           db,
		TokenService: tokenService,
	}

	if db == nil {
		injector.Router = router.NewRouter(healthController, nil, nil, nil)
		return injector, nil
	}

	// Create repositories
	chartRepo := persistence.NewChartOfAccountsRepository(db)
	parametrizationRepo := persistence.NewParametrizationRepository(db)
	trialBalanceRepo := persistence.NewTrialBalanceRepository(db)

	// Create parametrization use cases
	injector.RunValidation = parametrization.NewRunValidationUseCase(chartRepo, parametrizationRepo, trialBalanceRepo, validationCache, policy)
	injector.GetStatement = parametrization.NewGetStatementUseCase(chartRepo, parametrizationRepo, trialBalanceRepo, policy)
	injector.ImportChart = parametrization.NewImportChartUseCase(chartRepo, validationCache)
	listLinksUseCase := parametrization.NewListLinksUseCase(chartRepo, parametrizationRepo)
	createLinkUseCase := parametrization.NewCreateLinkUseCase(chartRepo, parametrizationRepo, validationCache)
	deleteLinkUseCase := parametrization.NewDeleteLinkUseCase(parametrizationRepo, validationCache)

	parametrizationController := controller.NewParametrizationController(
		injector.RunValidation,
		injector.GetStatement,
		listLinksUseCase,
		createLinkUseCase,
		deleteLinkUseCase,
	)

	// Create middleware
	var validationRateLimiter *middleware.RateLimiter
	if cfg.Validation.RunsPerMinute > 0 {
		validationRateLimiter = middleware.NewRateLimiterWithConfig(cfg.Validation.RunsPerMinute, time.Minute)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	injector.Router = router.NewRouter(healthController, parametrizationController, validationRateLimiter, authMiddleware)
	return injector, nil
}
