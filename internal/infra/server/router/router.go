// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/integration/entrypoint/controller"
	"github.com/accounting-office/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                    *gin.Engine
	healthController          *controller.HealthController
	parametrizationController *controller.ParametrizationController
	validationRateLimiter     *middleware.RateLimiter
	authMiddleware            *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
// parametrizationController may be nil when the database is unavailable.
func NewRouter(
	healthController *controller.HealthController,
	parametrizationController *controller.ParametrizationController,
	validationRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:          healthController,
		parametrizationController: parametrizationController,
		validationRateLimiter:     validationRateLimiter,
		authMiddleware:            authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.parametrizationController == nil || r.authMiddleware == nil {
		return
	}

	parametrization := v1.Group("/companies/:company_id/parametrization")
	parametrization.Use(r.authMiddleware.Authenticate())
	{
		read := r.authMiddleware.RequireScope(adapter.ScopeBookkeepingRead)
		write := r.authMiddleware.RequireScope(adapter.ScopeBookkeepingWrite)

		validation := []gin.HandlerFunc{read}
		if r.validationRateLimiter != nil {
			validation = append(validation, r.validationRateLimiter.Middleware())
		}
		validation = append(validation, r.parametrizationController.RunValidation)

		parametrization.GET("/validation", validation...)
		parametrization.GET("/statements", read, r.parametrizationController.GetStatement)
		parametrization.GET("/links", read, r.parametrizationController.ListLinks)
		parametrization.POST("/links", write, r.parametrizationController.CreateLink)
		parametrization.DELETE("/links/:id", write, r.parametrizationController.DeleteLink)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
