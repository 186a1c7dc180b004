// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mealsync/backend/internal/integration/entrypoint/controller"
	"github.com/mealsync/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	catalogController  *controller.CatalogController
	sessionController  *controller.SessionController
	planController     *controller.PlanController
	budgetController   *controller.BudgetController
	digestController   *controller.DigestController
	sessionRateLimiter *middleware.RateLimiter
	digestRateLimiter  *middleware.RateLimiter
	sessionMiddleware  *middleware.SessionMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	catalogController *controller.CatalogController,
	sessionController *controller.SessionController,
	planController *controller.PlanController,
	budgetController *controller.BudgetController,
	digestController *controller.DigestController,
	sessionRateLimiter *middleware.RateLimiter,
	digestRateLimiter *middleware.RateLimiter,
	sessionMiddleware *middleware.SessionMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		catalogController:  catalogController,
		sessionController:  sessionController,
		planController:     planController,
		budgetController:   budgetController,
		digestController:   digestController,
		sessionRateLimiter: sessionRateLimiter,
		digestRateLimiter:  digestRateLimiter,
		sessionMiddleware:  sessionMiddleware,
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
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", r.catalogController.Get)
			catalog.GET("/options", r.catalogController.Options)
		}

		v1.POST("/sessions", r.sessionRateLimiter.Middleware(), r.sessionController.Create)

		// Plan routes (require a session token)
		plan := v1.Group("/plan")
		plan.Use(r.sessionMiddleware.RequireSession())
		{
			plan.GET("", r.planController.Get)
			plan.GET("/summary", r.planController.Summary)
			plan.PUT("/selected-week", r.planController.SelectWeek)
			plan.GET("/weeks/:week", r.planController.GetWeek)
			plan.PUT("/weeks/:week/days/:day/meals/:meal_type", r.planController.SetSelection)
			plan.POST("/weeks/:week/days/:day/toggle", r.planController.ToggleMainMeal)

			plan.PUT("/budgets/:key", r.budgetController.Update)
			plan.POST("/budgets/:key/reset", r.budgetController.Reset)

			plan.PUT("/digest", r.digestController.Update)
			plan.POST("/digest/send", r.digestRateLimiter.Middleware(), r.digestController.Send)
		}
	}
}
