// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealsync/backend/config"
	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/application/usecase/catalog"
	"github.com/mealsync/backend/internal/application/usecase/plan"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/mealplan"
	"github.com/mealsync/backend/internal/infra/scheduler"
	"github.com/mealsync/backend/internal/infra/server/router"
	"github.com/mealsync/backend/internal/integration/adapters"
	"github.com/mealsync/backend/internal/integration/cache"
	"github.com/mealsync/backend/internal/integration/email"
	"github.com/mealsync/backend/internal/integration/email/templates"
	"github.com/mealsync/backend/internal/integration/entrypoint/controller"
	"github.com/mealsync/backend/internal/integration/entrypoint/middleware"
	"github.com/mealsync/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	PlanRepository  adapter.PlanRepository
	TokenService    adapter.SessionTokenService
	EmailWorker     *email.Worker
	DigestScheduler *scheduler.DigestScheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil to run without the plan cache and sender may be nil
// to run without the email worker.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	mealCatalog *entity.Catalog,
	sender adapter.EmailSender,
) (*Injector, error) {
	aggregator := mealplan.NewAggregator(mealCatalog)

	// Create repositories
	var planRepo adapter.PlanRepository = persistence.NewPlanRepository(db)
	if redisClient != nil {
		planRepo = cache.NewCachedPlanRepository(planRepo, cache.NewPlanCache(redisClient, cfg.Redis.CacheTTL))
	}
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	tokenService := adapters.NewSessionTokenService(cfg.Session.Secret, cfg.Session.TokenExpiry)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	// Create catalog use cases
	getCatalogUseCase := catalog.NewGetCatalogUseCase(aggregator)
	listOptionsUseCase := catalog.NewListOptionsUseCase(aggregator)

	// Create plan use cases
	createSessionUseCase := plan.NewCreateSessionUseCase(planRepo, tokenService, aggregator)
	getPlanUseCase := plan.NewGetPlanUseCase(planRepo)
	getWeekBoardUseCase := plan.NewGetWeekBoardUseCase(planRepo, aggregator)
	getSummaryUseCase := plan.NewGetSummaryUseCase(planRepo, aggregator)
	selectWeekUseCase := plan.NewSelectWeekUseCase(planRepo, aggregator)
	setSelectionUseCase := plan.NewSetSelectionUseCase(planRepo, aggregator)
	toggleMainMealUseCase := plan.NewToggleMainMealUseCase(planRepo, aggregator)
	updateBudgetUseCase := plan.NewUpdateBudgetUseCase(planRepo, aggregator)
	resetBudgetUseCase := plan.NewResetBudgetUseCase(planRepo, aggregator)
	updateDigestUseCase := plan.NewUpdateDigestUseCase(planRepo)
	sendDigestUseCase := plan.NewSendDigestUseCase(planRepo, aggregator, emailService)
	queueWeeklyDigestsUseCase := plan.NewQueueWeeklyDigestsUseCase(planRepo, aggregator, emailService)

	// Create controllers
	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	catalogController := controller.NewCatalogController(getCatalogUseCase, listOptionsUseCase)
	sessionController := controller.NewSessionController(createSessionUseCase)
	planController := controller.NewPlanController(
		getPlanUseCase,
		getWeekBoardUseCase,
		getSummaryUseCase,
		selectWeekUseCase,
		setSelectionUseCase,
		toggleMainMealUseCase,
	)
	budgetController := controller.NewBudgetController(updateBudgetUseCase, resetBudgetUseCase)
	digestController := controller.NewDigestController(updateDigestUseCase, sendDigestUseCase)

	// Create middleware
	// Test environments start many sessions from one address.
	limit := cfg.Session.RateLimit
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		limit = 1000
	}
	sessionRateLimiter := middleware.NewRateLimiter(limit, cfg.Session.RateWindow, middleware.WithRedis(redisClient))
	digestRateLimiter := middleware.NewRateLimiter(cfg.Digest.SendLimit, cfg.Digest.SendWindow,
		middleware.WithRedis(redisClient),
		middleware.WithKey(middleware.PlanKey("digest")),
		middleware.WithRejection("Too many digests sent. Please try again later.", string(domainerror.ErrCodeDigestRateLimited)),
		middleware.EnforceInTest(),
	)
	sessionMiddleware := middleware.NewSessionMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		catalogController,
		sessionController,
		planController,
		budgetController,
		digestController,
		sessionRateLimiter,
		digestRateLimiter,
		sessionMiddleware,
	)

	injector := &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		PlanRepository:  planRepo,
		TokenService:    tokenService,
		DigestScheduler: scheduler.NewDigestScheduler(cfg.Digest.Cron, queueWeeklyDigestsUseCase).
			WithCleanup(cfg.Digest.CleanupCron, cfg.Digest.RetentionDays, emailQueueRepo),
	}

	if sender != nil {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		injector.EmailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	}

	return injector, nil
}
