package routes

import (
	"context"
	"net/http"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	"github.com/MohdOwais22/subaku-backend/internal/delivery/http/handler"
	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/httpclient"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	"github.com/MohdOwais22/subaku-backend/internal/middleware"
	assetUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/asset"
	designUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/design"
	productUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/product"
	userUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// EventPublisher satisfies both the product and the user event ports.
type EventPublisher interface {
	productUsecase.EventPublisher
	userUsecase.EventPublisher
}

type HealthCheck struct {
	Name  string
	Check func() error
}

// Dependencies are the adapters chosen at startup. Orphans, Cache and Events
// are optional and must be left nil (not typed nil) when disabled.
type Dependencies struct {
	Products domainProduct.Repository
	Users    domainUser.Repository
	Store    domainAsset.Store
	Orphans  domainAsset.OrphanQueue
	Cache    productUsecase.Cache
	Events   EventPublisher
	Mailer   userUsecase.Mailer
	Checks   []HealthCheck
}

// SetupRoutes wires the use cases and returns the engine. Background jobs are
// started on ctx and stop when it is cancelled.
func SetupRoutes(ctx context.Context, cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.Server.IsProduction()))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes))
	router.Use(middleware.NewRateLimiter(ctx, cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst).Middleware())

	router.GET("/health", healthHandler(deps.Checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var productEvents productUsecase.EventPublisher
	var userEvents userUsecase.EventPublisher
	if deps.Events != nil {
		productEvents, userEvents = deps.Events, deps.Events
	}

	images := assetUsecase.NewManager(deps.Store, deps.Orphans, assetUsecase.NewRetryPolicy(cfg.Upload))

	sessions := userUsecase.NewSessionIssuer(cfg.JWT)
	userService := userUsecase.NewService(deps.Users, images, sessions, deps.Mailer, userEvents, cfg)
	userHandler := handler.NewUserHandler(userService, cfg)

	productService := productUsecase.NewService(deps.Products, images, deps.Cache, productEvents)
	productHandler := handler.NewProductHandler(productService)

	generator := httpclient.New(httpclient.DefaultConfig("design-generator"))
	fetcher := httpclient.New(httpclient.DefaultConfig("design-proxy"))
	designService := designUsecase.NewService(generator, fetcher, cfg.Design)
	designHandler := handler.NewDesignHandler(designService)

	authLimit := middleware.NewRateLimiter(ctx, cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst).Middleware()
	authenticated := middleware.AuthMiddleware(sessions, userService)

	v1 := router.Group("/api/v1")
	{
		productHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1, authLimit)
		designHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(authenticated)
		{
			userHandler.RegisterProfileRoutes(protected)
			productHandler.RegisterUserRoutes(protected)
		}

		admin := v1.Group("/admin")
		admin.Use(authenticated, middleware.AdminOnly())
		{
			productHandler.RegisterAdminRoutes(admin)
			userHandler.RegisterAdminRoutes(admin)
		}
	}

	if cfg.ResetPassword.CleanupInterval > 0 {
		go userService.StartResetTokenCleanupJob(ctx, cfg.ResetPassword.CleanupInterval)
	}
	if deps.Orphans != nil && cfg.Redis.OrphanSweepEvery > 0 {
		sweeper := assetUsecase.NewSweeper(deps.Store, deps.Orphans, cfg.Redis.OrphanSweepBatches)
		go sweeper.Start(ctx, cfg.Redis.OrphanSweepEvery)
	}

	logger.Info("All routes initialized")
	return router
}

func healthHandler(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, check := range checks {
			if err := check.Check(); err != nil {
				logger.Warn("Health check failed",
					zap.String("dependency", check.Name),
					zap.Error(err),
				)
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": check.Name + " connection failed",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	}
}
