package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/devenkhatri/billing-monk-sub000/cmd/docs"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/middleware"
	"github.com/devenkhatri/billing-monk-sub000/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check stays outside the rate limited group so load balancer
	// probes never get throttled.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Per-IP rate limit in front of the whole API. The sheet store has its
	// own quota budget; this keeps one misbehaving client from burning it.
	rateLimiter := limiter.New(limitermem.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  cfg.RateLimitPerMinute,
	})

	v1 := r.Group("/api/v1", middleware.ActorMiddleware(), middleware.RateLimit(rateLimiter))

	registerClientRoutes(v1, services.Client)
	registerInvoiceRoutes(v1, services.Invoice, services.Recurring)
	registerPaymentRoutes(v1, services.Payment)
	registerTemplateRoutes(v1, services.Template)
	registerProjectRoutes(v1, services.Project)
	registerTaskRoutes(v1, services.Task)
	registerTimeEntryRoutes(v1, services.TimeEntry)
	registerActivityRoutes(v1, services.Activity)
	registerRecurringRoutes(v1, services.Recurring)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
