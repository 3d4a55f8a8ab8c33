package handlers

import (
	"github.com/SscSPs/dental_clinic_app/cmd/docs"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/SscSPs/dental_clinic_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// loginLimiter may be nil to disable sign-in throttling.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, loginLimiter)

	setupSwaggerRoutes(r, cfg)
}

// RegisterConfigErrorRoutes is used when required configuration is missing: the health
// check keeps answering and every API route reports what is missing.
func RegisterConfigErrorRoutes(r *gin.Engine, missing []string) {
	r.GET("/health", getHealth)
	r.Any("/api/*path", middleware.ConfigGuard(missing))
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")

	// Public
	registerAuthRoutes(v1, loginLimiter, services)

	// Token required
	authed := v1.Group("", middleware.AuthMiddleware(services.Auth))
	registerSessionRoutes(authed, services)

	// Token required, and auditors need an active read-only audit session
	gated := authed.Group("", middleware.AuditorGate(services.Audit))
	registerCashRegisterRoutes(gated, services.CashRegister, cfg.DiscrepancyTolerance)
	registerProfileRoutes(gated, services.Profile)
	registerAuditRoutes(gated, services.Audit)
	registerPaymentRoutes(gated, services.Payment, cfg.ClinicLocation)
	registerReportingRoutes(gated, services.Reporting)
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
