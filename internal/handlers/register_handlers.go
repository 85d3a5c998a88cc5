package handlers

import (
	"github.com/SscSPs/repayment_tracker/cmd/docs"
	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/middleware"
	"github.com/SscSPs/repayment_tracker/internal/platform/config"
	"github.com/SscSPs/repayment_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	checks map[string]HealthCheck,
	posthogClient *utils.PosthogClientWrapper,
) {
	registerHealthRoutes(r, checks)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	var parserOpts []jwt.ParserOption
	if cfg.JWTIssuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.JWTIssuer))
	}

	// Apply AuthMiddleware to the entire v1 group; analytics run after auth so the user id is known
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, parserOpts...),
		middleware.PosthogMiddleware(posthogClient),
	)

	RegisterStatusRoutes(v1, service.Status)
	RegisterApprovalRoutes(v1, service.Approval, posthogClient)
	RegisterActivityRoutes(v1, service.Activity)
	RegisterSummaryRoutes(v1, service.Summary)
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
