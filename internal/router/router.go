package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"procura/internal/domain"
	"procura/internal/handler"
	"procura/internal/middleware"
	"procura/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	analysisH *handler.AnalysisHandler,
	tokenH *handler.TokenHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))

	analyses := v1.Group("/analyses")
	analyses.POST("", analysisH.Upload)
	analyses.GET("", analysisH.List)
	analyses.GET("/:id", analysisH.GetByID)
	analyses.GET("/:id/offers.csv", analysisH.ExportOffersCSV)
	analyses.GET("/:id/report.xlsx", analysisH.ExportReport)
	analyses.POST("/:id/reanalyze", analysisH.Reanalyze)
	analyses.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), analysisH.Delete)

	v1.POST("/tokens", middleware.RequireRole(domain.RoleAdmin), tokenH.Issue)

	return r
}
