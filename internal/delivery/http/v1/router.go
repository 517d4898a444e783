package v1

import (
	"net/http"

	"go-careers-cms/internal/delivery/http/middleware"
	"go-careers-cms/internal/delivery/http/response"
	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/security"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	CareerUC      domain.CareerUsecase
	ApplicationUC domain.ApplicationUsecase
	ServiceUC     domain.ServiceUsecase
	StatisticsUC  domain.StatisticsUsecase
	SignInSecret  string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Form fields are held in memory during parsing; cap them at the same
	// limit as files so oversized fields surface as 413, not the 32MB default.
	r.MaxMultipartMemory = security.MaxUploadSize

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware())

	v1 := r.Group("/api/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Authenticated routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.SignInSecret, deps.AuthUC))

	// Staff routes (admin and hr)
	staff := protected.Group("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHR))

	// Admin-only routes
	admin := protected.Group("", middleware.RequireRoles(domain.RoleAdmin))

	NewAuthHandler(v1, protected, deps.AuthUC)
	NewApplicationHandler(v1, staff, deps.ApplicationUC)
	NewCareerHandler(v1, admin, deps.CareerUC)
	NewServiceHandler(v1, admin, deps.ServiceUC)
	NewStatisticsHandler(staff, deps.StatisticsUC)

	return r
}
