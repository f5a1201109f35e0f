package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Version is reported by the health endpoint.
const Version = "v1.0.0"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe box API is running",
		"version": Version,
	})
}

// RegisterRoutes registers the health check and the /api/v1 routes on router.
// createLimiter may be nil, in which case recipe creation is not rate limited.
func RegisterRoutes(router *gin.Engine, store service.IRecipeStore, log *logger.Logger, createLimiter *middleware.RateLimiter) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	v1 := router.Group("/api/v1")
	NewRecipeHandler(store, log).RegisterRoutes(v1, createLimiter)
}
