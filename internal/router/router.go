package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	store service.IRecipeStore,
	log *logger.Logger,
	createLimiter *middleware.RateLimiter,
) *gin.Engine {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.ErrorHandler(log))

	api.RegisterRoutes(router, store, log, createLimiter)

	return router
}
