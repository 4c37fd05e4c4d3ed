package router

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/api"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth       *api.AuthHandler
	Generation *api.GenerationHandler
	Sessions   *api.SessionHandler
	Shares     *api.ShareHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, validator middleware.TokenValidator, redisClient *redis.Client, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Share links work without an account
	v1.GET("/share/:id", h.Shares.Resolve)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		generate := protected.Group("/recipes")
		generate.Use(middleware.NewGenerationRateLimiter(redisClient).RateLimitMiddleware())
		{
			generate.POST("/generate", h.Generation.Generate)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("", h.Sessions.List)
			sessions.GET("/:id", h.Sessions.Get)
			sessions.PATCH("/:id/selection", h.Sessions.UpdateSelection)
			sessions.POST("/:id/share", h.Sessions.Share)
		}
	}

	return router
}
