package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/courseval/courseval-backend/internal/config"
	"github.com/courseval/courseval-backend/internal/handler"
	"github.com/courseval/courseval-backend/internal/middleware"
	"github.com/courseval/courseval-backend/internal/response"
	"github.com/courseval/courseval-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Course     *handler.CourseHandler
	Evaluation *handler.EvaluationHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/register", handlers.Auth.Register)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Catalog Group (Public Browse) ──────────────────────────────
	catalog := router.Group("/api/v1")
	{
		catalog.GET("/courses", handlers.Course.List)
		catalog.GET("/courses/:id", handlers.Course.Get)
		catalog.GET("/courses/:id/evaluations", handlers.Evaluation.ListByCourse)
	}

	// ─── 3. Evaluation Group (JWT) ─────────────────────────────────────
	evaluations := router.Group("/api/v1/evaluations")
	evaluations.Use(middleware.RequireAuth(authService))
	{
		evaluations.GET("/:id", handlers.Evaluation.Get)
		evaluations.POST("", handlers.Evaluation.Create)
		evaluations.DELETE("/:id", handlers.Evaluation.Delete)
	}

	// ─── 4. Course Management Group (JWT + Admin) ──────────────────────
	courseMgmt := router.Group("/api/v1/courses")
	courseMgmt.Use(middleware.RequireAuth(authService), middleware.RequireAdmin())
	{
		courseMgmt.POST("", handlers.Course.Create)
		courseMgmt.PUT("/:id", handlers.Course.Update)
		courseMgmt.DELETE("/:id", handlers.Course.Delete)
	}

	return router
}
