package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/codeprep/codeprep-backend/internal/config"
	"github.com/codeprep/codeprep-backend/internal/handler"
	"github.com/codeprep/codeprep-backend/internal/middleware"
	"github.com/codeprep/codeprep-backend/internal/response"
	"github.com/codeprep/codeprep-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Problem   *handler.ProblemHandler
	Progress  *handler.ProgressHandler
	User      *handler.UserHandler
	Media     *handler.MediaHandler
	Execution *handler.ExecutionHandler
	Assistant *handler.AssistantHandler
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

	// Serve uploaded avatars statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

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
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Catalog Group (Public) ─────────────────────────────────────
	// Problem reads are unauthenticated; redaction of solutions and hidden
	// test cases happens in the catalog service regardless of caller.
	problems := router.Group("/api/v1/problems")
	{
		problems.GET("/:course_id", handlers.Problem.ListProblems)
		problems.GET("/:course_id/:problem_id", handlers.Problem.GetProblem)
	}

	// ─── 3. Authenticated Group (JWT + Active Session) ─────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireAuth(authService),
		middleware.CheckSession(authService),
	)
	{
		// Progress tracking
		api.GET("/progress/:course_id", handlers.Progress.GetCourseProgress)
		api.POST("/progress/:course_id/problem/:problem_id", handlers.Progress.MarkCompleted)
		api.POST("/progress/batch", handlers.Progress.GetBatchProgress)

		// Profile
		api.GET("/users/me", handlers.User.GetProfile)
		api.PUT("/users/me", handlers.User.UpdateProfile)

		// Avatar upload
		api.POST("/media/upload", handlers.Media.Upload)

		// Third-party proxies
		api.POST("/execute", handlers.Execution.Execute)
		api.POST("/assistant", handlers.Assistant.Generate)
		api.POST("/problem-help", handlers.Assistant.ProblemHelp)
	}

	return router
}
