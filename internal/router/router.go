package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/handler"
	"github.com/vitaworks/vitae-backend/internal/middleware"
	"github.com/vitaworks/vitae-backend/internal/response"
	"github.com/vitaworks/vitae-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Resume      *handler.ResumeHandler
	Enhancement *handler.EnhancementHandler
	CoverLetter *handler.CoverLetterHandler
	Export      *handler.ExportHandler
	Setting     *handler.SettingHandler
	System      *handler.SystemHandler
	WS          *handler.WSHandler
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
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health checks. The /_stcore/health alias keeps existing container
	// healthcheck probes working.
	router.GET("/health", handlers.System.Health)
	router.GET("/_stcore/health", handlers.System.Health)

	// Rate limiter for the model-backed enqueue routes. The pipeline is
	// throttled internally; this guards the queue itself.
	generateLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
		auth.POST("/admin/logout", middleware.RequireAdminJWT(authService), handlers.Auth.AdminLogout)
	}

	// ─── 2. Resume Group (Public) ──────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.POST("/resumes", handlers.Resume.Upload)
		api.GET("/resumes", handlers.Resume.List)
		api.GET("/resumes/search", handlers.Resume.Search)
		api.GET("/resumes/:id", handlers.Resume.Get)
		api.DELETE("/resumes/:id", handlers.Resume.Delete)

		// Enhancement pipeline
		api.POST("/resumes/:id/enhance", generateLimiter.Middleware(), handlers.Enhancement.Enqueue)
		api.GET("/resumes/:id/enhancement", handlers.Enhancement.GetResult)
		api.GET("/resumes/:id/jobs", handlers.Enhancement.ListJobs)
		api.GET("/jobs/:id", handlers.Enhancement.GetJob)

		// Cover letters
		api.POST("/resumes/:id/cover-letters", generateLimiter.Middleware(), handlers.CoverLetter.Enqueue)
		api.GET("/resumes/:id/cover-letters", handlers.CoverLetter.GetLatest)
		api.GET("/resumes/:id/cover-letters/history", handlers.CoverLetter.History)

		// Export
		api.GET("/resumes/:id/export/txt", handlers.Export.ExportTXT)
		api.GET("/resumes/:id/export/pdf", handlers.Export.ExportPDF)
	}

	// ─── 3. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/jobs/stream", handlers.WS.JobProgressStream)
	}

	// ─── 4. Public Settings ────────────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		// Public settings change rarely; let clients cache them briefly.
		publicAPI.GET("/settings", middleware.CacheControl(60), handlers.Setting.GetPublicSettings)
	}

	// ─── 5. Admin Group (JWT + Session) ────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAdminJWT(authService),
		middleware.CheckAdminSession(authService),
	)
	{
		// System Monitoring
		adminAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)

		// App Settings Routes
		settingsGroup := adminAPI.Group("/settings")
		{
			settingsGroup.GET("", handlers.Setting.GetAllSettings)
			settingsGroup.PUT("", handlers.Setting.UpdateSettings)
		}
	}

	return router
}
