package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asksource/admin-api/internal/api/handler"
	"github.com/asksource/admin-api/internal/api/middleware"
	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/service"
	"github.com/asksource/admin-api/internal/infrastructure/config"
	mongodb "github.com/asksource/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/asksource/admin-api/internal/infrastructure/db/redis"
	"github.com/asksource/admin-api/internal/infrastructure/notify"
	"github.com/asksource/admin-api/internal/infrastructure/rag"
)

// NewRouter builds the Echo instance with all routes registered. The context
// bounds the lifetime of the notification workers.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("asksource"))

	// --- Infrastructure ---
	userRepo := mongodb.NewUserRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)
	ragClient := rag.NewClient(rag.Config{
		BaseURL:         cfg.RAG.BaseURL,
		Timeout:         cfg.RAG.Timeout,
		ProjectsTimeout: cfg.RAG.ProjectsTimeout,
	}, log)

	mailer, err := notify.NewMailer(notify.MailerConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		AdminEmail: cfg.SMTP.AdminEmail,
	}, log)
	if err != nil {
		return nil, err
	}
	notifier := notify.NewDispatcher(0, mailer, log)
	notifier.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, notifier, throttle,
		cfg.JWTSecret, cfg.JWTTTL, cfg.ActivationTokenTTL, cfg.ServerURL, log)
	dashboardService := service.NewDashboardService(ragClient, userRepo, log)
	settingsService := service.NewSettingsService(userRepo, log)
	projectService := service.NewProjectService(ragClient, log)
	maintenanceService := service.NewMaintenanceService(userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	generalHandler := handler.NewGeneralHandler(userRepo)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	projectHandler := handler.NewProjectHandler(projectService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/activate/:token", authHandler.Activate)
	e.GET("/auth/verify-token", authHandler.VerifyToken)
	e.POST("/auth/verify-token", authHandler.VerifyToken)
	e.POST("/auth/logout", authHandler.Logout)

	// --- General routes ---
	general := e.Group("/general", authMiddleware)
	general.GET("/user/:id", generalHandler.GetUser)
	general.GET("/dashboard-stats", dashboardHandler.Stats)

	// --- Settings routes ---
	settings := e.Group("/settings", authMiddleware)
	settings.PATCH("/user/:userId", settingsHandler.UpdateProfile)
	settings.POST("/change-password", settingsHandler.ChangePassword)

	// --- Project proxy routes ---
	projects := e.Group("/projects", authMiddleware)
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.GET("/:id/assets", projectHandler.ListAssets)
	projects.POST("/:id/assets", projectHandler.UploadAsset)
	projects.DELETE("/:id/assets/:name", projectHandler.DeleteAsset)
	projects.GET("/:id/index", projectHandler.IndexInfo)
	projects.POST("/:id/index/push", projectHandler.PushIndex)

	// --- Maintenance routes (superadmin only) ---
	maintenance := e.Group("/maintenance", authMiddleware, middleware.RBAC(domain.RoleSuperadmin))
	maintenance.POST("/activate-legacy", maintenanceHandler.ActivateLegacy)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
