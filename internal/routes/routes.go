package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
)

// InitRouter wires repositories, services, controllers and routes together.
// All dependency construction happens here, in one place.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	cfg *config.Config,
	logger *zap.Logger,
) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	apiKeyMW := middleware.NewAPIKeyMiddleware(cfg.Mobile.APIKey, logger)
	txManager := repositories.NewTxManager(dbConn)

	// Repositories.
	userRepo := repositories.NewUserRepository(dbConn, logger)
	credentialRepo := repositories.NewCredentialRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	categoryRepo := repositories.NewCategoryRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn, logger)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	cacheRepo := repositories.NewCacheRepository(redisClient)

	// Services.
	authService := services.NewAuthService(userRepo, credentialRepo, cacheRepo, txManager, jwtSvc, cfg.Auth, logger)
	userService := services.NewUserService(userRepo, teamRepo, logger)
	teamService := services.NewTeamService(teamRepo, userRepo)
	categoryService := services.NewCategoryService(categoryRepo, userRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo, categoryRepo, teamRepo, userRepo, logger)
	requestService := services.NewRequestService(requestRepo, equipmentRepo, userRepo, bus, logger)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, cacheRepo, logger)
	reportService := services.NewReportService(requestRepo, teamRepo, userRepo, equipmentRepo, categoryRepo, logger)

	// Event listeners.
	notificationListener := listeners.NewNotificationListener(notificationRepo, userRepo, cacheRepo, logger)
	notificationListener.Register(bus)

	// Controllers.
	authController := controllers.NewAuthController(authService, logger)
	userController := controllers.NewUserController(userService, logger)
	teamController := controllers.NewTeamController(teamService, logger)
	categoryController := controllers.NewCategoryController(categoryService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	requestController := controllers.NewRequestController(requestService, logger)
	notificationController := controllers.NewNotificationController(notificationService, logger)
	reportController := controllers.NewReportController(reportService, logger)

	// Public auth endpoints; verify is the mobile bridge and requires the
	// shared API key on top of the token it checks.
	auth := api.Group("/auth")
	auth.POST("/signup", authController.Signup)
	auth.POST("/login", authController.Login)
	auth.GET("/verify", authController.Verify, apiKeyMW.Verify)

	secure := api.Group("", authMW.Auth)

	users := secure.Group("/users")
	users.GET("", userController.List)
	users.GET("/me", userController.Me)
	users.GET("/technicians", userController.ListTechnicians)
	users.GET("/promotable", userController.ListPromotable)
	users.PUT("/:id/role", userController.AssignRole)
	users.PUT("/:id/team", userController.AssignTeam)

	teams := secure.Group("/teams")
	teams.POST("", teamController.Create)
	teams.GET("", teamController.List)
	teams.PUT("/:id", teamController.Update)
	teams.DELETE("/:id", teamController.Delete)

	categories := secure.Group("/categories")
	categories.POST("", categoryController.Create)
	categories.GET("", categoryController.List)
	categories.PUT("/:id", categoryController.Update)
	categories.DELETE("/:id", categoryController.Delete)

	equipment := secure.Group("/equipment")
	equipment.POST("", equipmentController.Create)
	equipment.GET("", equipmentController.List)
	equipment.GET("/:id", equipmentController.Get)
	equipment.PUT("/:id", equipmentController.Update)
	equipment.DELETE("/:id", equipmentController.Delete)

	requests := secure.Group("/requests")
	requests.POST("", requestController.Create)
	requests.GET("", requestController.ListAll)
	requests.GET("/my", requestController.ListMy)
	requests.GET("/calendar", requestController.Calendar)
	requests.GET("/:id", requestController.Get)
	requests.PUT("/:id", requestController.Update)
	requests.PUT("/:id/status", requestController.UpdateStatus)
	requests.PUT("/:id/assign", requestController.Assign)
	requests.POST("/:id/scrap", requestController.Scrap)

	notifications := secure.Group("/notifications")
	notifications.GET("", notificationController.List)
	notifications.GET("/unread-count", notificationController.UnreadCount)
	notifications.PUT("/:id/read", notificationController.MarkAsRead)
	notifications.PUT("/read-all", notificationController.MarkAllAsRead)

	reports := secure.Group("/reports")
	reports.GET("/overview", reportController.Overview)
	reports.GET("/teams", reportController.TeamPerformance)
	reports.GET("/technicians", reportController.TechnicianWorkload)
	reports.GET("/equipment", reportController.EquipmentInsights)
	reports.GET("/export", reportController.Export)

	logger.Info("routes initialized")
}
