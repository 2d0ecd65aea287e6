package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lms_backend/database"
	"lms_backend/internal/auth"
	"lms_backend/internal/config"
	"lms_backend/internal/email"
	"lms_backend/internal/handlers"
	"lms_backend/internal/logger"
	"lms_backend/internal/middleware"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/routes"
	"lms_backend/internal/services"
	"lms_backend/internal/validator"
	"lms_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	wsManager := ws.NewManager(cfg.Chat.ClientQueueSize)
	go wsManager.Run()

	serviceContainer := initializeServices(cfg, gormDB, wsManager)
	appHandlers := initializeHandlers(serviceContainer)

	courseRepo := repositories.NewCourseRepository(gormDB)
	wsHandler := ws.NewHandler(wsManager, serviceContainer.ChatService, courseRepo)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, broadcaster services.ChatBroadcaster) *services.ServiceContainer {
	mailer := email.NewSender(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	courseRepo := repositories.NewCourseRepository(gormDB)
	materialRepo := repositories.NewMaterialRepository(gormDB)
	assignmentRepo := repositories.NewAssignmentRepository(gormDB)
	quizRepo := repositories.NewQuizRepository(gormDB)
	liveClassRepo := repositories.NewLiveClassRepository(gormDB)
	chatRepo := repositories.NewChatRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	activityRepo := repositories.NewActivityRepository(gormDB)

	activityService := services.NewActivityService(activityRepo)
	notificationService := services.NewNotificationService(notificationRepo, courseRepo)
	authService := services.NewAuthService(userRepo, activityService)
	userService := services.NewUserService(userRepo, mailer)
	courseService := services.NewCourseService(courseRepo, userRepo, activityService)
	materialService := services.NewMaterialService(materialRepo, courseRepo, notificationService)
	assignmentService := services.NewAssignmentService(assignmentRepo, courseRepo, userRepo, notificationService)
	quizService := services.NewQuizService(quizRepo, courseRepo, notificationService)
	liveClassService := services.NewLiveClassService(liveClassRepo, courseRepo, notificationService)
	chatService := services.NewChatService(chatRepo, userRepo, courseRepo, broadcaster)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		CourseService:       courseService,
		MaterialService:     materialService,
		AssignmentService:   assignmentService,
		QuizService:         quizService,
		LiveClassService:    liveClassService,
		ChatService:         chatService,
		NotificationService: notificationService,
		ActivityService:     activityService,
		EmailSender:         mailer,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:   handlers.NewUserHandler(baseHandler, services.UserService, services.ActivityService),
		CourseHandler: handlers.NewCourseHandler(baseHandler, services.CourseService),
		ContentHandler: handlers.NewContentHandler(
			baseHandler,
			services.MaterialService,
			services.AssignmentService,
			services.QuizService,
			services.LiveClassService,
		),
		ChatHandler:         handlers.NewChatHandler(baseHandler, services.ChatService, services.ActivityService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	return router
}

// seedFirstAdmin guarantees one admin account exists so provisioning
// can start on a fresh database.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		logger.Warn("Admin credentials not configured, skipping admin seeding")
		return nil
	}

	var admin models.User
	result := db.Where("username = ?", cfg.Admin.Username).First(&admin)
	if result.Error == nil {
		logger.Info("Admin user already exists, skipping creation", "username", cfg.Admin.Username)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Username:     cfg.Admin.Username,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		FullName:     "Administrator",
		Email:        cfg.Admin.Email,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "username", cfg.Admin.Username)
	return nil
}
