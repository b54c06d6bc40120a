package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yamakawa/task-board-api/internal/config"
	"github.com/yamakawa/task-board-api/internal/database"
	"github.com/yamakawa/task-board-api/internal/handlers"
	"github.com/yamakawa/task-board-api/internal/middleware"
	"github.com/yamakawa/task-board-api/internal/models"
	"github.com/yamakawa/task-board-api/internal/repository"
	"github.com/yamakawa/task-board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	// Initialize handlers
	jwtExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret, jwtExpiry)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// API routes
	api := r.Group("/api")
	{
		api.GET("/healthcheck", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Server is up and running",
			})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/forgotPassword", authHandler.ForgotPassword)
			auth.GET("/getAllUsers",
				middleware.RequireAuth(cfg.JWTSecret),
				middleware.RequireRoles(models.RoleAdmin),
				authHandler.GetAllUsers)
			auth.DELETE("/deleteAccount",
				middleware.RequireAuth(cfg.JWTSecret),
				middleware.RequireRoles(models.RoleAdmin),
				authHandler.DeleteAccount)
		}

		// Task routes (protected)
		tasks := api.Group("/task")
		tasks.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			tasks.POST("/create",
				middleware.RequireRoles(models.RoleModerator),
				taskHandler.CreateTask)
			tasks.GET("/getTask", taskHandler.ListTasks)
			tasks.PATCH("/updateStatus/:id", taskHandler.UpdateStatus)
			tasks.DELETE("/delete/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleModerator),
				taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
