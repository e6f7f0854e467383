package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prhdev222/CHEMO-FINAL/internal/config"
	"github.com/prhdev222/CHEMO-FINAL/internal/database"
	"github.com/prhdev222/CHEMO-FINAL/internal/handler"
	"github.com/prhdev222/CHEMO-FINAL/internal/middleware"
	"github.com/prhdev222/CHEMO-FINAL/internal/repository"
	"github.com/prhdev222/CHEMO-FINAL/internal/service"
	"github.com/prhdev222/CHEMO-FINAL/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Build the token manager from config
	tokens := utils.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection
	db := database.Connect(cfg)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	linkRepo := repository.NewLinkRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo, tokens)
	patientService := service.NewPatientService(patientRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo, auditRepo)
	linkService := service.NewLinkService(linkRepo)

	// 6. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 7. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 8. Register handlers
	userHandler := handler.NewUserHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	linkHandler := handler.NewLinkHandler(linkService)

	// 9. Define routes
	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "chemo-ward-dashboard",
		})
	})

	// User routes (public)
	users := r.Group("/api/users")
	{
		users.POST("", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/refresh", userHandler.Refresh)
		users.POST("/logout", userHandler.Logout)
	}

	// Patient routes (authenticated)
	patients := r.Group("/api/patients")
	patients.Use(middleware.AuthMiddleware(tokens))
	{
		patients.GET("", middleware.RequireCapability(middleware.CapPatientRead), patientHandler.List)
		patients.POST("", middleware.RequireCapability(middleware.CapPatientWrite), patientHandler.Create)
		patients.GET("/id/:id", middleware.RequireCapability(middleware.CapPatientRead), patientHandler.Get)
		patients.PUT("/id/:id", middleware.RequireCapability(middleware.CapPatientWrite), patientHandler.Update)
		patients.DELETE("/id/:id", middleware.RequireCapability(middleware.CapPatientDelete), patientHandler.Delete)
	}

	// Appointment routes (authenticated)
	appointments := r.Group("/api/appointments")
	appointments.Use(middleware.AuthMiddleware(tokens))
	{
		appointments.GET("", middleware.RequireCapability(middleware.CapAppointmentRead), appointmentHandler.List)
		appointments.GET("/statuses", middleware.RequireCapability(middleware.CapAppointmentRead), appointmentHandler.Statuses)
		appointments.POST("", middleware.RequireCapability(middleware.CapAppointmentWrite), appointmentHandler.Create)
		appointments.PUT("/:id", middleware.RequireCapability(middleware.CapAppointmentWrite), appointmentHandler.Update)
		appointments.DELETE("/:id", middleware.RequireCapability(middleware.CapAppointmentDelete), appointmentHandler.Delete)
		appointments.PATCH("/:id/status", middleware.RequireCapability(middleware.CapAppointmentWrite), appointmentHandler.UpdateStatus)
		appointments.POST("/:id/reschedule", middleware.RequireCapability(middleware.CapAppointmentWrite), appointmentHandler.Reschedule)
		appointments.POST("/:id/cancel", middleware.RequireCapability(middleware.CapAppointmentWrite), appointmentHandler.Cancel)
		appointments.POST("/:id/reschedule-history", middleware.RequireCapability(middleware.CapAppointmentWrite), appointmentHandler.AddHistory)
		appointments.GET("/:id/reschedule-history", middleware.RequireCapability(middleware.CapAppointmentRead), appointmentHandler.GetHistory)
	}

	// Link routes (authenticated)
	links := r.Group("/api/links")
	links.Use(middleware.AuthMiddleware(tokens))
	{
		links.GET("", middleware.RequireCapability(middleware.CapLinkRead), linkHandler.List)
		links.POST("", middleware.RequireCapability(middleware.CapLinkWrite), linkHandler.Create)
		links.PUT("/:id", middleware.RequireCapability(middleware.CapLinkWrite), linkHandler.Update)
		links.DELETE("/:id", middleware.RequireCapability(middleware.CapLinkDelete), linkHandler.Delete)
	}

	// 10. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
