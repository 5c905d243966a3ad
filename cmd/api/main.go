package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/data"
	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/evaluator"
	"github.com/charansai0108/Skill-port-sub002/internal/handler"
	"github.com/charansai0108/Skill-port-sub002/internal/infrastructure"
	"github.com/charansai0108/Skill-port-sub002/internal/middleware"
	"github.com/charansai0108/Skill-port-sub002/internal/repository"
	"github.com/charansai0108/Skill-port-sub002/internal/service"
	"github.com/charansai0108/Skill-port-sub002/internal/ws"
)

func main() {
	// Load configuration
	config := infrastructure.LoadConfig()

	// Initialize logger
	logger, err := infrastructure.NewLogger(config.Server.Environment)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.SyncLogger(logger)

	logger.Info("Starting SkillPort Contest API",
		zap.String("environment", config.Server.Environment),
		zap.Int("port", config.Server.Port),
	)

	// Initialize context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize telemetry
	telemetry, err := infrastructure.NewTelemetry(ctx, &config.Telemetry, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		telemetry.Shutdown(shutdownCtx)
	}()

	// Create metrics
	metrics, err := telemetry.CreateMetrics()
	if err != nil {
		logger.Error("Failed to create metrics", zap.Error(err))
		os.Exit(1)
	}

	// Initialize database
	database, err := infrastructure.NewDatabase(&config.Database, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	// Seed demo data
	seeder := data.NewSeeder(database.DB, logger)
	if err := seeder.SeedDemoData(); err != nil {
		logger.Error("Failed to seed demo data", zap.Error(err))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	contestRepo := repository.NewContestRepository(database.DB)
	participantRepo := repository.NewParticipantRepository(database.DB)
	submissionRepo := repository.NewSubmissionRepository(database.DB)
	clarificationRepo := repository.NewClarificationRepository(database.DB)

	// Initialize websocket hub for live leaderboards
	hub := ws.NewHub(logger)
	go hub.Run()

	// Initialize the external evaluator client
	judge := evaluator.WithTimeout(
		evaluator.NewClient(config.Contest.EvaluatorURL, logger),
		config.Contest.EvaluationTimeout,
	)

	// Initialize services
	userService := service.NewUserService(userRepo, participantRepo, contestRepo, &config.JWT, telemetry.Tracer, logger)
	contestService := service.NewContestService(contestRepo, participantRepo, clarificationRepo, metrics, telemetry.Tracer, logger)
	registrationService := service.NewRegistrationService(contestRepo, participantRepo, metrics, telemetry.Tracer, logger)
	leaderboardService := service.NewLeaderboardService(contestRepo, participantRepo, submissionRepo, hub, telemetry.Tracer, logger)
	submissionService := service.NewSubmissionService(contestRepo, participantRepo, submissionRepo, judge, leaderboardService, metrics, telemetry.Tracer, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	contestHandler := handler.NewContestHandler(contestService, userService)
	participantHandler := handler.NewParticipantHandler(registrationService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, hub, logger)

	// Setup Gin router
	if config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add global middleware
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	router.Use(middleware.TracingMiddleware(telemetry.Tracer))
	router.Use(middleware.MetricsMiddleware(metrics))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": config.Telemetry.ServiceVersion,
		})
	})

	// Metrics endpoint for Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(userService))
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/me", userHandler.Me)
				users.GET("/me/contests", userHandler.ContestHistory)
			}

			// Contest routes
			contests := protected.Group("/contests")
			{
				contests.GET("", contestHandler.ListContests)
				contests.GET("/:id", contestHandler.GetContest)
				contests.POST("/:id/register", participantHandler.Register)
				contests.DELETE("/:id/register", participantHandler.Leave)
				contests.GET("/:id/participants", participantHandler.ListParticipants)
				contests.GET("/:id/leaderboard", leaderboardHandler.GetLeaderboard)
				contests.GET("/:id/leaderboard/ws", leaderboardHandler.Watch)
				contests.POST("/:id/submissions", submissionHandler.Submit)
				contests.GET("/:id/submissions/mine", submissionHandler.ListMine)
				contests.GET("/:id/clarifications", contestHandler.ListClarifications)
				contests.POST("/:id/clarifications", contestHandler.AskClarification)

				// Organizer routes
				manage := contests.Group("")
				manage.Use(middleware.RequireRoles(domain.RoleMentor, domain.RoleAdmin))
				{
					manage.POST("", contestHandler.CreateContest)
					manage.PATCH("/:id", contestHandler.UpdateContest)
					manage.DELETE("/:id", contestHandler.DeleteContest)
					manage.POST("/:id/open-registration", contestHandler.OpenRegistration)
					manage.POST("/:id/close-registration", contestHandler.CloseRegistration)
					manage.POST("/:id/start", contestHandler.StartContest)
					manage.POST("/:id/complete", contestHandler.CompleteContest)
					manage.POST("/:id/cancel", contestHandler.CancelContest)
					manage.GET("/:id/submissions", submissionHandler.ListAll)
					manage.POST("/:id/clarifications/:clarificationID/answer", contestHandler.AnswerClarification)
				}
			}
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("HTTP server starting",
			zap.String("address", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
