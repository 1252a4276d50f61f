package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-tailor/internal/config"
	"alfredoptarigan/resume-tailor/internal/handlers"
	"alfredoptarigan/resume-tailor/internal/logging"
	"alfredoptarigan/resume-tailor/internal/messaging"
	"alfredoptarigan/resume-tailor/internal/repositories"
	"alfredoptarigan/resume-tailor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "resume-tailor",
	})
	log.Info().Msg("✅ Config loaded successfully")

	// Initialize job store
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize job store")
	}

	jobRepo := repositories.NewJobRepository(db)

	// Initialize services
	downloads := services.NewDownloadManager(cfg.Downloads.Dir)
	if err := downloads.EnsureDir(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create download directory")
	}

	orchestrator := services.NewOrchestrator(
		services.OrchestratorConfig{
			EndpointURL:      cfg.Tailor.EndpointURL,
			CoverLetterDelay: cfg.Downloads.CoverLetterDelay,
			ConflictAction:   cfg.Downloads.ConflictAction,
		},
		downloads,
		jobRepo,
		log,
	)
	log.Info().Str("endpoint", cfg.Tailor.EndpointURL).Msg("✅ Orchestrator initialized")

	worker := services.NewWorker(
		jobRepo,
		orchestrator,
		cfg.Worker.Concurrency,
		cfg.Worker.QueueSize,
		log,
	)
	worker.Start(context.Background())

	// Message listeners
	router := messaging.NewRouter()
	router.Handle(messaging.ActionGeneratePDF, handlers.GeneratePDFListener(worker))

	messageHandler := handlers.NewMessageHandler(router)
	jobHandler := handlers.NewJobHandler(jobRepo)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Tailor Orchestrator",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.Server.MaxBodySize,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.SetupRoutes(app, messageHandler, jobHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	stopped := make(chan struct{})

	go func() {
		<-quit
		log.Info().Msg("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
		worker.Stop()
		close(stopped)
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
	}
	<-stopped
}
