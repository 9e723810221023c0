package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/config"
	"github.com/alfurqan/tahfiz-api/internal/database"
	"github.com/alfurqan/tahfiz-api/internal/handler"
	"github.com/alfurqan/tahfiz-api/internal/middleware"
	"github.com/alfurqan/tahfiz-api/internal/models"
	"github.com/alfurqan/tahfiz-api/internal/repository"
	"github.com/alfurqan/tahfiz-api/internal/router"
	"github.com/alfurqan/tahfiz-api/internal/service"
	cloud "github.com/alfurqan/tahfiz-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.ClassSession{},
		&models.SessionRecord{},
		&models.SurahProgress{},
		&models.DailyReport{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	reportRepo := repository.NewReportRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	rankingService := service.NewRankingService(sessionRepo, studentRepo, redisClient, cfg.RankingCacheTTL, logger)
	studentService := service.NewStudentService(studentRepo, validate, activityService, logger)
	sessionService := service.NewSessionService(sessionRepo, validate, activityService, rankingService, logger)
	progressService := service.NewProgressService(progressRepo, studentRepo, validate, activityService, logger)
	evaluationService := service.NewEvaluationService(sessionRepo, studentRepo, reportRepo, logger)
	reportService := service.NewReportService(reportRepo, validate, activityService, logger)
	uploadService := service.NewUploadService(uploader, cfg.UploadMaxSizeMB, logger)
	exportService := service.NewExportService(rankingService, studentRepo, progressRepo, logger)
	authService := service.NewAuthService(cfg, service.GoogleVerifier{ClientID: cfg.GoogleClientID}, validate, activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		SessionHandler:    handler.NewSessionHandler(sessionService, logger),
		ProgressHandler:   handler.NewProgressHandler(progressService, logger),
		RankingHandler:    handler.NewRankingHandler(rankingService, logger),
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		ReportHandler:     handler.NewReportHandler(reportService, logger),
		UploadHandler:     handler.NewUploadHandler(uploadService, logger),
		ExportHandler:     handler.NewExportHandler(exportService, logger),
		ActivityHandler:   handler.NewActivityHandler(activityService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
