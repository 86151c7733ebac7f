package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recroot-backend/config"
	_ "recroot-backend/docs" // Important for Swagger
	v1 "recroot-backend/internal/delivery/http/v1"
	"recroot-backend/internal/delivery/http/middleware"
	"recroot-backend/internal/domain"
	"recroot-backend/internal/repository/postgres"
	"recroot-backend/internal/usecase"
	"recroot-backend/pkg/database"
	"recroot-backend/pkg/logger"
	"recroot-backend/pkg/redis"
	"recroot-backend/pkg/security"
	"recroot-backend/pkg/security/antivirus"
	"recroot-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           Recroot ATS API
// @version         1.0
// @description     Candidate tracking backend: CRUD, search and resume uploads.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting recroot backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(context.Background(), cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional; upload limiting degrades to fail-open)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, upload rate limiting disabled", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 5. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, validate)
	healthUC := usecase.NewHealthUsecase(dbPool)

	var scanner antivirus.Scanner = antivirus.NewNoOpScanner()
	if cfg.ClamAVAddr != "" {
		scanner = antivirus.NewClamAVScanner(cfg.ClamAVAddr, 30*time.Second)
		logger.Log.Info("ClamAV scanning enabled", "address", cfg.ClamAVAddr)
	}
	uploadLimiter := security.NewUploadLimiter(cfg.UploadsPerMinutePerIP, cfg.UploadsPerDayPerUser)
	uploadUC := usecase.NewResumeUploadUsecase(storage.NewLocalStore(cfg.UploadDir), uploadLimiter, scanner)

	// 7. Setup Identity Resolver
	var resolver middleware.IdentityResolver
	switch cfg.AuthMode {
	case "jwt":
		resolver = &middleware.JWTResolver{Secret: cfg.JWTSecret}
	default:
		logger.Log.Warn("Auth is mocked; every request acts as the configured mock user")
		resolver = &middleware.MockResolver{User: domain.User{
			ID:    cfg.MockUserID,
			Name:  cfg.MockUserName,
			Email: cfg.MockUserEmail,
			Role:  "recruiter",
		}}
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		UploadUC:    uploadUC,
		HealthUC:    healthUC,
		Resolver:    resolver,
		Config:      cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
