package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-careers-cms/config"
	v1 "go-careers-cms/internal/delivery/http/v1"
	"go-careers-cms/internal/repository/mongodb"
	"go-careers-cms/internal/usecase"
	"go-careers-cms/pkg/database"
	"go-careers-cms/pkg/email"
	"go-careers-cms/pkg/logger"
	"go-careers-cms/pkg/redis"
	"go-careers-cms/pkg/storage"
	"go-careers-cms/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting careers cms backend", "port", cfg.Port)

	// 3. Setup Database
	client, err := database.NewMongoConnection(cfg.MongoDB.URI)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.MongoDB.Database)
	if err := mongodb.EnsureIndexes(context.Background(), db); err != nil {
		logger.Log.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	// 4. Setup Attachment Store
	store, err := storage.NewS3Store(context.Background(), storage.Config{
		Provider:        storage.Provider(cfg.Storage.Provider),
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		RootFolder:      cfg.Storage.RootFolder,
		Endpoint:        cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Log.Error("Failed to create attachment store", "error", err)
		os.Exit(1)
	}
	if err := store.Ping(context.Background()); err != nil {
		logger.Log.Warn("Attachment store unreachable at startup", "error", err)
	}

	// 5. Setup Redis (rate limiting; in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - password reset mail will be unavailable")
	}

	// 7. Custom validators for gin binding
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 8. Setup Repositories
	careerRepo := mongodb.NewCareerRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	// 9. Setup UseCases
	careerUC := usecase.NewCareerUsecase(careerRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, careerRepo, store, cfg.StrictStatusFlow)
	serviceUC := usecase.NewServiceUsecase(serviceRepo, store)
	authUC := usecase.NewAuthUsecase(userRepo, store, emailService, usecase.AuthConfig{
		SignInSecret: cfg.Auth.SignInSecret,
		ResetSecret:  cfg.Auth.ResetSecret,
		BcryptCost:   cfg.Auth.BcryptCost,
		TokenTTL:     time.Duration(cfg.Auth.TokenTTLHrs) * time.Hour,
	})
	statisticsUC := usecase.NewStatisticsUsecase(applicationRepo, serviceRepo, careerRepo)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		CareerUC:      careerUC,
		ApplicationUC: applicationUC,
		ServiceUC:     serviceUC,
		StatisticsUC:  statisticsUC,
		SignInSecret:  cfg.Auth.SignInSecret,
	})

	// 11. Start Server
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
