package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finsight/internal/api"
	"finsight/internal/api/handlers"
	"finsight/internal/llm"
	"finsight/internal/repository"
	"finsight/internal/service"
	"finsight/internal/storage"
	"finsight/pkg/auth"
	"finsight/pkg/config"
	"finsight/pkg/logger"
	"finsight/pkg/postgres"

	"go.uber.org/zap"
)

// @title FinSight API
// @version 1.0
// @description Personal finance backend: transaction ledger, AI assistant, bank statement analysis

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting FinSight service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	stmtRepo := repository.NewStatementRepository(db, appLogger)
	chatRepo := repository.NewChatRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize blob storage
	var blobs storage.Store
	uploadsDir := ""
	switch cfg.Storage.Driver {
	case "gcs":
		gcsStore, err := storage.NewGCSStore(ctx, cfg.Storage.GCSBucket, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize GCS storage", zap.Error(err))
		}
		defer gcsStore.Close()
		blobs = gcsStore
	default:
		localStore, err := storage.NewLocalStore(cfg.Storage.LocalDir, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		blobs = localStore
		uploadsDir = localStore.BaseDir()
	}

	// Initialize services
	llmClient := llm.NewClient(&cfg.LLM, appLogger)
	extractService := service.NewExtractService(appLogger)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	profileService := service.NewProfileService(userRepo, appLogger)
	txService := service.NewTransactionService(txRepo, appLogger)
	stmtService := service.NewStatementService(stmtRepo, blobs, extractService, llmClient, &cfg.Upload, &cfg.LLM, appLogger)
	chatService := service.NewChatService(chatRepo, txRepo, stmtRepo, llmClient, &cfg.LLM, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, appLogger)
	stmtHandler := handlers.NewStatementHandler(stmtService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	profileHandler := handlers.NewProfileHandler(profileService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, txHandler, stmtHandler, chatHandler, profileHandler, jwtManager, uploadsDir, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
