package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finledger/internal/api"
	"finledger/internal/api/handlers"
	"finledger/internal/currency"
	"finledger/internal/repository"
	"finledger/internal/service"
	"finledger/pkg/auth"
	"finledger/pkg/config"
	"finledger/pkg/logger"
	"finledger/pkg/postgres"

	"go.uber.org/zap"
)

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
	appLogger.Info("Starting finledger service")

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
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	rateRepo := repository.NewRateRepository(db, appLogger)

	// Initialize currency converter
	converter := currency.NewConverter(cfg.Currency.Pivot, rateRepo, appLogger)
	converter.Load(ctx)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, converter, cfg.Currency.DefaultBase, appLogger)
	txService := service.NewTransactionService(txRepo, userRepo, converter, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, txRepo, userRepo, appLogger)
	goalService := service.NewGoalService(db, goalRepo, txRepo, userRepo, appLogger)
	vaultService := service.NewVaultService(db, txRepo, userRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, appLogger)
	budgetHandler := handlers.NewBudgetHandler(budgetService, appLogger)
	goalHandler := handlers.NewGoalHandler(goalService, appLogger)
	vaultHandler := handlers.NewVaultHandler(vaultService, appLogger)
	currencyHandler := handlers.NewCurrencyHandler(converter, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, txHandler, budgetHandler, goalHandler, vaultHandler, currencyHandler, jwtManager, appLogger)

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
