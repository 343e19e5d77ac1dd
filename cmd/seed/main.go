package main

import (
	"context"
	"log"
	"time"

	"finledger/internal/models"
	"finledger/internal/repository"
	"finledger/pkg/auth"
	"finledger/pkg/config"
	"finledger/pkg/logger"
	"finledger/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds a demo user with a few months of ledger history, budgets and a goal.
// Running twice is harmless; the user check skips everything on the second run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	exists, err := userRepo.Exists(ctx, "demo", "demo@finledger.local")
	if err != nil {
		appLogger.Fatal("Failed to check demo user", zap.Error(err))
	}
	if exists {
		appLogger.Info("Demo user already present, nothing to do")
		return
	}

	passwordHash, err := auth.HashPassword("demo1234")
	if err != nil {
		appLogger.Fatal("Failed to hash demo password", zap.Error(err))
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Username:     "demo",
		Email:        "demo@finledger.local",
		FullName:     "Demo User",
		PasswordHash: passwordHash,
		Currency:     cfg.Currency.DefaultBase,
		SavingsVault: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	month := now.Format("2006-01")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	transactions := []models.Transaction{
		{Type: models.TypeIncome, Category: "Salary", Amount: 150000, Description: "Monthly salary", Date: monthStart},
		{Type: models.TypeExpense, Category: "Groceries", Amount: 18500, Description: "Weekly shopping", Date: monthStart.AddDate(0, 0, 3)},
		{Type: models.TypeExpense, Category: "Transport", Amount: 6200, Description: "Fuel", Date: monthStart.AddDate(0, 0, 5)},
		{Type: models.TypeExpense, Category: "Utilities", Amount: 9400, Description: "Electricity bill", Date: monthStart.AddDate(0, 0, 8)},
		{Type: models.TypeExpense, Category: "Dining", Amount: 4800, Description: "Dinner out", Date: monthStart.AddDate(0, 0, 10)},
	}
	for i := range transactions {
		tx := &transactions[i]
		tx.ID = uuid.New()
		tx.Username = user.Username
		tx.OriginalAmount = tx.Amount
		tx.OriginalCurrency = user.Currency
		tx.CreatedAt = now
		if err := txRepo.Insert(ctx, tx); err != nil {
			appLogger.Fatal("Failed to insert demo transaction", zap.Error(err))
		}
	}

	budgets := []models.Budget{
		{Category: "Groceries", Amount: 25000},
		{Category: "Transport", Amount: 8000},
		{Category: "Dining", Amount: 5000},
	}
	for i := range budgets {
		b := &budgets[i]
		b.ID = uuid.New()
		b.Username = user.Username
		b.Month = month
		b.Currency = user.Currency
		b.CreatedAt = now
		if _, err := budgetRepo.Upsert(ctx, b); err != nil {
			appLogger.Fatal("Failed to insert demo budget", zap.Error(err))
		}
	}

	goal := &models.Goal{
		ID:           uuid.New(),
		Username:     user.Username,
		Name:         "Emergency Fund",
		TargetAmount: 300000,
		Deadline:     now.AddDate(1, 0, 0).Format("2006-01-02"),
		Category:     "Safety",
		Currency:     user.Currency,
		Status:       models.GoalActive,
		CreatedAt:    now,
	}
	if err := goalRepo.Insert(ctx, goal); err != nil {
		appLogger.Fatal("Failed to insert demo goal", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("username", user.Username),
		zap.Int("transactions", len(transactions)),
		zap.Int("budgets", len(budgets)),
	)
}
