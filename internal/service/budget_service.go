package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"finledger/internal/dto"
	"finledger/internal/models"
	"finledger/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrBudgetNotFound = errors.New("budget not found")

const (
	budgetStatusGood     = "good"
	budgetStatusWarning  = "warning"
	budgetStatusExceeded = "exceeded"

	warningThreshold  = 80.0
	exceededThreshold = 100.0
)

type BudgetService struct {
	budgets      *repository.BudgetRepository
	transactions *repository.TransactionRepository
	users        *repository.UserRepository
	logger       *zap.Logger
}

func NewBudgetService(
	budgets *repository.BudgetRepository,
	transactions *repository.TransactionRepository,
	users *repository.UserRepository,
	logger *zap.Logger,
) *BudgetService {
	return &BudgetService{
		budgets:      budgets,
		transactions: transactions,
		users:        users,
		logger:       logger,
	}
}

// Set creates the cap for (user, category, month) or replaces the amount of
// an existing one.
func (s *BudgetService) Set(ctx context.Context, req *dto.SetBudgetRequest) (*dto.BudgetResponse, error) {
	if req.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	if _, _, err := monthRange(req.Month); err != nil {
		return nil, ErrInvalidMonth
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, userLookupError(err)
	}

	budget := &models.Budget{
		ID:        uuid.New(),
		Username:  user.Username,
		Category:  req.Category,
		Amount:    req.Amount,
		Month:     req.Month,
		Currency:  user.Currency,
		CreatedAt: time.Now(),
	}

	stored, err := s.budgets.Upsert(ctx, budget)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Budget set",
		zap.String("username", stored.Username),
		zap.String("category", stored.Category),
		zap.String("month", stored.Month),
		zap.Float64("amount", stored.Amount),
	)

	resp := toBudgetResponse(stored)
	return &resp, nil
}

// List returns the user's budgets, all of them or only those for one month.
func (s *BudgetService) List(ctx context.Context, username, month string) ([]dto.BudgetResponse, error) {
	if month != "" {
		if _, _, err := monthRange(month); err != nil {
			return nil, ErrInvalidMonth
		}
	}

	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, userLookupError(err)
	}

	budgets, err := s.budgets.ListByUser(ctx, username, month)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		responses = append(responses, toBudgetResponse(&budgets[i]))
	}

	return responses, nil
}

// Status compares each of the month's budgets against the expenses actually
// recorded in that month and classifies every category.
func (s *BudgetService) Status(ctx context.Context, username, month string) (*dto.BudgetStatusResponse, error) {
	from, to, err := monthRange(month)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, userLookupError(err)
	}

	budgets, err := s.budgets.ListByUser(ctx, username, month)
	if err != nil {
		return nil, err
	}

	spending, err := s.transactions.CategorySpending(ctx, username, from, to)
	if err != nil {
		return nil, err
	}

	entries, alerts := buildBudgetStatus(budgets, spending)

	return &dto.BudgetStatusResponse{
		Month:        month,
		BudgetStatus: entries,
		Alerts:       alerts,
	}, nil
}

// Delete removes one of the user's budgets. A foreign or unknown id reads as
// missing.
func (s *BudgetService) Delete(ctx context.Context, username, id string) error {
	budgetID, err := uuid.Parse(id)
	if err != nil {
		return ErrBudgetNotFound
	}

	removed, err := s.budgets.Delete(ctx, username, budgetID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrBudgetNotFound
	}

	s.logger.Info("Budget deleted", zap.String("username", username), zap.String("id", id))
	return nil
}

// buildBudgetStatus classifies each budget by how much of its cap the month's
// spending consumes. Tiers are decided on the exact percentage; only the
// reported figure is rounded. A zero cap reports 0% spent.
func buildBudgetStatus(budgets []models.Budget, spending map[string]float64) ([]dto.BudgetStatusEntry, []dto.BudgetStatusEntry) {
	entries := make([]dto.BudgetStatusEntry, 0, len(budgets))
	alerts := make([]dto.BudgetStatusEntry, 0)

	for i := range budgets {
		budget := &budgets[i]
		spent := spending[budget.Category]

		var pct float64
		if budget.Amount > 0 {
			pct = spent / budget.Amount * 100
		}

		status := budgetStatusGood
		switch {
		case pct >= exceededThreshold:
			status = budgetStatusExceeded
		case pct >= warningThreshold:
			status = budgetStatusWarning
		}

		entry := dto.BudgetStatusEntry{
			Category:   budget.Category,
			Budget:     budget.Amount,
			Spent:      spent,
			Remaining:  budget.Amount - spent,
			Percentage: round2(pct),
			Status:     status,
			Currency:   budget.Currency,
		}

		entries = append(entries, entry)
		if status != budgetStatusGood {
			alerts = append(alerts, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Category < entries[j].Category })
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Category < alerts[j].Category })

	return entries, alerts
}
