package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finledger/internal/dto"
	"finledger/internal/models"
	"finledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type GoalService struct {
	pool         *pgxpool.Pool
	goals        *repository.GoalRepository
	transactions *repository.TransactionRepository
	users        *repository.UserRepository
	logger       *zap.Logger
}

func NewGoalService(
	pool *pgxpool.Pool,
	goals *repository.GoalRepository,
	transactions *repository.TransactionRepository,
	users *repository.UserRepository,
	logger *zap.Logger,
) *GoalService {
	return &GoalService{
		pool:         pool,
		goals:        goals,
		transactions: transactions,
		users:        users,
		logger:       logger,
	}
}

// Create registers a new savings goal. Progress always starts at zero
// regardless of what the request carries.
func (s *GoalService) Create(ctx context.Context, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if req.TargetAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, userLookupError(err)
	}

	goal := &models.Goal{
		ID:            uuid.New(),
		Username:      user.Username,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: 0,
		Deadline:      req.Deadline,
		Category:      req.Category,
		Currency:      user.Currency,
		Status:        models.GoalActive,
		CreatedAt:     time.Now(),
	}

	if err := s.goals.Insert(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("Goal created",
		zap.String("username", goal.Username),
		zap.String("name", goal.Name),
		zap.Float64("target", goal.TargetAmount),
	)

	resp := toGoalResponse(goal)
	return &resp, nil
}

// ListActive returns the user's active goals enriched with progress figures.
func (s *GoalService) ListActive(ctx context.Context, username string) ([]dto.GoalProgressResponse, error) {
	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, userLookupError(err)
	}

	goals, err := s.goals.ListActiveByUser(ctx, username)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]dto.GoalProgressResponse, 0, len(goals))
	for i := range goals {
		responses = append(responses, progressFor(&goals[i], now))
	}

	return responses, nil
}

// Contribute moves money from the user's balance into one of their goals.
// The ledger records the movement as a Savings expense, so the balance check,
// the ledger entry and the goal update commit or roll back together.
func (s *GoalService) Contribute(ctx context.Context, username string, req *dto.ContributeRequest) (*dto.GoalProgressResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	goalID, err := uuid.Parse(req.GoalID)
	if err != nil {
		return nil, ErrGoalNotFound
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	goals := s.goals.WithTx(tx)
	transactions := s.transactions.WithTx(tx)
	users := s.users.WithTx(tx)

	goal, err := goals.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if err := checkGoalAccess(goal, username); err != nil {
		return nil, err
	}

	user, err := users.GetByUsernameForUpdate(ctx, goal.Username)
	if err != nil {
		return nil, userLookupError(err)
	}

	balance, err := transactions.Balance(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if err := checkContribution(goal, username, balance, req.Amount); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &models.Transaction{
		ID:               uuid.New(),
		Username:         user.Username,
		Type:             models.TypeExpense,
		Category:         models.CategorySavings,
		Amount:           req.Amount,
		OriginalAmount:   req.Amount,
		OriginalCurrency: user.Currency,
		Description:      fmt.Sprintf("Contribution to goal: %s", goal.Name),
		Date:             now,
		CreatedAt:        now,
	}
	if err := transactions.Insert(ctx, entry); err != nil {
		return nil, err
	}

	applyContribution(goal, req.Amount, now)

	if err := goals.UpdateProgress(ctx, goal); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Goal contribution",
		zap.String("username", user.Username),
		zap.String("goal", goal.Name),
		zap.Float64("amount", req.Amount),
		zap.Bool("completed", goal.Status == models.GoalCompleted),
	)

	resp := progressFor(goal, now)
	return &resp, nil
}

// Delete removes one of the user's goals. Unless the caller marks it
// completed, accumulated contributions flow back to the balance as a refund
// income entry inside the same transaction.
func (s *GoalService) Delete(ctx context.Context, username, id string, markCompleted bool) (*dto.DeleteGoalResponse, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrGoalNotFound
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	goals := s.goals.WithTx(tx)
	transactions := s.transactions.WithTx(tx)
	users := s.users.WithTx(tx)

	goal, err := goals.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if err := checkGoalAccess(goal, username); err != nil {
		return nil, err
	}

	user, err := users.GetByUsernameForUpdate(ctx, goal.Username)
	if err != nil {
		return nil, userLookupError(err)
	}

	wasComplete := goal.CurrentAmount >= goal.TargetAmount

	var returned float64
	if !markCompleted && goal.CurrentAmount > 0 {
		returned = goal.CurrentAmount
		if err := transactions.Insert(ctx, refundEntry(goal, user.Currency, time.Now())); err != nil {
			return nil, err
		}
	}

	removed, err := goals.Delete(ctx, goal.Username, goalID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrGoalNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Goal deleted",
		zap.String("username", goal.Username),
		zap.String("goal", goal.Name),
		zap.Bool("markCompleted", markCompleted),
		zap.Float64("returned", returned),
	)

	return &dto.DeleteGoalResponse{
		WasComplete:    wasComplete,
		ReturnedAmount: returned,
		Message:        deleteGoalMessage(markCompleted, wasComplete, returned),
	}, nil
}

func deleteGoalMessage(markCompleted, wasComplete bool, returned float64) string {
	if markCompleted {
		if wasComplete {
			return "Congratulations! Goal completed and removed!"
		}
		return "Goal marked as completed and removed."
	}
	if returned > 0 {
		return fmt.Sprintf("Goal cancelled. %.2f returned to balance.", returned)
	}
	return "Goal deleted."
}

// checkGoalAccess hides goals owned by someone else. A foreign id reads as
// missing so the endpoint does not confirm another user's goal exists.
func checkGoalAccess(goal *models.Goal, username string) error {
	if goal.Username != username {
		return ErrGoalNotFound
	}
	return nil
}

// checkContribution decides whether a contribution may proceed against the
// derived balance. Runs after the owner's row is locked, so the balance
// cannot move under it.
func checkContribution(goal *models.Goal, username string, balance, amount float64) error {
	if err := checkGoalAccess(goal, username); err != nil {
		return err
	}
	if goal.Status != models.GoalActive {
		return ErrGoalNotFound
	}
	if balance < amount {
		return ErrInsufficientBalance
	}
	return nil
}

// refundEntry builds the income entry returning a cancelled goal's
// contributions. The entry is denominated in the user's current base
// currency, which can differ from the goal's if the base changed since the
// goal was created.
func refundEntry(goal *models.Goal, userCurrency string, now time.Time) *models.Transaction {
	return &models.Transaction{
		ID:               uuid.New(),
		Username:         goal.Username,
		Type:             models.TypeIncome,
		Category:         models.CategoryGoalRefund,
		Amount:           goal.CurrentAmount,
		OriginalAmount:   goal.CurrentAmount,
		OriginalCurrency: userCurrency,
		Description:      fmt.Sprintf("Refund from cancelled goal: %s", goal.Name),
		Date:             now,
		CreatedAt:        now,
	}
}

// applyContribution adds the amount to the goal and flips it to completed the
// moment the target is reached.
func applyContribution(goal *models.Goal, amount float64, now time.Time) {
	goal.CurrentAmount += amount
	if goal.CurrentAmount >= goal.TargetAmount && goal.Status == models.GoalActive {
		goal.Status = models.GoalCompleted
		completedAt := now
		goal.CompletedAt = &completedAt
	}
}

// progressFor derives the reporting figures for a goal. A deadline that does
// not parse, or one already passed, yields zero days remaining and no daily
// requirement rather than an error.
func progressFor(goal *models.Goal, now time.Time) dto.GoalProgressResponse {
	resp := dto.GoalProgressResponse{GoalResponse: toGoalResponse(goal)}

	if goal.TargetAmount > 0 {
		resp.ProgressPercentage = round2(goal.CurrentAmount / goal.TargetAmount * 100)
	}

	remaining := goal.TargetAmount - goal.CurrentAmount
	if remaining < 0 {
		remaining = 0
	}
	resp.Remaining = remaining

	deadline, err := time.Parse(dateLayout, goal.Deadline)
	if err != nil {
		return resp
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int64(deadline.Sub(today).Hours() / 24)
	if days < 0 {
		days = 0
	}
	resp.DaysRemaining = days

	if days > 0 {
		resp.DailySavingsRequired = round2(remaining / float64(days))
	}

	return resp
}
