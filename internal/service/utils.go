package service

import (
	"errors"
	"math"
	"time"

	"finledger/internal/dto"
	"finledger/internal/models"

	"github.com/jackc/pgx/v5"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// CurrencyConverter is the slice of currency.Converter the services need.
type CurrencyConverter interface {
	Convert(amount float64, from, to string) (float64, error)
	Supported(code string) bool
}

// round2 rounds to two decimal places, the precision every derived monetary
// figure is reported at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// userLookupError translates a repository miss into the service sentinel.
func userLookupError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}

// monthRange resolves a "YYYY-MM" month into its [start, end) date interval.
// Comparing parsed dates instead of string prefixes keeps "2024-1" from
// matching "2024-11".
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Currency:     user.Currency,
		SavingsVault: user.SavingsVault,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:               tx.ID.String(),
		Username:         tx.Username,
		Type:             string(tx.Type),
		Category:         tx.Category,
		Amount:           tx.Amount,
		OriginalAmount:   tx.OriginalAmount,
		OriginalCurrency: tx.OriginalCurrency,
		Description:      tx.Description,
		Date:             tx.Date.Format(dateLayout),
		CreatedAt:        tx.CreatedAt.Format(time.RFC3339),
	}
}

func toBudgetResponse(budget *models.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:        budget.ID.String(),
		Username:  budget.Username,
		Category:  budget.Category,
		Amount:    budget.Amount,
		Month:     budget.Month,
		Currency:  budget.Currency,
		CreatedAt: budget.CreatedAt.Format(time.RFC3339),
	}
}

func toGoalResponse(goal *models.Goal) dto.GoalResponse {
	resp := dto.GoalResponse{
		ID:            goal.ID.String(),
		Username:      goal.Username,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		Deadline:      goal.Deadline,
		Category:      goal.Category,
		Currency:      goal.Currency,
		Status:        string(goal.Status),
		CreatedAt:     goal.CreatedAt.Format(time.RFC3339),
	}
	if goal.CompletedAt != nil {
		resp.CompletedAt = goal.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
