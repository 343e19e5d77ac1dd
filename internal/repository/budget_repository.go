package repository

import (
	"context"

	"finledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const budgetColumns = "id, username, category, amount, month, currency, created_at"

type BudgetRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewBudgetRepository(db DBTX, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts a budget or, when one already exists for the same
// (username, category, month), updates its amount and currency in place.
// The stored id and created_at survive an update.
func (r *BudgetRepository) Upsert(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	query := squirrel.Insert("budgets").
		Columns("id", "username", "category", "amount", "month", "currency", "created_at").
		Values(budget.ID, budget.Username, budget.Category, budget.Amount, budget.Month, budget.Currency, budget.CreatedAt).
		Suffix("ON CONFLICT (username, category, month) DO UPDATE SET amount = EXCLUDED.amount, currency = EXCLUDED.currency").
		Suffix("RETURNING " + budgetColumns).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var stored models.Budget
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&stored.ID, &stored.Username, &stored.Category, &stored.Amount,
		&stored.Month, &stored.Currency, &stored.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// ListByUser returns the user's budgets, optionally restricted to one month.
func (r *BudgetRepository) ListByUser(ctx context.Context, username, month string) ([]models.Budget, error) {
	query := squirrel.Select(budgetColumns).
		From("budgets").
		Where(squirrel.Eq{"username": username}).
		OrderBy("month DESC", "category ASC").
		PlaceholderFormat(squirrel.Dollar)
	if month != "" {
		query = query.Where(squirrel.Eq{"month": month})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.Username, &b.Category, &b.Amount, &b.Month, &b.Currency, &b.CreatedAt); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

// Delete removes the user's budget by id and reports whether one existed.
func (r *BudgetRepository) Delete(ctx context.Context, username string, id uuid.UUID) (bool, error) {
	query := squirrel.Delete("budgets").
		Where(squirrel.Eq{"id": id, "username": username}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
