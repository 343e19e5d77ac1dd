package repository

import (
	"context"
	"time"

	"finledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const transactionColumns = "id, username, type, category, amount, original_amount, original_currency, description, date, created_at"

type TransactionRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewTransactionRepository(db DBTX, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TransactionRepository) WithTx(tx pgx.Tx) *TransactionRepository {
	return &TransactionRepository{db: tx, logger: r.logger}
}

func (r *TransactionRepository) Insert(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns("id", "username", "type", "category", "amount", "original_amount", "original_currency", "description", "date", "created_at").
		Values(tx.ID, tx.Username, tx.Type, tx.Category, tx.Amount, tx.OriginalAmount, tx.OriginalCurrency, tx.Description, tx.Date, tx.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListByUser returns all of a user's transactions, newest date first, ties
// broken by insertion order.
func (r *TransactionRepository) ListByUser(ctx context.Context, username string) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns).
		From("transactions").
		Where(squirrel.Eq{"username": username}).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

// ListByUserBetween returns the user's transactions with from <= date < to,
// newest first.
func (r *TransactionRepository) ListByUserBetween(ctx context.Context, username string, from, to time.Time) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns).
		From("transactions").
		Where(squirrel.Eq{"username": username}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

func (r *TransactionRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Transaction, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Username, &tx.Type, &tx.Category, &tx.Amount,
			&tx.OriginalAmount, &tx.OriginalCurrency, &tx.Description, &tx.Date, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// Delete removes the user's transaction by id and reports whether anything
// was removed. Scoping by username keeps one user from deleting another's
// entries.
func (r *TransactionRepository) Delete(ctx context.Context, username string, id uuid.UUID) (bool, error) {
	query := squirrel.Delete("transactions").
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

// Balance derives the user's balance: income sum minus expense sum.
func (r *TransactionRepository) Balance(ctx context.Context, username string) (float64, error) {
	query := squirrel.Select("COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)").
		From("transactions").
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&balance); err != nil {
		return 0, err
	}

	return balance, nil
}

// CategorySpending sums the user's expenses per category for dates in
// [from, to).
func (r *TransactionRepository) CategorySpending(ctx context.Context, username string, from, to time.Time) (map[string]float64, error) {
	query := squirrel.Select("category", "SUM(amount)").
		From("transactions").
		Where(squirrel.Eq{"username": username, "type": models.TypeExpense}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		GroupBy("category").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spending := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		spending[category] = total
	}

	return spending, rows.Err()
}
