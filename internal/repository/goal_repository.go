package repository

import (
	"context"

	"finledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const goalColumns = "id, username, name, target_amount, current_amount, deadline, category, currency, status, created_at, completed_at"

type GoalRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewGoalRepository(db DBTX, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *GoalRepository) WithTx(tx pgx.Tx) *GoalRepository {
	return &GoalRepository{db: tx, logger: r.logger}
}

func (r *GoalRepository) Insert(ctx context.Context, goal *models.Goal) error {
	query := squirrel.Insert("goals").
		Columns("id", "username", "name", "target_amount", "current_amount", "deadline", "category", "currency", "status", "created_at", "completed_at").
		Values(goal.ID, goal.Username, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.Category, goal.Currency, goal.Status, goal.CreatedAt, goal.CompletedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error) {
	query := squirrel.Select(goalColumns).
		From("goals").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var goal models.Goal
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&goal.ID, &goal.Username, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount,
		&goal.Deadline, &goal.Category, &goal.Currency, &goal.Status, &goal.CreatedAt, &goal.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

func (r *GoalRepository) ListActiveByUser(ctx context.Context, username string) ([]models.Goal, error) {
	query := squirrel.Select(goalColumns).
		From("goals").
		Where(squirrel.Eq{"username": username, "status": models.GoalActive}).
		OrderBy("created_at ASC").
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

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(
			&goal.ID, &goal.Username, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount,
			&goal.Deadline, &goal.Category, &goal.Currency, &goal.Status, &goal.CreatedAt, &goal.CompletedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// UpdateProgress writes back the contribution-tracking fields.
func (r *GoalRepository) UpdateProgress(ctx context.Context, goal *models.Goal) error {
	query := squirrel.Update("goals").
		Set("current_amount", goal.CurrentAmount).
		Set("status", goal.Status).
		Set("completed_at", goal.CompletedAt).
		Where(squirrel.Eq{"id": goal.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete removes the user's goal by id and reports whether one existed.
func (r *GoalRepository) Delete(ctx context.Context, username string, id uuid.UUID) (bool, error) {
	query := squirrel.Delete("goals").
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
