package repository

import (
	"context"
	"time"

	"finledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const userColumns = "id, username, email, full_name, password_hash, currency, savings_vault, created_at, updated_at"

type UserRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewUserRepository(db DBTX, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx, logger: r.logger}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns("id", "username", "email", "full_name", "password_hash", "currency", "savings_vault", "created_at", "updated_at").
		Values(user.ID, user.Username, user.Email, user.FullName, user.PasswordHash, user.Currency, user.SavingsVault, user.CreatedAt, user.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getByUsername(ctx, username, false)
}

// GetByUsernameForUpdate locks the user row for the rest of the enclosing
// transaction. Every ledger-linked mutation takes this lock first so writes
// for the same user are serialized.
func (r *UserRepository) GetByUsernameForUpdate(ctx context.Context, username string) (*models.User, error) {
	return r.getByUsername(ctx, username, true)
}

func (r *UserRepository) getByUsername(ctx context.Context, username string, forUpdate bool) (*models.User, error) {
	query := squirrel.Select(userColumns).
		From("users").
		Where(squirrel.Expr("LOWER(username) = LOWER(?)", username)).
		PlaceholderFormat(squirrel.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash,
		&user.Currency, &user.SavingsVault, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Exists reports whether a user with the given username or email is already
// registered, both compared case-insensitively.
func (r *UserRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	query := squirrel.Select("COUNT(1)").
		From("users").
		Where(squirrel.Or{
			squirrel.Expr("LOWER(username) = LOWER(?)", username),
			squirrel.Expr("LOWER(email) = LOWER(?)", email),
		}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *UserRepository) UpdateFullName(ctx context.Context, username, fullName string) error {
	return r.updateField(ctx, username, "full_name", fullName)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	return r.updateField(ctx, username, "password_hash", passwordHash)
}

func (r *UserRepository) UpdateCurrency(ctx context.Context, username, currency string) error {
	return r.updateField(ctx, username, "currency", currency)
}

// SetSavingsVault writes the vault balance computed by the caller. Meant to
// run inside a transaction holding the user row lock.
func (r *UserRepository) SetSavingsVault(ctx context.Context, username string, amount float64) error {
	return r.updateField(ctx, username, "savings_vault", amount)
}

func (r *UserRepository) updateField(ctx context.Context, username, column string, value any) error {
	query := squirrel.Update("users").
		Set(column, value).
		Set("updated_at", time.Now()).
		Where(squirrel.Expr("LOWER(username) = LOWER(?)", username)).
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
