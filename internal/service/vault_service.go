package service

import (
	"context"
	"errors"
	"time"

	"finledger/internal/dto"
	"finledger/internal/models"
	"finledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrInsufficientVaultFunds = errors.New("insufficient funds in savings vault")

type VaultService struct {
	pool         *pgxpool.Pool
	transactions *repository.TransactionRepository
	users        *repository.UserRepository
	logger       *zap.Logger
}

func NewVaultService(
	pool *pgxpool.Pool,
	transactions *repository.TransactionRepository,
	users *repository.UserRepository,
	logger *zap.Logger,
) *VaultService {
	return &VaultService{
		pool:         pool,
		transactions: transactions,
		users:        users,
		logger:       logger,
	}
}

// Deposit moves money from the balance into the vault, recording the move as
// an expense so the balance shrinks by the same amount. The balance may go
// negative here; only withdrawals are guarded.
func (s *VaultService) Deposit(ctx context.Context, req *dto.VaultTransferRequest) (*dto.UserResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return s.transfer(ctx, req.Username, req.Amount, true)
}

// Withdraw moves money from the vault back to the balance. Fails when the
// vault holds less than the requested amount.
func (s *VaultService) Withdraw(ctx context.Context, req *dto.VaultTransferRequest) (*dto.UserResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return s.transfer(ctx, req.Username, req.Amount, false)
}

// checkVaultWithdrawal guards the only vault direction with a sufficiency
// rule; deposits are unguarded. Runs after the user row is locked, so the
// vault balance cannot move under it.
func checkVaultWithdrawal(vault, amount float64) error {
	if vault < amount {
		return ErrInsufficientVaultFunds
	}
	return nil
}

func (s *VaultService) transfer(ctx context.Context, username string, amount float64, deposit bool) (*dto.UserResponse, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	transactions := s.transactions.WithTx(tx)
	users := s.users.WithTx(tx)

	user, err := users.GetByUsernameForUpdate(ctx, username)
	if err != nil {
		return nil, userLookupError(err)
	}

	var newVault float64
	var entry *models.Transaction
	now := time.Now()

	if deposit {
		newVault = user.SavingsVault + amount
		entry = &models.Transaction{
			ID:               uuid.New(),
			Username:         user.Username,
			Type:             models.TypeExpense,
			Category:         models.CategorySavings,
			Amount:           amount,
			OriginalAmount:   amount,
			OriginalCurrency: user.Currency,
			Description:      "Transfer to Savings Vault",
			Date:             now,
			CreatedAt:        now,
		}
	} else {
		if err := checkVaultWithdrawal(user.SavingsVault, amount); err != nil {
			return nil, err
		}
		newVault = user.SavingsVault - amount
		entry = &models.Transaction{
			ID:               uuid.New(),
			Username:         user.Username,
			Type:             models.TypeIncome,
			Category:         models.CategorySavingsWithdrawal,
			Amount:           amount,
			OriginalAmount:   amount,
			OriginalCurrency: user.Currency,
			Description:      "Withdraw from Savings Vault",
			Date:             now,
			CreatedAt:        now,
		}
	}

	if err := transactions.Insert(ctx, entry); err != nil {
		return nil, err
	}

	if err := users.SetSavingsVault(ctx, user.Username, newVault); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	user.SavingsVault = newVault

	s.logger.Info("Vault transfer",
		zap.String("username", user.Username),
		zap.Bool("deposit", deposit),
		zap.Float64("amount", amount),
		zap.Float64("vault", newVault),
	)

	resp := toUserResponse(user)
	return &resp, nil
}
