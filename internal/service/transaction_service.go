package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"finledger/internal/dto"
	"finledger/internal/models"
	"finledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidDate            = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidMonth           = errors.New("month must be in YYYY-MM format")
)

type TransactionService struct {
	transactions *repository.TransactionRepository
	users        *repository.UserRepository
	converter    CurrencyConverter
	logger       *zap.Logger
}

func NewTransactionService(
	transactions *repository.TransactionRepository,
	users *repository.UserRepository,
	converter CurrencyConverter,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		users:        users,
		converter:    converter,
		logger:       logger,
	}
}

// Add appends a ledger entry. The amount is normalized into the owner's base
// currency when the input currency differs; the entered amount and currency
// are preserved alongside.
func (s *TransactionService) Add(ctx context.Context, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	txType := models.TransactionType(req.Type)
	if txType != models.TypeIncome && txType != models.TypeExpense {
		return nil, ErrInvalidTransactionType
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	inputCurrency := strings.ToUpper(req.Currency)
	if inputCurrency == "" {
		inputCurrency = user.Currency
	}

	amount := req.Amount
	if inputCurrency != user.Currency {
		amount, err = s.converter.Convert(req.Amount, inputCurrency, user.Currency)
		if err != nil {
			return nil, err
		}
	}

	tx := &models.Transaction{
		ID:               uuid.New(),
		Username:         user.Username,
		Type:             txType,
		Category:         req.Category,
		Amount:           amount,
		OriginalAmount:   req.Amount,
		OriginalCurrency: inputCurrency,
		Description:      req.Description,
		Date:             date,
		CreatedAt:        time.Now(),
	}

	if err := s.transactions.Insert(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction added",
		zap.String("username", tx.Username),
		zap.String("type", string(tx.Type)),
		zap.String("category", tx.Category),
		zap.Float64("amount", tx.Amount),
	)

	resp := toTransactionResponse(tx)
	return &resp, nil
}

// List returns all of the user's transactions, newest date first.
func (s *TransactionService) List(ctx context.Context, username string) ([]dto.TransactionResponse, error) {
	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	transactions, err := s.transactions.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	return responses, nil
}

// Delete removes one of the user's transactions. A foreign or unknown id
// reads as missing.
func (s *TransactionService) Delete(ctx context.Context, username, id string) error {
	txID, err := uuid.Parse(id)
	if err != nil {
		return ErrTransactionNotFound
	}

	removed, err := s.transactions.Delete(ctx, username, txID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrTransactionNotFound
	}

	s.logger.Info("Transaction deleted", zap.String("username", username), zap.String("id", id))
	return nil
}

// Balance derives the user's liquid balance from the ledger.
func (s *TransactionService) Balance(ctx context.Context, username string) (float64, error) {
	return s.transactions.Balance(ctx, username)
}

// MonthlyReport summarizes the user's ledger, optionally restricted to one
// month, together with the vault balance.
func (s *TransactionService) MonthlyReport(ctx context.Context, username, month string) (*dto.MonthlyReportResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var transactions []models.Transaction
	if month != "" {
		from, to, err := monthRange(month)
		if err != nil {
			return nil, ErrInvalidMonth
		}
		transactions, err = s.transactions.ListByUserBetween(ctx, username, from, to)
		if err != nil {
			return nil, err
		}
	} else {
		transactions, err = s.transactions.ListByUser(ctx, username)
		if err != nil {
			return nil, err
		}
	}

	income, expense, breakdown := summarizeTransactions(transactions)

	return &dto.MonthlyReportResponse{
		TotalIncome:       income,
		TotalExpense:      expense,
		Balance:           income - expense,
		CategoryBreakdown: breakdown,
		TransactionCount:  len(transactions),
		Month:             month,
		SavingsVault:      user.SavingsVault,
	}, nil
}

// summarizeTransactions totals income and expenses and breaks expenses down
// per category. Order of the input does not matter.
func summarizeTransactions(transactions []models.Transaction) (income, expense float64, breakdown map[string]float64) {
	breakdown = make(map[string]float64)
	for _, tx := range transactions {
		switch tx.Type {
		case models.TypeIncome:
			income += tx.Amount
		case models.TypeExpense:
			expense += tx.Amount
			breakdown[tx.Category] += tx.Amount
		}
	}
	return income, expense, breakdown
}
