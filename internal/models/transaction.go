package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Mirror categories used when a goal or vault movement appends its
// ledger entry.
const (
	CategorySavings           = "Savings"
	CategoryGoalRefund        = "Goal Refund"
	CategorySavingsWithdrawal = "Savings Withdrawal"
)

// Transaction is a single ledger entry. Amount is always in the owner's
// base currency; OriginalAmount/OriginalCurrency preserve what was entered.
// Entries are immutable once created except for deletion.
type Transaction struct {
	ID               uuid.UUID       `db:"id"`
	Username         string          `db:"username"`
	Type             TransactionType `db:"type"`
	Category         string          `db:"category"`
	Amount           float64         `db:"amount"`
	OriginalAmount   float64         `db:"original_amount"`
	OriginalCurrency string          `db:"original_currency"`
	Description      string          `db:"description"`
	Date             time.Time       `db:"date"`
	CreatedAt        time.Time       `db:"created_at"`
}
