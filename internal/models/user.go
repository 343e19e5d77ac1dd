package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Balance is never stored here: it is always
// derived from the transaction ledger. SavingsVault is the separate
// non-liquid bucket, kept consistent with the ledger by mirrored transactions.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	Currency     string    `db:"currency"`
	SavingsVault float64   `db:"savings_vault"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
