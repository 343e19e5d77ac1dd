package models

import (
	"time"

	"github.com/google/uuid"
)

// Budget is a per-category monthly spending cap. Unique per
// (username, category, month); re-setting the same key updates the amount
// in place.
type Budget struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Category  string    `db:"category"`
	Amount    float64   `db:"amount"`
	Month     string    `db:"month"` // "YYYY-MM"
	Currency  string    `db:"currency"`
	CreatedAt time.Time `db:"created_at"`
}
