package models

import (
	"time"

	"github.com/google/uuid"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalCancelled GoalStatus = "cancelled"
)

// Goal is a savings target. Contributions move money out of the ledger into
// CurrentAmount; the goal completes once CurrentAmount reaches TargetAmount.
// Deadline stays a raw date string: a malformed value degrades the progress
// figures to zero instead of failing the listing.
type Goal struct {
	ID            uuid.UUID  `db:"id"`
	Username      string     `db:"username"`
	Name          string     `db:"name"`
	TargetAmount  float64    `db:"target_amount"`
	CurrentAmount float64    `db:"current_amount"`
	Deadline      string     `db:"deadline"` // "YYYY-MM-DD"
	Category      string     `db:"category"`
	Currency      string     `db:"currency"`
	Status        GoalStatus `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	CompletedAt   *time.Time `db:"completed_at"`
}
