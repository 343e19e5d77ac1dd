package dto

type CreateGoalRequest struct {
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline"`
	Category     string  `json:"category"`
	Currency     string  `json:"currency"`
}

type GoalResponse struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline"`
	Category      string  `json:"category"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	CompletedAt   string  `json:"completed_at,omitempty"`
}

// GoalProgressResponse is an active goal enriched with derived progress
// figures for the listing endpoint.
type GoalProgressResponse struct {
	GoalResponse
	ProgressPercentage   float64 `json:"progress_percentage"`
	Remaining            float64 `json:"remaining"`
	DaysRemaining        int64   `json:"days_remaining"`
	DailySavingsRequired float64 `json:"daily_savings_required"`
}

type ContributeRequest struct {
	GoalID string  `json:"goal_id"`
	Amount float64 `json:"amount"`
}

type DeleteGoalResponse struct {
	WasComplete    bool    `json:"was_complete"`
	ReturnedAmount float64 `json:"returned_amount"`
	Message        string  `json:"message"`
}
