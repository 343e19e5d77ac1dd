package dto

type SetBudgetRequest struct {
	Username string  `json:"username"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Month    string  `json:"month"`
	Currency string  `json:"currency"`
}

type BudgetResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Month     string  `json:"month"`
	Currency  string  `json:"currency"`
	CreatedAt string  `json:"createdAt"`
}

// BudgetStatusEntry is one budget joined against the month's spending.
type BudgetStatusEntry struct {
	Category   string  `json:"category"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
	Currency   string  `json:"currency"`
}

type BudgetStatusResponse struct {
	Month        string              `json:"month"`
	BudgetStatus []BudgetStatusEntry `json:"budget_status"`
	Alerts       []BudgetStatusEntry `json:"alerts"`
}
