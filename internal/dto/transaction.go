package dto

type CreateTransactionRequest struct {
	Username    string  `json:"username"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Currency    string  `json:"currency"`
}

type TransactionResponse struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Type             string  `json:"type"`
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	OriginalAmount   float64 `json:"originalAmount"`
	OriginalCurrency string  `json:"originalCurrency"`
	Description      string  `json:"description"`
	Date             string  `json:"date"`
	CreatedAt        string  `json:"createdAt"`
}

type MonthlyReportResponse struct {
	TotalIncome       float64            `json:"total_income"`
	TotalExpense      float64            `json:"total_expense"`
	Balance           float64            `json:"balance"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	TransactionCount  int                `json:"transaction_count"`
	Month             string             `json:"month,omitempty"`
	SavingsVault      float64            `json:"savings_vault"`
}
