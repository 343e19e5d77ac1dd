package dto

type VaultTransferRequest struct {
	Username string  `json:"username"`
	Amount   float64 `json:"amount"`
}
