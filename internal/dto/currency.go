package dto

type RatesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

type UpdateRatesRequest struct {
	Rates map[string]float64 `json:"rates"`
}
