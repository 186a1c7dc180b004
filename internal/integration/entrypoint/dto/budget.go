package dto

// UpdateBudgetRequest carries the budget as typed text.
// Unparsable text falls back to the default budget.
type UpdateBudgetRequest struct {
	Amount string `json:"amount"`
}

// BudgetResponse represents a budget target after an update or reset.
type BudgetResponse struct {
	Key         string  `json:"key"`
	Amount      float64 `json:"amount"`
	UsedDefault bool    `json:"used_default"`
}
