// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/domain/mealplan"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// MealResponse represents a catalog meal.
type MealResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// SummaryLineResponse is one total compared against its budget.
// Delta is omitted when actual and target are equal.
type SummaryLineResponse struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Actual float64  `json:"actual"`
	Target float64  `json:"target"`
	Delta  *float64 `json:"delta,omitempty"`
	Status string   `json:"status"`
}

func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// ToSummaryLineResponse converts a summary line.
func ToSummaryLineResponse(l mealplan.SummaryLine) SummaryLineResponse {
	response := SummaryLineResponse{
		Key:    string(l.Key),
		Label:  l.Label,
		Actual: amount(l.Actual),
		Target: amount(l.Target),
		Status: "on_budget",
	}
	if l.Delta.Shown {
		delta := amount(l.Delta.Amount)
		response.Delta = &delta
		if l.Delta.OverBudget() {
			response.Status = "over_budget"
		} else {
			response.Status = "under_budget"
		}
	}
	return response
}
