package dto

import (
	"github.com/mealsync/backend/internal/domain/entity"
)

// DefaultMealResponse is a defaults table row. Day is zero-based.
type DefaultMealResponse struct {
	Week     int    `json:"week"`
	Day      int    `json:"day"`
	MealName string `json:"meal_name"`
}

// CatalogResponse represents the full meal catalog.
type CatalogResponse struct {
	Breakfast      []MealResponse        `json:"breakfast"`
	Lunch          []MealResponse        `json:"lunch"`
	Dinner         []MealResponse        `json:"dinner"`
	BasicBreakfast []string              `json:"basic_breakfast"`
	Defaults       []DefaultMealResponse `json:"defaults"`
	DefaultBudgets map[string]float64    `json:"default_budgets"`
}

// OptionResponse is a selectable option of a slot.
// Kind is "skip", "custom" or "meal"; meal options carry the catalog meal.
type OptionResponse struct {
	Kind  string   `json:"kind"`
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Price *float64 `json:"price,omitempty"`
}

// OptionsResponse represents the options of one slot.
type OptionsResponse struct {
	Week     int              `json:"week"`
	Day      int              `json:"day"`
	MealType string           `json:"meal_type"`
	Options  []OptionResponse `json:"options"`
}

// ToMealResponses converts catalog meals.
func ToMealResponses(meals []entity.Meal) []MealResponse {
	out := make([]MealResponse, 0, len(meals))
	for _, m := range meals {
		out = append(out, MealResponse{ID: m.ID, Name: m.Name, Price: amount(m.Price)})
	}
	return out
}

// ToCatalogResponse converts the catalog.
func ToCatalogResponse(c *entity.Catalog) CatalogResponse {
	response := CatalogResponse{
		Breakfast:      ToMealResponses(c.Breakfast),
		Lunch:          ToMealResponses(c.Lunch),
		Dinner:         ToMealResponses(c.Dinner),
		BasicBreakfast: append([]string{}, c.BasicBreakfast...),
		Defaults:       make([]DefaultMealResponse, 0, len(c.Defaults)),
		DefaultBudgets: make(map[string]float64, len(entity.BudgetKeys)),
	}
	for _, d := range c.Defaults {
		response.Defaults = append(response.Defaults, DefaultMealResponse{Week: d.Week, Day: d.Day, MealName: d.MealName})
	}
	for _, key := range entity.BudgetKeys {
		response.DefaultBudgets[string(key)] = amount(c.DefaultBudgets.Get(key))
	}
	return response
}

// ToOptionResponses lists the skip and custom pseudo options followed by meals.
func ToOptionResponses(meals []entity.Meal) []OptionResponse {
	out := []OptionResponse{
		{Kind: string(entity.SelectionSkip), Name: "Skip"},
		{Kind: string(entity.SelectionCustom), Name: "Custom Meal"},
	}
	for _, m := range meals {
		price := amount(m.Price)
		out = append(out, OptionResponse{
			Kind:  string(entity.SelectionMealRef),
			ID:    m.ID,
			Name:  m.Name,
			Price: &price,
		})
	}
	return out
}
