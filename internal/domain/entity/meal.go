// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MealType represents the kind of meal a slot holds.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// MealTypes lists every meal type in display order.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}

// IsValid reports whether the meal type is one of the known meal types.
func (t MealType) IsValid() bool {
	return t == MealTypeBreakfast || t == MealTypeLunch || t == MealTypeDinner
}

// ParseMealType converts a raw string into a MealType.
func ParseMealType(s string) (MealType, bool) {
	t := MealType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// Meal represents a selectable catalog item. Meals never change at runtime.
type Meal struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// DefaultMeal pre-seeds the breakfast options of a day with a named meal.
// Day is zero-based (Monday = 0).
type DefaultMeal struct {
	Week     int
	Day      int
	MealName string
}

// Catalog holds the static meal lists, the defaults table and the default budgets.
type Catalog struct {
	Breakfast      []Meal
	Lunch          []Meal
	Dinner         []Meal
	BasicBreakfast []string // IDs of the breakfast items offered every day
	Defaults       []DefaultMeal
	DefaultBudgets BudgetTargets
}

// Meals returns the full list for a meal type.
func (c *Catalog) Meals(mealType MealType) []Meal {
	switch mealType {
	case MealTypeBreakfast:
		return c.Breakfast
	case MealTypeLunch:
		return c.Lunch
	case MealTypeDinner:
		return c.Dinner
	default:
		return nil
	}
}

// FindByID looks up a meal by its ID within a meal type.
func (c *Catalog) FindByID(mealType MealType, id string) (Meal, bool) {
	for _, m := range c.Meals(mealType) {
		if m.ID == id {
			return m, true
		}
	}
	return Meal{}, false
}

// FindByName looks up a meal by name, ignoring case.
func (c *Catalog) FindByName(mealType MealType, name string) (Meal, bool) {
	for _, m := range c.Meals(mealType) {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Meal{}, false
}

// DefaultMealFor returns the breakfast meal of the first defaults table
// entry for a week and day whose name resolves in the breakfast list.
func (c *Catalog) DefaultMealFor(week, day int) (Meal, bool) {
	for _, d := range c.Defaults {
		if d.Week != week || d.Day != day {
			continue
		}
		if m, ok := c.FindByName(MealTypeBreakfast, d.MealName); ok {
			return m, true
		}
	}
	return Meal{}, false
}
