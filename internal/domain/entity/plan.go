// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	// WeeksPerPlan is the number of weeks in the planning grid.
	WeeksPerPlan = 4
	// DaysPerWeek is the number of days per week, Monday = 0.
	DaysPerWeek = 7
	// Sunday is the day index whose main meal is always lunch.
	Sunday = 6
)

// WeekDays holds the short day names indexed by day.
var WeekDays = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ValidWeek reports whether week is within [1, WeeksPerPlan].
func ValidWeek(week int) bool {
	return week >= 1 && week <= WeeksPerPlan
}

// ValidDay reports whether day is within [0, DaysPerWeek).
func ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// SlotKey identifies a single (week, day, meal type) coordinate.
type SlotKey struct {
	Week     int
	Day      int
	MealType MealType
}

// DayKey identifies a (week, day) coordinate.
type DayKey struct {
	Week int
	Day  int
}

// SelectionKind is the tag of a slot selection.
type SelectionKind string

const (
	SelectionSkip    SelectionKind = "skip"
	SelectionMealRef SelectionKind = "meal"
	SelectionCustom  SelectionKind = "custom"
)

// Selection is the state of a slot: Skip, MealRef(id) or Custom(price).
// Price holds the raw user text and is only meaningful for Custom.
type Selection struct {
	Kind   SelectionKind
	MealID string
	Price  string
}

// Skip returns the empty selection.
func Skip() Selection {
	return Selection{Kind: SelectionSkip}
}

// MealRef returns a selection pointing at a catalog meal.
func MealRef(id string) Selection {
	return Selection{Kind: SelectionMealRef, MealID: id}
}

// Custom returns a selection with a user-entered price.
// An empty price keeps whatever price the slot already remembers.
func Custom(price string) Selection {
	return Selection{Kind: SelectionCustom, Price: price}
}

// IsSkip reports whether the selection is Skip (or the zero value).
func (s Selection) IsSkip() bool {
	return s.Kind == SelectionSkip || s.Kind == ""
}

// Plan is the full state of one meal plan session.
type Plan struct {
	ID           uuid.UUID
	SelectedWeek int
	Selections   map[SlotKey]Selection
	CustomPrices map[SlotKey]string // price field per slot, kept across Skip
	MainChoices  map[DayKey]MealType
	Budgets      BudgetTargets
	DigestEmail  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPlan creates an empty plan on week 1 with the given budgets.
func NewPlan(budgets BudgetTargets) *Plan {
	now := time.Now().UTC()

	return &Plan{
		ID:           uuid.New(),
		SelectedWeek: 1,
		Selections:   make(map[SlotKey]Selection),
		CustomPrices: make(map[SlotKey]string),
		MainChoices:  make(map[DayKey]MealType),
		Budgets:      budgets.Clone(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Selection returns the selection of a slot, Skip when never set.
func (p *Plan) Selection(key SlotKey) Selection {
	if sel, ok := p.Selections[key]; ok {
		return sel
	}
	return Skip()
}

// Touch updates the modification timestamp.
func (p *Plan) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// EnsureMaps initializes nil maps so a decoded or hand-built plan can be mutated.
func (p *Plan) EnsureMaps() {
	if p.Selections == nil {
		p.Selections = make(map[SlotKey]Selection)
	}
	if p.CustomPrices == nil {
		p.CustomPrices = make(map[SlotKey]string)
	}
	if p.MainChoices == nil {
		p.MainChoices = make(map[DayKey]MealType)
	}
	if p.Budgets == nil {
		p.Budgets = make(BudgetTargets)
	}
}
