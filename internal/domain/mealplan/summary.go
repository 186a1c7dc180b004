package mealplan

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/domain/valueobject"
)

// NotPlannedLabel is shown for a slot without a selection.
const NotPlannedLabel = "Not planned"

// SummaryLine is one total compared against its budget target.
type SummaryLine struct {
	Key    entity.BudgetKey
	Label  string
	Actual decimal.Decimal
	Target decimal.Decimal
	Delta  valueobject.BudgetDelta
}

// Summary holds the four totals of a plan, the weekly one for a given week.
type Summary struct {
	Week  int
	Lines []SummaryLine
}

// Line returns the summary line of a budget key.
func (s Summary) Line(key entity.BudgetKey) (SummaryLine, bool) {
	for _, l := range s.Lines {
		if l.Key == key {
			return l, true
		}
	}
	return SummaryLine{}, false
}

// Summary computes every total of the plan with its budget delta.
// Week selects the week used for the weekly line; an out-of-range week
// falls back to the plan's selected week.
func (a *Aggregator) Summary(plan *entity.Plan, week int) Summary {
	if !entity.ValidWeek(week) {
		week = plan.SelectedWeek
	}

	actuals := map[entity.BudgetKey]decimal.Decimal{
		entity.BudgetWeekly:     a.WeeklyCost(plan, week),
		entity.BudgetSunday:     a.SundayCostAllWeeks(plan),
		entity.BudgetWeekdays:   a.WeekdaysCostAllWeeks(plan),
		entity.BudgetGrandTotal: a.GrandTotal(plan),
	}
	labels := map[entity.BudgetKey]string{
		entity.BudgetWeekly:     "Current Week Total",
		entity.BudgetSunday:     "Sunday Total",
		entity.BudgetWeekdays:   "Weekdays Total",
		entity.BudgetGrandTotal: "Grand Total",
	}

	summary := Summary{Week: week, Lines: make([]SummaryLine, 0, len(entity.BudgetKeys))}
	for _, key := range entity.BudgetKeys {
		target := plan.Budgets.Get(key)
		summary.Lines = append(summary.Lines, SummaryLine{
			Key:    key,
			Label:  labels[key],
			Actual: actuals[key],
			Target: target,
			Delta:  BudgetDelta(actuals[key], target),
		})
	}
	return summary
}

// SlotView is a rendered slot of the weekly board.
type SlotView struct {
	MealType    entity.MealType
	Selection   entity.Selection
	CustomPrice string
	DisplayName string
	Planned     bool
	Price       decimal.Decimal
	Options     []entity.Meal
}

// DayView is a rendered day of the weekly board.
type DayView struct {
	Day          int
	Name         string
	MainMealType entity.MealType
	CanToggle    bool
	Slots        []SlotView
}

// WeekBoard is the rendered grid of one week.
type WeekBoard struct {
	Week  int
	Days  []DayView
	Total decimal.Decimal
}

// Board renders one week of the plan: per day the main meal and dinner slots
// with their selection, display name, cost and price-sorted options.
func (a *Aggregator) Board(plan *entity.Plan, week int) WeekBoard {
	board := WeekBoard{Week: week, Total: a.WeeklyCost(plan, week)}
	if !entity.ValidWeek(week) {
		return board
	}

	board.Days = make([]DayView, 0, entity.DaysPerWeek)
	for day := 0; day < entity.DaysPerWeek; day++ {
		view := DayView{
			Day:          day,
			Name:         entity.WeekDays[day],
			MainMealType: a.MainMealType(plan, week, day),
			CanToggle:    day != entity.Sunday,
		}
		for _, mt := range a.MealTypesFor(plan, week, day) {
			view.Slots = append(view.Slots, a.Slot(plan, week, day, mt))
		}
		board.Days = append(board.Days, view)
	}
	return board
}

// Slot renders a single slot.
func (a *Aggregator) Slot(plan *entity.Plan, week, day int, mealType entity.MealType) SlotView {
	key := entity.SlotKey{Week: week, Day: day, MealType: mealType}
	name, planned := a.MealNameOf(plan, week, day, mealType)
	if !planned {
		name = NotPlannedLabel
	}

	return SlotView{
		MealType:    mealType,
		Selection:   plan.Selection(key),
		CustomPrice: plan.CustomPrices[key],
		DisplayName: name,
		Planned:     planned,
		Price:       a.PriceOf(plan, week, day, mealType),
		Options:     a.SortedOptions(mealType, week, day),
	}
}

// SortedOptions returns OptionsFor ordered by ascending price.
// Meals with equal prices keep their catalog order.
func (a *Aggregator) SortedOptions(mealType entity.MealType, week, day int) []entity.Meal {
	options := a.OptionsFor(mealType, week, day)
	sorted := make([]entity.Meal, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.LessThan(sorted[j].Price)
	})
	return sorted
}
