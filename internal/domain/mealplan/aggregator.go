// Package mealplan implements the meal plan aggregator: catalog lookups per
// slot, cost aggregation over the 4x7 grid and the plan mutations.
//
// Every operation is total. Unknown meal ids, unparsable custom prices and
// out-of-range coordinates resolve to zero cost or to a no-op; rejecting bad
// input is the job of the caller.
package mealplan

import (
	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/domain/valueobject"
)

// Aggregator computes costs over a plan using an immutable catalog.
// It holds no plan state; every call receives the plan it works on.
type Aggregator struct {
	catalog *entity.Catalog
}

// NewAggregator creates a new Aggregator for the given catalog.
func NewAggregator(catalog *entity.Catalog) *Aggregator {
	return &Aggregator{
		catalog: catalog,
	}
}

// Catalog returns the catalog the aggregator was built with.
func (a *Aggregator) Catalog() *entity.Catalog {
	return a.catalog
}

// OptionsFor returns the ordered meal options of a slot.
func (a *Aggregator) OptionsFor(mealType entity.MealType, week, day int) []entity.Meal {
	if !entity.ValidWeek(week) || !entity.ValidDay(day) {
		return nil
	}

	switch mealType {
	case entity.MealTypeBreakfast:
		if day == entity.Sunday {
			return nil
		}
		return a.breakfastOptions(week, day)
	case entity.MealTypeLunch, entity.MealTypeDinner:
		return a.catalog.Meals(mealType)
	default:
		return nil
	}
}

// breakfastOptions returns the basic breakfast items, with the first
// resolvable defaults table entry for (week, day) moved to the front.
func (a *Aggregator) breakfastOptions(week, day int) []entity.Meal {
	basic := make([]entity.Meal, 0, len(a.catalog.BasicBreakfast))
	for _, id := range a.catalog.BasicBreakfast {
		if m, ok := a.catalog.FindByID(entity.MealTypeBreakfast, id); ok {
			basic = append(basic, m)
		}
	}

	first, ok := a.catalog.DefaultMealFor(week, day)
	if !ok {
		return basic
	}

	options := make([]entity.Meal, 0, len(basic)+1)
	options = append(options, first)
	for _, m := range basic {
		if m.ID != first.ID {
			options = append(options, m)
		}
	}
	return options
}

// PriceOf returns the cost of a slot.
func (a *Aggregator) PriceOf(plan *entity.Plan, week, day int, mealType entity.MealType) decimal.Decimal {
	if !entity.ValidWeek(week) || !entity.ValidDay(day) {
		return decimal.Zero
	}

	sel := plan.Selection(entity.SlotKey{Week: week, Day: day, MealType: mealType})
	switch sel.Kind {
	case entity.SelectionCustom:
		return valueobject.ParsePriceOrZero(sel.Price)
	case entity.SelectionMealRef:
		if m, ok := a.findOption(mealType, week, day, sel.MealID); ok {
			return m.Price
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// MealNameOf returns the display name of a slot's selection.
// The second return value is false when nothing is planned.
func (a *Aggregator) MealNameOf(plan *entity.Plan, week, day int, mealType entity.MealType) (string, bool) {
	sel := plan.Selection(entity.SlotKey{Week: week, Day: day, MealType: mealType})
	switch sel.Kind {
	case entity.SelectionCustom:
		return "Custom Meal", true
	case entity.SelectionMealRef:
		if m, ok := a.findOption(mealType, week, day, sel.MealID); ok {
			return m.Name, true
		}
	}
	return "", false
}

func (a *Aggregator) findOption(mealType entity.MealType, week, day int, id string) (entity.Meal, bool) {
	for _, m := range a.OptionsFor(mealType, week, day) {
		if m.ID == id {
			return m, true
		}
	}
	return entity.Meal{}, false
}

// MainMealType returns the main meal of a day: always lunch on Sunday,
// otherwise the stored choice, breakfast by default.
func (a *Aggregator) MainMealType(plan *entity.Plan, week, day int) entity.MealType {
	if day == entity.Sunday {
		return entity.MealTypeLunch
	}
	if choice, ok := plan.MainChoices[entity.DayKey{Week: week, Day: day}]; ok && choice == entity.MealTypeLunch {
		return entity.MealTypeLunch
	}
	return entity.MealTypeBreakfast
}

// MealTypesFor returns the slots shown for a day: its main meal, then dinner.
func (a *Aggregator) MealTypesFor(plan *entity.Plan, week, day int) []entity.MealType {
	return []entity.MealType{a.MainMealType(plan, week, day), entity.MealTypeDinner}
}

// WeeklyCost sums main meal and dinner over Monday to Saturday of a week.
// Sunday is tracked separately by SundayCostAllWeeks.
func (a *Aggregator) WeeklyCost(plan *entity.Plan, week int) decimal.Decimal {
	total := decimal.Zero
	if !entity.ValidWeek(week) {
		return total
	}
	for day := 0; day < entity.Sunday; day++ {
		total = total.Add(a.PriceOf(plan, week, day, a.MainMealType(plan, week, day)))
		total = total.Add(a.PriceOf(plan, week, day, entity.MealTypeDinner))
	}
	return total
}

// SundayCostAllWeeks sums Sunday lunch and dinner over all weeks.
func (a *Aggregator) SundayCostAllWeeks(plan *entity.Plan) decimal.Decimal {
	total := decimal.Zero
	for week := 1; week <= entity.WeeksPerPlan; week++ {
		total = total.Add(a.PriceOf(plan, week, entity.Sunday, entity.MealTypeLunch))
		total = total.Add(a.PriceOf(plan, week, entity.Sunday, entity.MealTypeDinner))
	}
	return total
}

// WeekdaysCostAllWeeks sums WeeklyCost over all weeks.
func (a *Aggregator) WeekdaysCostAllWeeks(plan *entity.Plan) decimal.Decimal {
	total := decimal.Zero
	for week := 1; week <= entity.WeeksPerPlan; week++ {
		total = total.Add(a.WeeklyCost(plan, week))
	}
	return total
}

// GrandTotal is the Sunday total plus the weekdays total.
func (a *Aggregator) GrandTotal(plan *entity.Plan) decimal.Decimal {
	return a.SundayCostAllWeeks(plan).Add(a.WeekdaysCostAllWeeks(plan))
}

// BudgetDelta returns target - actual, hidden when the two are equal within 1e-9.
func BudgetDelta(actual, target decimal.Decimal) valueobject.BudgetDelta {
	return valueobject.NewBudgetDelta(actual, target)
}

// SlotAvailable reports whether a slot exists in the grid.
// Sunday has no breakfast slot.
func SlotAvailable(week, day int, mealType entity.MealType) bool {
	if !entity.ValidWeek(week) || !entity.ValidDay(day) || !mealType.IsValid() {
		return false
	}
	return !(day == entity.Sunday && mealType == entity.MealTypeBreakfast)
}

// SetSelection overwrites the selection of a slot.
// It returns false, leaving the plan untouched, when the slot does not exist.
func (a *Aggregator) SetSelection(plan *entity.Plan, week, day int, mealType entity.MealType, choice entity.Selection) bool {
	if !SlotAvailable(week, day, mealType) {
		return false
	}
	plan.EnsureMaps()
	key := entity.SlotKey{Week: week, Day: day, MealType: mealType}

	switch choice.Kind {
	case entity.SelectionCustom:
		price := choice.Price
		if price == "" {
			if remembered, ok := plan.CustomPrices[key]; ok {
				price = remembered
			} else {
				price = "0"
			}
		}
		plan.CustomPrices[key] = price
		plan.Selections[key] = entity.Custom(price)
	case entity.SelectionMealRef:
		delete(plan.CustomPrices, key)
		plan.Selections[key] = entity.MealRef(choice.MealID)
	default:
		plan.Selections[key] = entity.Skip()
	}

	plan.Touch()
	return true
}

// ToggleMainMeal flips the main meal of a weekday between breakfast and lunch.
// Sunday and out-of-range days are left untouched and return false.
func (a *Aggregator) ToggleMainMeal(plan *entity.Plan, week, day int) bool {
	if !entity.ValidWeek(week) || !entity.ValidDay(day) || day == entity.Sunday {
		return false
	}
	plan.EnsureMaps()
	key := entity.DayKey{Week: week, Day: day}

	if a.MainMealType(plan, week, day) == entity.MealTypeBreakfast {
		plan.MainChoices[key] = entity.MealTypeLunch
	} else {
		plan.MainChoices[key] = entity.MealTypeBreakfast
	}

	plan.Touch()
	return true
}

// SetBudget overwrites a budget target.
func (a *Aggregator) SetBudget(plan *entity.Plan, key entity.BudgetKey, amount decimal.Decimal) bool {
	if !key.IsValid() {
		return false
	}
	plan.EnsureMaps()
	plan.Budgets[key] = amount
	plan.Touch()
	return true
}

// ResetBudget restores a budget target to its configured default.
func (a *Aggregator) ResetBudget(plan *entity.Plan, key entity.BudgetKey) bool {
	if !key.IsValid() {
		return false
	}
	return a.SetBudget(plan, key, a.catalog.DefaultBudgets.Get(key))
}

// SelectWeek changes the week the plan is focused on.
func (a *Aggregator) SelectWeek(plan *entity.Plan, week int) bool {
	if !entity.ValidWeek(week) {
		return false
	}
	plan.SelectedWeek = week
	plan.Touch()
	return true
}
