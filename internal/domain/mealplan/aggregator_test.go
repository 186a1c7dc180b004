package mealplan

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() *entity.Catalog {
	return &entity.Catalog{
		Breakfast: []entity.Meal{
			{ID: "medu-vada", Name: "Medu vada", Price: dec("20")},
			{ID: "pongal", Name: "Pongal", Price: dec("25")},
			{ID: "sambar-vada", Name: "Sambar vada", Price: dec("32")},
			{ID: "curd-vada", Name: "Curd vada", Price: dec("32")},
			{ID: "pav-bhaji", Name: "Pav bhaji", Price: dec("38")},
			{ID: "alu-paratha", Name: "Alu paratha", Price: dec("38")},
		},
		Lunch: []entity.Meal{
			{ID: "special-lunch", Name: "Special lunch", Price: dec("80")},
			{ID: "mess-lunch", Name: "Mess lunch", Price: dec("60")},
		},
		Dinner: []entity.Meal{
			{ID: "mess-dinner", Name: "Mess dinner", Price: dec("60")},
			{ID: "special-dinner", Name: "Special dinner", Price: dec("80")},
		},
		BasicBreakfast: []string{"medu-vada", "pongal", "sambar-vada", "curd-vada"},
		Defaults: []entity.DefaultMeal{
			{Week: 1, Day: 1, MealName: "Pav bhaji"},
			{Week: 1, Day: 3, MealName: "Maggi"},
			{Week: 2, Day: 2, MealName: "pongal"},
		},
		DefaultBudgets: entity.BudgetTargets{
			entity.BudgetWeekly:     dec("840"),
			entity.BudgetSunday:     dec("2140"),
			entity.BudgetWeekdays:   dec("3360"),
			entity.BudgetGrandTotal: dec("5500"),
		},
	}
}

func newTestPlan(c *entity.Catalog) *entity.Plan {
	return entity.NewPlan(c.DefaultBudgets)
}

func mealIDs(meals []entity.Meal) []string {
	ids := make([]string, len(meals))
	for i, m := range meals {
		ids[i] = m.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAggregator_OptionsFor(t *testing.T) {
	agg := NewAggregator(testCatalog())

	tests := []struct {
		name     string
		mealType entity.MealType
		week     int
		day      int
		want     []string
	}{
		{"basic breakfast", entity.MealTypeBreakfast, 1, 0, []string{"medu-vada", "pongal", "sambar-vada", "curd-vada"}},
		{"default prepended", entity.MealTypeBreakfast, 1, 1, []string{"pav-bhaji", "medu-vada", "pongal", "sambar-vada", "curd-vada"}},
		{"unknown default ignored", entity.MealTypeBreakfast, 1, 3, []string{"medu-vada", "pongal", "sambar-vada", "curd-vada"}},
		{"default deduplicated by id", entity.MealTypeBreakfast, 2, 2, []string{"pongal", "medu-vada", "sambar-vada", "curd-vada"}},
		{"default only applies to its week", entity.MealTypeBreakfast, 2, 1, []string{"medu-vada", "pongal", "sambar-vada", "curd-vada"}},
		{"sunday breakfast empty", entity.MealTypeBreakfast, 1, 6, nil},
		{"lunch list unmodified", entity.MealTypeLunch, 3, 6, []string{"special-lunch", "mess-lunch"}},
		{"dinner list unmodified", entity.MealTypeDinner, 4, 0, []string{"mess-dinner", "special-dinner"}},
		{"week out of range", entity.MealTypeLunch, 5, 0, nil},
		{"day out of range", entity.MealTypeDinner, 1, 7, nil},
		{"unknown meal type", entity.MealType("brunch"), 1, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mealIDs(agg.OptionsFor(tt.mealType, tt.week, tt.day))
			if !equalIDs(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAggregator_OptionsFor_SkipsUnresolvedDefaults(t *testing.T) {
	catalog := testCatalog()
	catalog.Defaults = append(catalog.Defaults,
		entity.DefaultMeal{Week: 3, Day: 4, MealName: "Maggi"},
		entity.DefaultMeal{Week: 3, Day: 4, MealName: "Alu paratha"},
		entity.DefaultMeal{Week: 3, Day: 4, MealName: "Pav bhaji"},
	)
	agg := NewAggregator(catalog)

	got := mealIDs(agg.OptionsFor(entity.MealTypeBreakfast, 3, 4))
	want := []string{"alu-paratha", "medu-vada", "pongal", "sambar-vada", "curd-vada"}
	if !equalIDs(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAggregator_SortedOptions(t *testing.T) {
	agg := NewAggregator(testCatalog())

	got := mealIDs(agg.SortedOptions(entity.MealTypeBreakfast, 1, 1))
	want := []string{"medu-vada", "pongal", "sambar-vada", "curd-vada", "pav-bhaji"}
	if !equalIDs(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = mealIDs(agg.SortedOptions(entity.MealTypeLunch, 1, 0))
	want = []string{"mess-lunch", "special-lunch"}
	if !equalIDs(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAggregator_PriceOf(t *testing.T) {
	agg := NewAggregator(testCatalog())

	tests := []struct {
		name      string
		selection entity.Selection
		day       int
		mealType  entity.MealType
		want      string
	}{
		{"skip", entity.Skip(), 0, entity.MealTypeBreakfast, "0"},
		{"meal ref", entity.MealRef("pongal"), 0, entity.MealTypeBreakfast, "25"},
		{"stale meal ref", entity.MealRef("idli"), 0, entity.MealTypeBreakfast, "0"},
		{"meal ref outside slot options", entity.MealRef("alu-paratha"), 0, entity.MealTypeBreakfast, "0"},
		{"meal ref from defaults", entity.MealRef("pav-bhaji"), 1, entity.MealTypeBreakfast, "38"},
		{"custom price", entity.Custom("150.5"), 2, entity.MealTypeLunch, "150.5"},
		{"custom non numeric", entity.Custom("abc"), 2, entity.MealTypeLunch, "0"},
		{"custom empty", entity.Custom(""), 2, entity.MealTypeLunch, "0"},
		{"custom NaN", entity.Custom("NaN"), 2, entity.MealTypeLunch, "0"},
		{"custom infinity", entity.Custom("Inf"), 2, entity.MealTypeLunch, "0"},
		{"custom negative", entity.Custom("-5"), 2, entity.MealTypeLunch, "0"},
		{"custom padded", entity.Custom(" 12.25 "), 2, entity.MealTypeDinner, "12.25"},
		{"custom exponent", entity.Custom("1e50000000"), 2, entity.MealTypeDinner, "0"},
		{"custom above column range", entity.Custom("10000000000"), 2, entity.MealTypeDinner, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := newTestPlan(agg.Catalog())
			plan.Selections[entity.SlotKey{Week: 1, Day: tt.day, MealType: tt.mealType}] = tt.selection

			got := agg.PriceOf(plan, 1, tt.day, tt.mealType)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("out of range coordinates are zero", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		for _, c := range [][2]int{{0, 0}, {5, 0}, {1, -1}, {1, 7}} {
			if got := agg.PriceOf(plan, c[0], c[1], entity.MealTypeDinner); !got.IsZero() {
				t.Errorf("expected 0 for week %d day %d, got %s", c[0], c[1], got)
			}
		}
	})
}

func TestAggregator_SummaryWithHugeCustomPrice(t *testing.T) {
	agg := NewAggregator(testCatalog())
	plan := newTestPlan(agg.Catalog())
	agg.SetSelection(plan, 1, 0, entity.MealTypeDinner, entity.Custom("1e50000000"))
	agg.SetSelection(plan, 1, 1, entity.MealTypeDinner, entity.MealRef("mess-dinner"))

	summary := agg.Summary(plan, 1)
	weekly, _ := summary.Line(entity.BudgetWeekly)
	if !weekly.Actual.Equal(dec("60")) {
		t.Errorf("expected weekly 60, got %s", weekly.Actual)
	}
	if f := weekly.Delta.Amount.InexactFloat64(); f != 780 {
		t.Errorf("expected delta 780, got %v", f)
	}
}

func TestAggregator_MainMealType(t *testing.T) {
	agg := NewAggregator(testCatalog())
	plan := newTestPlan(agg.Catalog())

	if got := agg.MainMealType(plan, 1, 0); got != entity.MealTypeBreakfast {
		t.Errorf("expected breakfast by default, got %s", got)
	}
	if got := agg.MainMealType(plan, 1, entity.Sunday); got != entity.MealTypeLunch {
		t.Errorf("expected lunch on sunday, got %s", got)
	}

	plan.MainChoices[entity.DayKey{Week: 1, Day: entity.Sunday}] = entity.MealTypeBreakfast
	if got := agg.MainMealType(plan, 1, entity.Sunday); got != entity.MealTypeLunch {
		t.Errorf("expected stored choice to be ignored on sunday, got %s", got)
	}
}

func TestAggregator_ToggleMainMeal(t *testing.T) {
	agg := NewAggregator(testCatalog())

	t.Run("toggle is its own inverse", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		for week := 1; week <= entity.WeeksPerPlan; week++ {
			for day := 0; day < entity.Sunday; day++ {
				before := agg.MainMealType(plan, week, day)
				if !agg.ToggleMainMeal(plan, week, day) {
					t.Fatalf("expected toggle to apply for week %d day %d", week, day)
				}
				if agg.MainMealType(plan, week, day) == before {
					t.Errorf("expected main meal to change for week %d day %d", week, day)
				}
				agg.ToggleMainMeal(plan, week, day)
				if got := agg.MainMealType(plan, week, day); got != before {
					t.Errorf("expected %s after double toggle, got %s", before, got)
				}
			}
		}
	})

	t.Run("sunday and out of range are no-ops", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		if agg.ToggleMainMeal(plan, 1, entity.Sunday) {
			t.Error("expected sunday toggle to be rejected")
		}
		if agg.ToggleMainMeal(plan, 0, 0) || agg.ToggleMainMeal(plan, 1, 9) {
			t.Error("expected out of range toggle to be rejected")
		}
		if len(plan.MainChoices) != 0 {
			t.Errorf("expected no main choices, got %v", plan.MainChoices)
		}
	})
}

func TestAggregator_SetSelection(t *testing.T) {
	agg := NewAggregator(testCatalog())
	key := entity.SlotKey{Week: 1, Day: 2, MealType: entity.MealTypeDinner}

	t.Run("skip then price is zero", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.MealRef("mess-dinner"))
		agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.Skip())

		if got := agg.PriceOf(plan, 1, 2, entity.MealTypeDinner); !got.IsZero() {
			t.Errorf("expected 0, got %s", got)
		}
	})

	t.Run("custom without price initializes zero", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.Custom(""))

		if got := plan.CustomPrices[key]; got != "0" {
			t.Errorf("expected price field \"0\", got %q", got)
		}
		if got := plan.Selection(key); got.Kind != entity.SelectionCustom || got.Price != "0" {
			t.Errorf("expected custom selection with price 0, got %+v", got)
		}
	})

	t.Run("custom without price keeps remembered price", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.Custom("45"))
		agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.Skip())
		agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.Custom(""))

		if got := agg.PriceOf(plan, 1, 2, entity.MealTypeDinner); !got.Equal(dec("45")) {
			t.Errorf("expected 45, got %s", got)
		}
	})

	t.Run("meal ref drops custom price", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.Custom("45"))
		agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.MealRef("special-dinner"))

		if _, ok := plan.CustomPrices[key]; ok {
			t.Error("expected custom price to be removed")
		}
		if got := agg.PriceOf(plan, 1, 2, entity.MealTypeDinner); !got.Equal(dec("80")) {
			t.Errorf("expected 80, got %s", got)
		}
	})

	t.Run("unknown id accepted and priced zero", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		if !agg.SetSelection(plan, 1, 2, entity.MealTypeDinner, entity.MealRef("ghost")) {
			t.Fatal("expected selection to apply")
		}
		if got := agg.PriceOf(plan, 1, 2, entity.MealTypeDinner); !got.IsZero() {
			t.Errorf("expected 0, got %s", got)
		}
	})

	t.Run("unavailable slots are no-ops", func(t *testing.T) {
		plan := newTestPlan(agg.Catalog())
		cases := []struct {
			week, day int
			mealType  entity.MealType
		}{
			{1, entity.Sunday, entity.MealTypeBreakfast},
			{0, 0, entity.MealTypeLunch},
			{5, 0, entity.MealTypeLunch},
			{1, -1, entity.MealTypeDinner},
			{1, 7, entity.MealTypeDinner},
			{1, 0, entity.MealType("brunch")},
		}
		for _, c := range cases {
			if agg.SetSelection(plan, c.week, c.day, c.mealType, entity.Custom("10")) {
				t.Errorf("expected no-op for %+v", c)
			}
		}
		if len(plan.Selections) != 0 {
			t.Errorf("expected no selections, got %v", plan.Selections)
		}
	})
}

func TestAggregator_Scenarios(t *testing.T) {
	t.Run("breakfast and dinner on monday of week 1", func(t *testing.T) {
		catalog := &entity.Catalog{
			Breakfast: []entity.Meal{
				{ID: "medu-vada", Name: "Medu vada", Price: dec("20")},
				{ID: "pongal", Name: "Pongal", Price: dec("25")},
			},
			Dinner:         []entity.Meal{{ID: "mess-dinner", Name: "Mess dinner", Price: dec("60")}},
			BasicBreakfast: []string{"medu-vada", "pongal"},
		}
		agg := NewAggregator(catalog)
		plan := entity.NewPlan(nil)

		agg.SetSelection(plan, 1, 0, entity.MealTypeBreakfast, entity.MealRef("medu-vada"))
		agg.SetSelection(plan, 1, 0, entity.MealTypeDinner, entity.MealRef("mess-dinner"))

		if got := agg.WeeklyCost(plan, 1); !got.Equal(dec("80.00")) {
			t.Errorf("expected weekly cost 80.00, got %s", got)
		}
		if got := agg.SundayCostAllWeeks(plan); !got.Equal(dec("0.00")) {
			t.Errorf("expected sunday cost 0.00, got %s", got)
		}
		if got := agg.GrandTotal(plan); !got.Equal(dec("80.00")) {
			t.Errorf("expected grand total 80.00, got %s", got)
		}
	})

	t.Run("custom sunday lunch", func(t *testing.T) {
		agg := NewAggregator(testCatalog())
		plan := newTestPlan(agg.Catalog())

		agg.SetSelection(plan, 2, entity.Sunday, entity.MealTypeLunch, entity.Custom("150.5"))
		agg.SetSelection(plan, 2, entity.Sunday, entity.MealTypeDinner, entity.Skip())

		if got := agg.SundayCostAllWeeks(plan); !got.Equal(dec("150.50")) {
			t.Errorf("expected sunday cost 150.50, got %s", got)
		}
		if got := agg.WeeklyCost(plan, 2); !got.IsZero() {
			t.Errorf("expected sunday excluded from weekly cost, got %s", got)
		}
	})

	t.Run("under weekly budget", func(t *testing.T) {
		agg := NewAggregator(testCatalog())
		plan := newTestPlan(agg.Catalog())

		// 5 days of 80 dinners plus one day at 400 custom = 800
		for day := 0; day < 5; day++ {
			agg.SetSelection(plan, 1, day, entity.MealTypeDinner, entity.MealRef("special-dinner"))
		}
		agg.SetSelection(plan, 1, 5, entity.MealTypeDinner, entity.Custom("400"))

		actual := agg.WeeklyCost(plan, 1)
		if !actual.Equal(dec("800")) {
			t.Fatalf("expected weekly cost 800, got %s", actual)
		}

		delta := BudgetDelta(actual, plan.Budgets.Get(entity.BudgetWeekly))
		if !delta.Shown || delta.String() != "+40.00" || !delta.UnderBudget() {
			t.Errorf("expected +40.00 under budget, got %+v (%s)", delta, delta.String())
		}
	})
}

func TestAggregator_ResetBudget(t *testing.T) {
	catalog := testCatalog()
	agg := NewAggregator(catalog)
	plan := newTestPlan(catalog)

	for _, key := range entity.BudgetKeys {
		agg.SetBudget(plan, key, dec("1.23"))
		if !agg.ResetBudget(plan, key) {
			t.Fatalf("expected reset of %s to apply", key)
		}
		got := plan.Budgets.Get(key)
		want := catalog.DefaultBudgets.Get(key)
		if !got.Equal(want) || got.String() != want.String() {
			t.Errorf("expected %s restored to %s, got %s", key, want, got)
		}
	}

	if agg.ResetBudget(plan, entity.BudgetKey("monthly")) {
		t.Error("expected unknown budget key to be rejected")
	}
}

func TestAggregator_SelectWeek(t *testing.T) {
	agg := NewAggregator(testCatalog())
	plan := newTestPlan(agg.Catalog())

	if !agg.SelectWeek(plan, 3) || plan.SelectedWeek != 3 {
		t.Errorf("expected week 3 selected, got %d", plan.SelectedWeek)
	}
	if agg.SelectWeek(plan, 0) || agg.SelectWeek(plan, 5) {
		t.Error("expected out of range week to be rejected")
	}
	if plan.SelectedWeek != 3 {
		t.Errorf("expected week to stay 3, got %d", plan.SelectedWeek)
	}
}

// randomPlan fills every slot with a random selection and every weekday with a random main meal.
func randomPlan(r *rand.Rand, agg *Aggregator) *entity.Plan {
	plan := newTestPlan(agg.Catalog())
	customs := []string{"0", "12.5", "abc", "", "-3", "99.99", "1e2"}

	for week := 1; week <= entity.WeeksPerPlan; week++ {
		for day := 0; day < entity.DaysPerWeek; day++ {
			if r.Intn(2) == 0 {
				agg.ToggleMainMeal(plan, week, day)
			}
			for _, mt := range entity.MealTypes {
				var choice entity.Selection
				switch r.Intn(3) {
				case 0:
					choice = entity.Skip()
				case 1:
					choice = entity.Custom(customs[r.Intn(len(customs))])
				default:
					options := agg.OptionsFor(mt, week, day)
					if len(options) == 0 {
						choice = entity.MealRef("ghost")
					} else {
						choice = entity.MealRef(options[r.Intn(len(options))].ID)
					}
				}
				agg.SetSelection(plan, week, day, mt, choice)
			}
		}
	}
	return plan
}

func TestAggregator_RandomPlanIdentities(t *testing.T) {
	agg := NewAggregator(testCatalog())
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		plan := randomPlan(r, agg)

		weekdays := decimal.Zero
		for week := 1; week <= entity.WeeksPerPlan; week++ {
			manual := decimal.Zero
			for day := 0; day < entity.Sunday; day++ {
				manual = manual.Add(agg.PriceOf(plan, week, day, agg.MainMealType(plan, week, day)))
				manual = manual.Add(agg.PriceOf(plan, week, day, entity.MealTypeDinner))
			}
			weekly := agg.WeeklyCost(plan, week)
			if !weekly.Equal(manual) {
				t.Fatalf("iteration %d week %d: expected weekly %s, got %s", i, week, manual, weekly)
			}
			weekdays = weekdays.Add(weekly)

			// Sunday never contributes to the weekly cost.
			before := agg.WeeklyCost(plan, week)
			agg.SetSelection(plan, week, entity.Sunday, entity.MealTypeLunch, entity.Custom("1000"))
			if after := agg.WeeklyCost(plan, week); !after.Equal(before) {
				t.Fatalf("iteration %d week %d: sunday changed weekly cost from %s to %s", i, week, before, after)
			}
		}

		if got := agg.WeekdaysCostAllWeeks(plan); !got.Equal(weekdays) {
			t.Fatalf("iteration %d: expected weekdays %s, got %s", i, weekdays, got)
		}

		grand := agg.GrandTotal(plan)
		sum := agg.SundayCostAllWeeks(plan).Add(agg.WeekdaysCostAllWeeks(plan))
		if !grand.Equal(sum) {
			t.Fatalf("iteration %d: expected grand total %s, got %s", i, sum, grand)
		}
		if grand.IsNegative() {
			t.Fatalf("iteration %d: negative grand total %s", i, grand)
		}
	}
}
