package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/valueobject"
)

//go:embed default_catalog.toml
var defaultCatalog []byte

// catalogFile is the TOML layout of a catalog.
type catalogFile struct {
	BasicBreakfast []string       `toml:"basic_breakfast"`
	Budgets        budgetsFile    `toml:"budgets"`
	Breakfast      []mealFile     `toml:"breakfast"`
	Lunch          []mealFile     `toml:"lunch"`
	Dinner         []mealFile     `toml:"dinner"`
	Defaults       []defaultsFile `toml:"defaults"`
}

type mealFile struct {
	ID    string          `toml:"id"`
	Name  string          `toml:"name"`
	Price decimal.Decimal `toml:"price"`
}

type budgetsFile struct {
	Weekly     *decimal.Decimal `toml:"weekly"`
	Sunday     *decimal.Decimal `toml:"sunday"`
	Weekdays   *decimal.Decimal `toml:"weekdays"`
	GrandTotal *decimal.Decimal `toml:"grand_total"`
}

// defaultsFile days are 1-based, Monday = 1.
type defaultsFile struct {
	Week int    `toml:"week"`
	Day  int    `toml:"day"`
	Meal string `toml:"meal"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*entity.Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog file, or the embedded catalog when path is empty.
func LoadCatalog(path string) (*entity.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a TOML catalog.
func ParseCatalog(data []byte) (*entity.Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if problems := f.validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domainerror.ErrInvalidCatalog, strings.Join(problems, "; "))
	}

	return f.toEntity(), nil
}

func (f *catalogFile) validate() []string {
	var problems []string

	lists := []struct {
		name  string
		meals []mealFile
	}{
		{"breakfast", f.Breakfast},
		{"lunch", f.Lunch},
		{"dinner", f.Dinner},
	}
	for _, list := range lists {
		seen := make(map[string]bool, len(list.meals))
		for i, m := range list.meals {
			switch {
			case strings.TrimSpace(m.ID) == "":
				problems = append(problems, fmt.Sprintf("%s[%d]: id is required", list.name, i))
			case seen[m.ID]:
				problems = append(problems, fmt.Sprintf("%s[%d]: duplicate id %q", list.name, i, m.ID))
			case entity.ReservedMealID(m.ID):
				problems = append(problems, fmt.Sprintf("%s[%d]: id %q is reserved", list.name, i, m.ID))
			}
			seen[m.ID] = true
			if strings.TrimSpace(m.Name) == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: name is required", list.name, i))
			}
			if m.Price.IsNegative() {
				problems = append(problems, fmt.Sprintf("%s[%d]: price must not be negative", list.name, i))
			}
			if m.Price.GreaterThan(valueobject.MaxAmount) {
				problems = append(problems, fmt.Sprintf("%s[%d]: price must not exceed %s", list.name, i, valueobject.MaxAmount))
			}
		}
	}

	breakfastIDs := make(map[string]bool, len(f.Breakfast))
	for _, m := range f.Breakfast {
		breakfastIDs[m.ID] = true
	}
	for _, id := range f.BasicBreakfast {
		if !breakfastIDs[id] {
			problems = append(problems, fmt.Sprintf("basic_breakfast: unknown breakfast id %q", id))
		}
	}

	for i, d := range f.Defaults {
		if !entity.ValidWeek(d.Week) {
			problems = append(problems, fmt.Sprintf("defaults[%d]: week must be between 1 and %d", i, entity.WeeksPerPlan))
		}
		if d.Day < 1 || d.Day > entity.DaysPerWeek {
			problems = append(problems, fmt.Sprintf("defaults[%d]: day must be between 1 and %d", i, entity.DaysPerWeek))
		}
		if strings.TrimSpace(d.Meal) == "" {
			problems = append(problems, fmt.Sprintf("defaults[%d]: meal is required", i))
		}
	}

	budgets := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"weekly", f.Budgets.Weekly},
		{"sunday", f.Budgets.Sunday},
		{"weekdays", f.Budgets.Weekdays},
		{"grand_total", f.Budgets.GrandTotal},
	}
	for _, b := range budgets {
		switch {
		case b.value == nil:
			problems = append(problems, fmt.Sprintf("budgets.%s is required", b.name))
		case b.value.IsNegative():
			problems = append(problems, fmt.Sprintf("budgets.%s must not be negative", b.name))
		case b.value.GreaterThan(valueobject.MaxAmount):
			problems = append(problems, fmt.Sprintf("budgets.%s must not exceed %s", b.name, valueobject.MaxAmount))
		}
	}

	return problems
}

func (f *catalogFile) toEntity() *entity.Catalog {
	c := &entity.Catalog{
		Breakfast:      toMeals(f.Breakfast),
		Lunch:          toMeals(f.Lunch),
		Dinner:         toMeals(f.Dinner),
		BasicBreakfast: append([]string(nil), f.BasicBreakfast...),
		Defaults:       make([]entity.DefaultMeal, 0, len(f.Defaults)),
		DefaultBudgets: entity.BudgetTargets{
			entity.BudgetWeekly:     *f.Budgets.Weekly,
			entity.BudgetSunday:     *f.Budgets.Sunday,
			entity.BudgetWeekdays:   *f.Budgets.Weekdays,
			entity.BudgetGrandTotal: *f.Budgets.GrandTotal,
		},
	}

	for _, d := range f.Defaults {
		c.Defaults = append(c.Defaults, entity.DefaultMeal{
			Week:     d.Week,
			Day:      d.Day - 1,
			MealName: d.Meal,
		})
	}

	return c
}

func toMeals(in []mealFile) []entity.Meal {
	out := make([]entity.Meal, 0, len(in))
	for _, m := range in {
		out = append(out, entity.Meal{ID: m.ID, Name: m.Name, Price: m.Price})
	}
	return out
}
