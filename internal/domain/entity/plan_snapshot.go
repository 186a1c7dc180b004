package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mealsync/backend/internal/domain/valueobject"
)

const customSelectionPrefix = "custom:"

// PlanSnapshot is the persisted whole-state shape of a plan.
//
//	{
//	  "selectedWeek": 1,
//	  "selections": {"1-0-breakfast": "medu-vada", "2-6-lunch": "custom:150.5"},
//	  "mainChoice": {"1-2": "lunch"},
//	  "budgets": {"weekly": 840, "sunday": 2140, "weekdays": 3360, "grandTotal": 5500}
//	}
//
// customPrices keeps the price field of slots that were switched away from Custom.
type PlanSnapshot struct {
	SelectedWeek int                    `json:"selectedWeek"`
	Selections   map[string]string      `json:"selections"`
	CustomPrices map[string]string      `json:"customPrices,omitempty"`
	MainChoice   map[string]string      `json:"mainChoice"`
	Budgets      map[string]json.Number `json:"budgets"`
}

// NewPlanSnapshot captures the state of a plan.
func NewPlanSnapshot(p *Plan) PlanSnapshot {
	s := PlanSnapshot{
		SelectedWeek: p.SelectedWeek,
		Selections:   make(map[string]string, len(p.Selections)),
		MainChoice:   make(map[string]string, len(p.MainChoices)),
		Budgets:      make(map[string]json.Number, len(p.Budgets)),
	}

	for key, sel := range p.Selections {
		s.Selections[key.String()] = sel.encode()
	}
	if len(p.CustomPrices) > 0 {
		s.CustomPrices = make(map[string]string, len(p.CustomPrices))
		for key, price := range p.CustomPrices {
			s.CustomPrices[key.String()] = price
		}
	}
	for key, mt := range p.MainChoices {
		s.MainChoice[key.String()] = string(mt)
	}
	for key, amount := range p.Budgets {
		s.Budgets[string(key)] = json.Number(amount.String())
	}

	return s
}

// Restore overwrites the state of p with the snapshot.
// Unparsable keys and values are dropped. Budgets absent from the snapshot
// keep the value p already holds.
func (s PlanSnapshot) Restore(p *Plan) {
	p.EnsureMaps()

	p.SelectedWeek = 1
	if ValidWeek(s.SelectedWeek) {
		p.SelectedWeek = s.SelectedWeek
	}

	p.Selections = make(map[SlotKey]Selection, len(s.Selections))
	for raw, value := range s.Selections {
		key, err := ParseSlotKey(raw)
		if err != nil {
			continue
		}
		p.Selections[key] = decodeSelection(value)
	}

	p.CustomPrices = make(map[SlotKey]string, len(s.CustomPrices))
	for raw, price := range s.CustomPrices {
		key, err := ParseSlotKey(raw)
		if err != nil {
			continue
		}
		p.CustomPrices[key] = price
	}
	for key, sel := range p.Selections {
		if sel.Kind == SelectionCustom {
			p.CustomPrices[key] = sel.Price
		}
	}

	p.MainChoices = make(map[DayKey]MealType, len(s.MainChoice))
	for raw, value := range s.MainChoice {
		key, err := ParseDayKey(raw)
		if err != nil {
			continue
		}
		mt, ok := ParseMealType(value)
		if !ok || mt == MealTypeDinner {
			continue
		}
		p.MainChoices[key] = mt
	}

	for raw, value := range s.Budgets {
		key, ok := ParseBudgetKey(raw)
		if !ok {
			continue
		}
		amount, err := valueobject.ParseAmount(value.String())
		if err != nil {
			continue
		}
		p.Budgets[key] = amount
	}
}

// MarshalPlanState encodes the state of a plan as snapshot JSON.
func MarshalPlanState(p *Plan) ([]byte, error) {
	return json.Marshal(NewPlanSnapshot(p))
}

// UnmarshalPlanState decodes snapshot JSON into p.
func UnmarshalPlanState(data []byte, p *Plan) error {
	var s PlanSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode plan snapshot: %w", err)
	}
	s.Restore(p)
	return nil
}

// String formats the key as "<week>-<day>-<mealType>".
func (k SlotKey) String() string {
	return fmt.Sprintf("%d-%d-%s", k.Week, k.Day, k.MealType)
}

// String formats the key as "<week>-<day>".
func (k DayKey) String() string {
	return fmt.Sprintf("%d-%d", k.Week, k.Day)
}

// ParseSlotKey parses "<week>-<day>-<mealType>".
func ParseSlotKey(s string) (SlotKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return SlotKey{}, fmt.Errorf("slot key %q: want week-day-mealType", s)
	}
	day, err := parseDayKeyParts(parts[0], parts[1])
	if err != nil {
		return SlotKey{}, fmt.Errorf("slot key %q: %w", s, err)
	}
	mt, ok := ParseMealType(parts[2])
	if !ok {
		return SlotKey{}, fmt.Errorf("slot key %q: unknown meal type", s)
	}
	return SlotKey{Week: day.Week, Day: day.Day, MealType: mt}, nil
}

// ParseDayKey parses "<week>-<day>".
func ParseDayKey(s string) (DayKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return DayKey{}, fmt.Errorf("day key %q: want week-day", s)
	}
	key, err := parseDayKeyParts(parts[0], parts[1])
	if err != nil {
		return DayKey{}, fmt.Errorf("day key %q: %w", s, err)
	}
	return key, nil
}

func parseDayKeyParts(weekText, dayText string) (DayKey, error) {
	week, err := strconv.Atoi(weekText)
	if err != nil || !ValidWeek(week) {
		return DayKey{}, fmt.Errorf("week out of range")
	}
	day, err := strconv.Atoi(dayText)
	if err != nil || !ValidDay(day) {
		return DayKey{}, fmt.Errorf("day out of range")
	}
	return DayKey{Week: week, Day: day}, nil
}

func (s Selection) encode() string {
	switch s.Kind {
	case SelectionCustom:
		return customSelectionPrefix + s.Price
	case SelectionMealRef:
		return s.MealID
	default:
		return string(SelectionSkip)
	}
}

// ReservedMealID reports whether id collides with the snapshot encoding of
// Skip or Custom and so cannot name a catalog meal.
func ReservedMealID(id string) bool {
	return id == string(SelectionSkip) || id == string(SelectionCustom) ||
		strings.HasPrefix(id, customSelectionPrefix)
}

func decodeSelection(v string) Selection {
	switch {
	case v == "" || v == string(SelectionSkip):
		return Skip()
	case v == string(SelectionCustom):
		return Custom("0")
	case strings.HasPrefix(v, customSelectionPrefix):
		return Custom(strings.TrimPrefix(v, customSelectionPrefix))
	default:
		return MealRef(v)
	}
}
