package dto

import (
	"time"

	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// PlanResponse wraps the persisted snapshot of a plan.
type PlanResponse struct {
	PlanID      string              `json:"plan_id"`
	DigestEmail string              `json:"digest_email,omitempty"`
	Snapshot    entity.PlanSnapshot `json:"snapshot"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToPlanResponse converts a plan.
func ToPlanResponse(p *entity.Plan) PlanResponse {
	return PlanResponse{
		PlanID:      p.ID.String(),
		DigestEmail: p.DigestEmail,
		Snapshot:    entity.NewPlanSnapshot(p),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// SelectWeekRequest represents the request body for changing the selected week.
type SelectWeekRequest struct {
	Week *int `json:"week" binding:"required"`
}

// SelectWeekResponse represents the selected week.
type SelectWeekResponse struct {
	SelectedWeek int `json:"selected_week"`
}

// SetSelectionRequest represents the request body for filling a slot.
type SetSelectionRequest struct {
	Choice string `json:"choice" binding:"required,oneof=skip custom meal"`
	MealID string `json:"meal_id,omitempty"`
	Price  string `json:"price,omitempty"`
}

// SlotResponse is one meal slot of a day.
type SlotResponse struct {
	MealType    string           `json:"meal_type"`
	Choice      string           `json:"choice"`
	MealID      string           `json:"meal_id,omitempty"`
	CustomPrice string           `json:"custom_price,omitempty"`
	DisplayName string           `json:"display_name"`
	Planned     bool             `json:"planned"`
	Price       float64          `json:"price"`
	Options     []OptionResponse `json:"options"`
}

// DayResponse is one day of the weekly board.
type DayResponse struct {
	Day          int            `json:"day"`
	Name         string         `json:"name"`
	MainMealType string         `json:"main_meal_type"`
	CanToggle    bool           `json:"can_toggle"`
	Slots        []SlotResponse `json:"slots"`
}

// WeekBoardResponse is the grid of one week.
type WeekBoardResponse struct {
	Week  int           `json:"week"`
	Total float64       `json:"total"`
	Days  []DayResponse `json:"days"`
}

// SetSelectionResponse returns the updated slot and the new weekly total.
type SetSelectionResponse struct {
	Week        int                 `json:"week"`
	Day         int                 `json:"day"`
	Slot        SlotResponse        `json:"slot"`
	WeeklyTotal SummaryLineResponse `json:"weekly_total"`
}

// SummaryResponse holds every total of a plan.
type SummaryResponse struct {
	Week  int                   `json:"week"`
	Lines []SummaryLineResponse `json:"lines"`
}

// ToSlotResponse converts a slot view.
func ToSlotResponse(s mealplan.SlotView) SlotResponse {
	kind := s.Selection.Kind
	if s.Selection.IsSkip() {
		kind = entity.SelectionSkip
	}
	return SlotResponse{
		MealType:    string(s.MealType),
		Choice:      string(kind),
		MealID:      s.Selection.MealID,
		CustomPrice: s.CustomPrice,
		DisplayName: s.DisplayName,
		Planned:     s.Planned,
		Price:       amount(s.Price),
		Options:     ToOptionResponses(s.Options),
	}
}

// ToDayResponse converts a day view.
func ToDayResponse(d mealplan.DayView) DayResponse {
	response := DayResponse{
		Day:          d.Day,
		Name:         d.Name,
		MainMealType: string(d.MainMealType),
		CanToggle:    d.CanToggle,
		Slots:        make([]SlotResponse, 0, len(d.Slots)),
	}
	for _, s := range d.Slots {
		response.Slots = append(response.Slots, ToSlotResponse(s))
	}
	return response
}

// ToWeekBoardResponse converts a week board.
func ToWeekBoardResponse(b mealplan.WeekBoard) WeekBoardResponse {
	response := WeekBoardResponse{
		Week:  b.Week,
		Total: amount(b.Total),
		Days:  make([]DayResponse, 0, len(b.Days)),
	}
	for _, d := range b.Days {
		response.Days = append(response.Days, ToDayResponse(d))
	}
	return response
}

// ToSummaryResponse converts a summary.
func ToSummaryResponse(s mealplan.Summary) SummaryResponse {
	response := SummaryResponse{
		Week:  s.Week,
		Lines: make([]SummaryLineResponse, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		response.Lines = append(response.Lines, ToSummaryLineResponse(l))
	}
	return response
}
