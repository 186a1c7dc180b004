package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsync/backend/internal/application/usecase/plan"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
)

// PlanController handles meal plan endpoints.
type PlanController struct {
	getUseCase        *plan.GetPlanUseCase
	boardUseCase      *plan.GetWeekBoardUseCase
	summaryUseCase    *plan.GetSummaryUseCase
	selectWeekUseCase *plan.SelectWeekUseCase
	selectionUseCase  *plan.SetSelectionUseCase
	toggleUseCase     *plan.ToggleMainMealUseCase
}

// NewPlanController creates a new plan controller instance.
func NewPlanController(
	getUseCase *plan.GetPlanUseCase,
	boardUseCase *plan.GetWeekBoardUseCase,
	summaryUseCase *plan.GetSummaryUseCase,
	selectWeekUseCase *plan.SelectWeekUseCase,
	selectionUseCase *plan.SetSelectionUseCase,
	toggleUseCase *plan.ToggleMainMealUseCase,
) *PlanController {
	return &PlanController{
		getUseCase:        getUseCase,
		boardUseCase:      boardUseCase,
		summaryUseCase:    summaryUseCase,
		selectWeekUseCase: selectWeekUseCase,
		selectionUseCase:  selectionUseCase,
		toggleUseCase:     toggleUseCase,
	}
}

// Get handles GET /plan requests.
func (c *PlanController) Get(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), plan.GetPlanInput{PlanID: planID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanResponse(output.Plan))
}

// GetWeek handles GET /plan/weeks/:week requests.
func (c *PlanController) GetWeek(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}
	week, ok := intParam(ctx, ctx.Param("week"), "week", domainerror.ErrCodeInvalidWeek)
	if !ok {
		return
	}

	output, err := c.boardUseCase.Execute(ctx.Request.Context(), plan.GetWeekBoardInput{
		PlanID: planID,
		Week:   week,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWeekBoardResponse(output.Board))
}

// Summary handles GET /plan/summary requests.
// The optional week query overrides the plan's selected week for the weekly total.
func (c *PlanController) Summary(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}

	input := plan.GetSummaryInput{PlanID: planID}
	if raw, present := ctx.GetQuery("week"); present {
		week, ok := intParam(ctx, raw, "week", domainerror.ErrCodeInvalidWeek)
		if !ok {
			return
		}
		input.Week = &week
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output.Summary))
}

// SelectWeek handles PUT /plan/selected-week requests.
func (c *PlanController) SelectWeek(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}

	var req dto.SelectWeekRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPlanFields),
		})
		return
	}

	output, err := c.selectWeekUseCase.Execute(ctx.Request.Context(), plan.SelectWeekInput{
		PlanID: planID,
		Week:   *req.Week,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SelectWeekResponse{SelectedWeek: output.Plan.SelectedWeek})
}

// SetSelection handles PUT /plan/weeks/:week/days/:day/meals/:meal_type requests.
func (c *PlanController) SetSelection(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}
	week, ok := intParam(ctx, ctx.Param("week"), "week", domainerror.ErrCodeInvalidWeek)
	if !ok {
		return
	}
	day, ok := intParam(ctx, ctx.Param("day"), "day", domainerror.ErrCodeInvalidDay)
	if !ok {
		return
	}

	var req dto.SetSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidChoice),
		})
		return
	}

	output, err := c.selectionUseCase.Execute(ctx.Request.Context(), plan.SetSelectionInput{
		PlanID:   planID,
		Week:     week,
		Day:      day,
		MealType: ctx.Param("meal_type"),
		Choice:   req.Choice,
		MealID:   req.MealID,
		Price:    req.Price,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SetSelectionResponse{
		Week:        week,
		Day:         day,
		Slot:        dto.ToSlotResponse(output.Slot),
		WeeklyTotal: dto.ToSummaryLineResponse(output.WeeklyTotal),
	})
}

// ToggleMainMeal handles POST /plan/weeks/:week/days/:day/toggle requests.
func (c *PlanController) ToggleMainMeal(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}
	week, ok := intParam(ctx, ctx.Param("week"), "week", domainerror.ErrCodeInvalidWeek)
	if !ok {
		return
	}
	day, ok := intParam(ctx, ctx.Param("day"), "day", domainerror.ErrCodeInvalidDay)
	if !ok {
		return
	}

	output, err := c.toggleUseCase.Execute(ctx.Request.Context(), plan.ToggleMainMealInput{
		PlanID: planID,
		Week:   week,
		Day:    day,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDayResponse(output.Day))
}
