package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsync/backend/internal/application/usecase/plan"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget target endpoints.
type BudgetController struct {
	updateUseCase *plan.UpdateBudgetUseCase
	resetUseCase  *plan.ResetBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(updateUseCase *plan.UpdateBudgetUseCase, resetUseCase *plan.ResetBudgetUseCase) *BudgetController {
	return &BudgetController{
		updateUseCase: updateUseCase,
		resetUseCase:  resetUseCase,
	}
}

// Update handles PUT /plan/budgets/:key requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPlanFields),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), plan.UpdateBudgetInput{
		PlanID: planID,
		Key:    ctx.Param("key"),
		Amount: req.Amount,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponse{
		Key:         string(output.Key),
		Amount:      output.Amount.InexactFloat64(),
		UsedDefault: output.UsedDefault,
	})
}

// Reset handles POST /plan/budgets/:key/reset requests.
func (c *BudgetController) Reset(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}

	output, err := c.resetUseCase.Execute(ctx.Request.Context(), plan.ResetBudgetInput{
		PlanID: planID,
		Key:    ctx.Param("key"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponse{
		Key:         string(output.Key),
		Amount:      output.Amount.InexactFloat64(),
		UsedDefault: true,
	})
}
