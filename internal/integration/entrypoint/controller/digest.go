package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mealsync/backend/internal/application/usecase/plan"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
)

// DigestController handles weekly digest endpoints.
type DigestController struct {
	updateUseCase *plan.UpdateDigestUseCase
	sendUseCase   *plan.SendDigestUseCase
}

// NewDigestController creates a new digest controller instance.
func NewDigestController(updateUseCase *plan.UpdateDigestUseCase, sendUseCase *plan.SendDigestUseCase) *DigestController {
	return &DigestController{
		updateUseCase: updateUseCase,
		sendUseCase:   sendUseCase,
	}
}

// Update handles PUT /plan/digest requests.
func (c *DigestController) Update(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateDigestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			handleError(ctx, domainerror.NewPlanError(
				domainerror.ErrCodeInvalidDigestEmail,
				"digest email is not a valid address",
				domainerror.ErrInvalidDigestEmail,
			))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPlanFields),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), plan.UpdateDigestInput{
		PlanID: planID,
		Email:  req.Email,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DigestResponse{
		Email:      output.Plan.DigestEmail,
		Subscribed: output.Plan.DigestEmail != "",
	})
}

// Send handles POST /plan/digest/send requests.
func (c *DigestController) Send(ctx *gin.Context) {
	planID, ok := requirePlanID(ctx)
	if !ok {
		return
	}

	output, err := c.sendUseCase.Execute(ctx.Request.Context(), plan.SendDigestInput{PlanID: planID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.SendDigestResponse{
		Message: "Digest queued",
		Email:   output.Email,
		Week:    output.Week,
	})
}
