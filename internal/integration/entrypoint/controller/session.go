package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsync/backend/internal/application/usecase/plan"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
)

// SessionController handles plan session endpoints.
type SessionController struct {
	createUseCase *plan.CreateSessionUseCase
}

// NewSessionController creates a new session controller instance.
func NewSessionController(createUseCase *plan.CreateSessionUseCase) *SessionController {
	return &SessionController{
		createUseCase: createUseCase,
	}
}

// Create handles POST /sessions requests.
// It creates an empty plan with default budgets and returns its session token.
func (c *SessionController) Create(ctx *gin.Context) {
	output, err := c.createUseCase.Execute(ctx.Request.Context(), plan.CreateSessionInput{})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSessionResponse(output))
}
