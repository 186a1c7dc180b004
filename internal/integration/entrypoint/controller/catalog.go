package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsync/backend/internal/application/usecase/catalog"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
)

// CatalogController handles catalog endpoints.
type CatalogController struct {
	getUseCase     *catalog.GetCatalogUseCase
	optionsUseCase *catalog.ListOptionsUseCase
}

// NewCatalogController creates a new catalog controller instance.
func NewCatalogController(
	getUseCase *catalog.GetCatalogUseCase,
	optionsUseCase *catalog.ListOptionsUseCase,
) *CatalogController {
	return &CatalogController{
		getUseCase:     getUseCase,
		optionsUseCase: optionsUseCase,
	}
}

// Get handles GET /catalog requests.
func (c *CatalogController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCatalogResponse(output.Catalog))
}

// Options handles GET /catalog/options?week=&day=&meal_type= requests.
// Meals come sorted by ascending price after the skip and custom options.
func (c *CatalogController) Options(ctx *gin.Context) {
	week, ok := intParam(ctx, ctx.Query("week"), "week", domainerror.ErrCodeInvalidWeek)
	if !ok {
		return
	}
	day, ok := intParam(ctx, ctx.Query("day"), "day", domainerror.ErrCodeInvalidDay)
	if !ok {
		return
	}

	output, err := c.optionsUseCase.Execute(ctx.Request.Context(), catalog.ListOptionsInput{
		Week:     week,
		Day:      day,
		MealType: ctx.Query("meal_type"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OptionsResponse{
		Week:     week,
		Day:      day,
		MealType: string(output.MealType),
		Options:  dto.ToOptionResponses(output.Options),
	})
}
