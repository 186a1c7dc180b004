// Package catalog contains meal catalog use cases.
package catalog

import (
	"context"

	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// GetCatalogOutput represents the full catalog.
type GetCatalogOutput struct {
	Catalog *entity.Catalog
}

// GetCatalogUseCase returns the configured catalog.
type GetCatalogUseCase struct {
	aggregator *mealplan.Aggregator
}

// NewGetCatalogUseCase creates a new GetCatalogUseCase instance.
func NewGetCatalogUseCase(aggregator *mealplan.Aggregator) *GetCatalogUseCase {
	return &GetCatalogUseCase{
		aggregator: aggregator,
	}
}

// Execute returns the catalog.
func (uc *GetCatalogUseCase) Execute(_ context.Context) (*GetCatalogOutput, error) {
	return &GetCatalogOutput{Catalog: uc.aggregator.Catalog()}, nil
}
