package inventory

import (
	"context"

	"github.com/tradecove/catalog-service/internal/inventory/dto"
	"github.com/tradecove/catalog-service/internal/model"
)

// UseCase manages the single stock record of products without variants.
// Variant-level quantities live with the variant feature.
type UseCase interface {
	GetStock(ctx context.Context, productID string) (*model.Stock, error)
	UpdateStock(ctx context.Context, input *dto.UpdateStockInput) (*model.Stock, error)
	ListLowStock(ctx context.Context, filters *dto.LowStockFilters) ([]model.Stock, int, error)
}
