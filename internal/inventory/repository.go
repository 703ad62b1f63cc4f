package inventory

import (
	"context"

	"github.com/tradecove/catalog-service/internal/inventory/dto"
	"github.com/tradecove/catalog-service/internal/model"
)

type Repository interface {
	GetByProduct(ctx context.Context, productID string) (*model.Stock, error)
	Update(ctx context.Context, s *model.Stock) error

	// Decrement reduces quantity by qty in a single guarded statement; it
	// reports false when the guard (quantity >= qty) rejected the update.
	Decrement(ctx context.Context, productID string, qty int) (bool, error)

	// FindLowStock returns records at or below their reorder level.
	FindLowStock(ctx context.Context, filters *dto.LowStockFilters) ([]model.Stock, int, error)
}
