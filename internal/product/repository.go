package product

import (
	"context"

	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product/dto"
)

type Repository interface {
	// CreateWithInventory persists the product row first (variants and the
	// stock record need its identity), then the children, all in one
	// transaction.
	CreateWithInventory(ctx context.Context, p *model.Product) error

	// FindByID loads the full aggregate: product, variants or stock
	// record, and image references. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, id string) (*model.Product, error)

	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, p *model.Product) error

	// Delete removes the product and cascades variants, the stock record
	// and image references in one transaction.
	Delete(ctx context.Context, id string) error

	AddImages(ctx context.Context, productID string, urls []string) error
	ExistsByCategory(ctx context.Context, categoryID string) (bool, error)
}
