package variant

import (
	"context"

	"github.com/tradecove/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, v *model.Variant) error
	FindByID(ctx context.Context, id string) (*model.Variant, error)
	FindByProduct(ctx context.Context, productID string) ([]model.Variant, error)
	Update(ctx context.Context, v *model.Variant) error

	// ExistsByColorSize enforces the (product_id, color, size) uniqueness
	// tuple; a nil color matches only rows with NULL color.
	ExistsByColorSize(ctx context.Context, productID string, color *string, size string) (bool, error)

	// Decrement reduces quantity by qty in a single guarded statement; it
	// reports false when the guard (quantity >= qty) rejected the update.
	Decrement(ctx context.Context, id string, qty int) (bool, error)

	// SizesInUse returns the subset of sizes referenced by variants of
	// products whose category belongs to the given category type.
	SizesInUse(ctx context.Context, categoryTypeID string, sizes []string) ([]string, error)
}
