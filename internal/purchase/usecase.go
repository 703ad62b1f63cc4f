package purchase

import (
	"context"

	"github.com/tradecove/catalog-service/internal/model"
)

// UseCase answers purchase questions through each product type's pricing
// behavior and applies purchases with guarded stock writes.
type UseCase interface {
	CanPurchase(ctx context.Context, productID string, qty int) (bool, error)
	TotalPrice(ctx context.Context, productID string, qty int) (float64, error)

	// PurchaseProduct applies a purchase against a product's own stock
	// record. Variant-bearing products reject this with an Ambiguous error;
	// the caller must name a variant.
	PurchaseProduct(ctx context.Context, productID string, qty int) error

	// PurchaseVariant applies a purchase against one variant's quantity.
	PurchaseVariant(ctx context.Context, variantID string, qty int) error
}

// ProductLoader loads the full product aggregate. Implemented by the
// product repository.
type ProductLoader interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// StockDecrementer applies a guarded decrement to a product's stock record.
type StockDecrementer interface {
	Decrement(ctx context.Context, productID string, qty int) (bool, error)
}

// VariantDecrementer applies a guarded decrement to a variant's quantity.
type VariantDecrementer interface {
	FindByID(ctx context.Context, id string) (*model.Variant, error)
	Decrement(ctx context.Context, id string, qty int) (bool, error)
}
