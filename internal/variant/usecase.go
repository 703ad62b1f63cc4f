package variant

import (
	"context"

	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/variant/dto"
)

type UseCase interface {
	CreateVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.Variant, error)
	UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.Variant, error)
	UpdateVariantStatus(ctx context.Context, variantID string, isActive bool) (*model.Variant, error)
	GetVariant(ctx context.Context, variantID string) (*model.Variant, error)
	ListByProduct(ctx context.Context, productID string) ([]model.Variant, error)
	Decrement(ctx context.Context, variantID string, quantity int) (*model.Variant, error)
}

// ProductResolver is the slice of the product feature the ledger needs:
// loading the owning aggregate when binding a new variant.
type ProductResolver interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// SizeVocabularyResolver returns the size template governing a category,
// or nil when the category has no category type bound.
type SizeVocabularyResolver interface {
	FindTypeByCategory(ctx context.Context, categoryID string) (*model.CategoryType, error)
}
