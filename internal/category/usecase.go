package category

import (
	"context"
	"mime/multipart"

	"github.com/tradecove/catalog-service/internal/category/dto"
	"github.com/tradecove/catalog-service/internal/model"
)

// UseCase covers both the category registry and the category type
// vocabulary that backs variant sizing.
type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput, image *multipart.FileHeader) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput, image *multipart.FileHeader) (*model.Category, error)
	UpdateCategoryStatus(ctx context.Context, id string, status model.Status) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateCategoryType(ctx context.Context, input *dto.CreateCategoryTypeInput) (*model.CategoryType, error)
	GetCategoryType(ctx context.Context, id string) (*model.CategoryType, error)
	ListCategoryTypes(ctx context.Context) ([]model.CategoryType, error)
	UpdateCategoryType(ctx context.Context, input *dto.UpdateCategoryTypeInput) (*model.CategoryType, error)
	DeleteCategoryType(ctx context.Context, id string) error
}

// ProductChecker reports whether any product still references a category.
// Implemented by the product repository.
type ProductChecker interface {
	ExistsByCategory(ctx context.Context, categoryID string) (bool, error)
}

// SizeUsageChecker reports which of the given sizes are still used by
// variants of products in categories of a given type. Implemented by the
// variant repository.
type SizeUsageChecker interface {
	SizesInUse(ctx context.Context, categoryTypeID string, sizes []string) ([]string, error)
}
