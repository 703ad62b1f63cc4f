package category

import (
	"context"

	"github.com/tradecove/catalog-service/internal/category/dto"
	"github.com/tradecove/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id string) error

	CreateType(ctx context.Context, ct *model.CategoryType) error
	FindTypeByID(ctx context.Context, id string) (*model.CategoryType, error)
	FindTypeByName(ctx context.Context, name string) (*model.CategoryType, error)
	FindAllTypes(ctx context.Context) ([]model.CategoryType, error)

	// FindTypeByCategory resolves the size vocabulary for a category; nil
	// when the category has no type attached.
	FindTypeByCategory(ctx context.Context, categoryID string) (*model.CategoryType, error)

	UpdateType(ctx context.Context, ct *model.CategoryType) error
	DeleteType(ctx context.Context, id string) error
	ExistsByType(ctx context.Context, categoryTypeID string) (bool, error)
}
