package product

import (
	"context"
	"mime/multipart"

	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput, images []*multipart.FileHeader) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput, images []*multipart.FileHeader) (*model.Product, error)
	UpdateProductStatus(ctx context.Context, id string, status model.Status) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadImages(ctx context.Context, id string, images []*multipart.FileHeader) (*model.Product, error)
}

// CategoryResolver is the slice of the category registry the lifecycle
// needs when binding a product to its category.
type CategoryResolver interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
}
