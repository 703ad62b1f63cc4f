package usecase

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/category"
	"github.com/tradecove/catalog-service/internal/category/dto"
	"github.com/tradecove/catalog-service/internal/imagestore"
	"github.com/tradecove/catalog-service/internal/model"
)

const categoryFolder = "categories/"

type categoryUseCase struct {
	repo     category.Repository
	products category.ProductChecker
	sizes    category.SizeUsageChecker
	images   imagestore.Store
	logger   *zap.Logger
}

func NewCategoryUseCase(
	repo category.Repository,
	products category.ProductChecker,
	sizes category.SizeUsageChecker,
	images imagestore.Store,
	log *zap.Logger,
) category.UseCase {
	return &categoryUseCase{
		repo:     repo,
		products: products,
		sizes:    sizes,
		images:   images,
		logger:   log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput, image *multipart.FileHeader) (*model.Category, error) {
	existing, err := uc.repo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("category already exists with name: %s", input.Name)
	}

	status := model.StatusActive
	if input.Status != "" {
		status, err = model.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
	}

	if input.CategoryTypeID != nil {
		ct, err := uc.repo.FindTypeByID(ctx, *input.CategoryTypeID)
		if err != nil {
			return nil, err
		}
		if ct == nil {
			return nil, apperrors.NotFound("category type not found with id: %s", *input.CategoryTypeID)
		}
	}

	now := time.Now()
	c := &model.Category{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:           input.Name,
		Description:    input.Description,
		CategoryTypeID: input.CategoryTypeID,
		Status:         status,
	}

	if image != nil && image.Size > 0 {
		url, err := uc.images.Upload(ctx, image, categoryFolder, "category")
		if err != nil {
			return nil, err
		}
		c.ImageURL = &url
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		if c.ImageURL != nil {
			uc.images.Delete(ctx, *c.ImageURL)
		}
		return nil, err
	}

	uc.logger.Info("category created", zap.String("category_id", c.ID), zap.String("name", c.Name))
	return c, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NotFound("category not found with id: %s", id)
	}
	return c, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput, image *multipart.FileHeader) (*model.Category, error) {
	c, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NotFound("category not found with id: %s", input.ID)
	}

	if input.Name != nil && *input.Name != c.Name {
		existing, err := uc.repo.FindByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != c.ID {
			return nil, apperrors.Conflict("category already exists with name: %s", *input.Name)
		}
		c.Name = *input.Name
	}
	if input.Description != nil {
		c.Description = input.Description
	}
	if input.CategoryTypeID != nil {
		ct, err := uc.repo.FindTypeByID(ctx, *input.CategoryTypeID)
		if err != nil {
			return nil, err
		}
		if ct == nil {
			return nil, apperrors.NotFound("category type not found with id: %s", *input.CategoryTypeID)
		}
		c.CategoryTypeID = input.CategoryTypeID
	}
	if input.Status != nil {
		status, err := model.ParseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		c.Status = status
	}

	if image != nil && image.Size > 0 {
		url, err := uc.images.Upload(ctx, image, categoryFolder, "category")
		if err != nil {
			return nil, err
		}
		if c.ImageURL != nil {
			uc.images.Delete(ctx, *c.ImageURL)
		}
		c.ImageURL = &url
	}

	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *categoryUseCase) UpdateCategoryStatus(ctx context.Context, id string, status model.Status) (*model.Category, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NotFound("category not found with id: %s", id)
	}

	c.Status = status
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperrors.NotFound("category not found with id: %s", id)
	}

	referenced, err := uc.products.ExistsByCategory(ctx, id)
	if err != nil {
		return err
	}

	// Referenced categories are retired, not removed: existing products
	// keep their link and the image stays resolvable.
	if referenced {
		c.Status = model.StatusInactive
		c.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, c); err != nil {
			return err
		}
		uc.logger.Info("category deactivated, still referenced by products", zap.String("category_id", id))
		return nil
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if c.ImageURL != nil {
		uc.images.Delete(ctx, *c.ImageURL)
	}

	uc.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}

func (uc *categoryUseCase) CreateCategoryType(ctx context.Context, input *dto.CreateCategoryTypeInput) (*model.CategoryType, error) {
	existing, err := uc.repo.FindTypeByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("category type already exists with name: %s", input.Name)
	}

	now := time.Now()
	ct := &model.CategoryType{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		Status:    model.StatusActive,
	}
	ct.SetSizeOptions(normalizeSizes(input.SizeOptions))

	if err := uc.repo.CreateType(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (uc *categoryUseCase) GetCategoryType(ctx context.Context, id string) (*model.CategoryType, error) {
	ct, err := uc.repo.FindTypeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, apperrors.NotFound("category type not found with id: %s", id)
	}
	return ct, nil
}

func (uc *categoryUseCase) ListCategoryTypes(ctx context.Context) ([]model.CategoryType, error) {
	return uc.repo.FindAllTypes(ctx)
}

func (uc *categoryUseCase) UpdateCategoryType(ctx context.Context, input *dto.UpdateCategoryTypeInput) (*model.CategoryType, error) {
	ct, err := uc.repo.FindTypeByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, apperrors.NotFound("category type not found with id: %s", input.ID)
	}

	if input.Name != nil && *input.Name != ct.Name {
		existing, err := uc.repo.FindTypeByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != ct.ID {
			return nil, apperrors.Conflict("category type already exists with name: %s", *input.Name)
		}
		ct.Name = *input.Name
	}

	if input.SizeOptions != nil {
		next := normalizeSizes(input.SizeOptions)
		removed := removedSizes(ct.SizeOptionList(), next)
		if len(removed) > 0 {
			used, err := uc.sizes.SizesInUse(ctx, ct.ID, removed)
			if err != nil {
				return nil, err
			}
			// The whole update is rejected, naming every size that still
			// has variants behind it.
			if len(used) > 0 {
				return nil, apperrors.StateConflict(
					"cannot remove sizes still in use by product variants: %s",
					strings.Join(used, ", "))
			}
		}
		ct.SetSizeOptions(next)
	}

	ct.UpdatedAt = time.Now()
	if err := uc.repo.UpdateType(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (uc *categoryUseCase) DeleteCategoryType(ctx context.Context, id string) error {
	ct, err := uc.repo.FindTypeByID(ctx, id)
	if err != nil {
		return err
	}
	if ct == nil {
		return apperrors.NotFound("category type not found with id: %s", id)
	}

	referenced, err := uc.repo.ExistsByType(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.StateConflict("category type %q is still referenced by categories", ct.Name)
	}

	return uc.repo.DeleteType(ctx, id)
}

func normalizeSizes(sizes []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range sizes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToUpper(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func removedSizes(current, next []string) []string {
	keep := map[string]bool{}
	for _, s := range next {
		keep[strings.ToUpper(s)] = true
	}
	var removed []string
	for _, s := range current {
		if !keep[strings.ToUpper(s)] {
			removed = append(removed, s)
		}
	}
	return removed
}
