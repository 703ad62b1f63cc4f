package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/variant"
	"github.com/tradecove/catalog-service/internal/variant/dto"
)

type variantUseCase struct {
	repo     variant.Repository
	products variant.ProductResolver
	types    variant.SizeVocabularyResolver
	logger   *zap.Logger
}

func NewVariantUseCase(repo variant.Repository, products variant.ProductResolver, types variant.SizeVocabularyResolver, log *zap.Logger) variant.UseCase {
	return &variantUseCase{
		repo:     repo,
		products: products,
		types:    types,
		logger:   log,
	}
}

func (uc *variantUseCase) CreateVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.Variant, error) {
	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", input.ProductID)
	}

	quantityRequired := p.ProductType == model.ProductTypeStock
	if err := validateCreate(input, quantityRequired); err != nil {
		return nil, err
	}

	if err := uc.checkSizeVocabulary(ctx, p.CategoryID, input.Size); err != nil {
		return nil, err
	}

	exists, err := uc.repo.ExistsByColorSize(ctx, p.ID, input.Color, input.Size)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("a variant with the same color and size already exists for product %s", p.ID)
	}

	now := time.Now()
	v := &model.Variant{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:    p.ID,
		Color:        input.Color,
		Size:         input.Size,
		UnitCost:     *input.UnitCost,
		SellingPrice: *input.SellingPrice,
		IsActive:     true,
	}
	if input.Quantity != nil {
		v.Quantity = *input.Quantity
	}

	sku := input.SKU
	if sku == "" {
		sku = variant.GenerateSKU(p.Name, input.Color, input.Size)
	}
	v.SKU = &sku

	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	uc.logger.Info("variant created",
		zap.String("product_id", p.ID),
		zap.String("variant_id", v.ID),
		zap.String("name", v.DisplayName()),
	)
	return v, nil
}

func (uc *variantUseCase) UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.Variant, error) {
	if input.Empty() {
		return nil, apperrors.InvalidRequest("at least one field must be provided for update")
	}
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	v, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperrors.NotFound("product variant not found with id: %s", input.ID)
	}

	if input.Quantity != nil {
		v.Quantity = *input.Quantity
	}
	if input.UnitCost != nil {
		v.UnitCost = *input.UnitCost
	}
	if input.SellingPrice != nil {
		v.SellingPrice = *input.SellingPrice
	}
	if input.IsActive != nil {
		v.IsActive = *input.IsActive
	}
	v.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	uc.logger.Info("variant updated", zap.String("variant_id", v.ID))
	return v, nil
}

func (uc *variantUseCase) UpdateVariantStatus(ctx context.Context, variantID string, isActive bool) (*model.Variant, error) {
	return uc.UpdateVariant(ctx, &dto.UpdateVariantInput{ID: variantID, IsActive: &isActive})
}

func (uc *variantUseCase) GetVariant(ctx context.Context, variantID string) (*model.Variant, error) {
	v, err := uc.repo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperrors.NotFound("product variant not found with id: %s", variantID)
	}
	return v, nil
}

func (uc *variantUseCase) ListByProduct(ctx context.Context, productID string) ([]model.Variant, error) {
	return uc.repo.FindByProduct(ctx, productID)
}

func (uc *variantUseCase) Decrement(ctx context.Context, variantID string, quantity int) (*model.Variant, error) {
	if quantity <= 0 {
		return nil, apperrors.InvalidRequest("decrement quantity must be positive, got %d", quantity)
	}

	v, err := uc.repo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperrors.NotFound("product variant not found with id: %s", variantID)
	}

	ok, err := uc.repo.Decrement(ctx, variantID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The guarded decrement lost a race, so v.Quantity may be stale.
		// Report only what was asked for.
		return nil, apperrors.StateConflict("insufficient stock for variant %s: want %d", variantID, quantity)
	}

	return uc.repo.FindByID(ctx, variantID)
}

func (uc *variantUseCase) checkSizeVocabulary(ctx context.Context, categoryID, size string) error {
	ct, err := uc.types.FindTypeByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if ct == nil {
		// Category has no sizing template; any size string is accepted.
		return nil
	}
	if !ct.HasSize(size) {
		return apperrors.InvalidRequest("size %q is not an option of category type %q (allowed: %s)", size, ct.Name, ct.SizeOptions)
	}
	return nil
}

// Creation-path rules: zero unit cost is allowed (promotional items).
func validateCreate(input *dto.CreateVariantInput, quantityRequired bool) error {
	var violations []apperrors.FieldViolation

	if input.Size == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "size", Reason: "size is required"})
	}
	if input.UnitCost == nil {
		violations = append(violations, apperrors.FieldViolation{Field: "unit_cost", Reason: "unit cost is required"})
	} else if *input.UnitCost < 0 {
		violations = append(violations, apperrors.FieldViolation{Field: "unit_cost", Reason: "unit cost must be zero or positive"})
	}
	if input.SellingPrice == nil {
		violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price is required"})
	} else if *input.SellingPrice <= 0 {
		violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price must be positive"})
	}
	if input.UnitCost != nil && input.SellingPrice != nil && *input.SellingPrice < *input.UnitCost {
		violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price should not be less than unit cost"})
	}
	switch {
	case input.Quantity == nil && quantityRequired:
		violations = append(violations, apperrors.FieldViolation{Field: "quantity", Reason: "initial quantity is required"})
	case input.Quantity != nil && *input.Quantity < 0:
		violations = append(violations, apperrors.FieldViolation{Field: "quantity", Reason: "quantity cannot be negative"})
	}

	if len(violations) > 0 {
		return apperrors.InvalidFields("invalid variant request", violations)
	}
	return nil
}

// Update-path rules are stricter than creation: unit cost and selling price
// must be strictly positive here, while creation accepts a zero unit cost.
func validateUpdate(input *dto.UpdateVariantInput) error {
	var violations []apperrors.FieldViolation

	if input.Quantity != nil && *input.Quantity < 0 {
		violations = append(violations, apperrors.FieldViolation{Field: "quantity", Reason: "quantity must be greater than or equal to 0"})
	}
	if input.UnitCost != nil && *input.UnitCost <= 0 {
		violations = append(violations, apperrors.FieldViolation{Field: "unit_cost", Reason: "unit cost must be greater than 0"})
	}
	if input.SellingPrice != nil && *input.SellingPrice <= 0 {
		violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price must be greater than 0"})
	}

	if len(violations) > 0 {
		return apperrors.InvalidFields("invalid variant update", violations)
	}
	return nil
}
