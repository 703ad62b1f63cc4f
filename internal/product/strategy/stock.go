package strategy

import (
	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product/dto"
)

const (
	defaultReorderLevel    = 10
	defaultReorderQuantity = 50
)

// stockStrategy handles inventory-tracked products. Both simple products
// (single stock record) and variant products are supported.
type stockStrategy struct{}

func (s *stockStrategy) Validate(input *dto.CreateProductInput) error {
	var violations []apperrors.FieldViolation

	if !input.HasVariants() {
		violations = append(violations, apperrors.FieldViolation{
			Field:  "variants",
			Reason: "at least one variant is required for STOCK products",
		})
		return apperrors.InvalidFields("invalid product request", violations)
	}

	for i, v := range input.Variants {
		violations = append(violations, validateVariantPricing(i, v, true)...)
	}

	if len(violations) > 0 {
		return apperrors.InvalidFields("invalid product request", violations)
	}
	return nil
}

func (s *stockStrategy) Initialize(p *model.Product, input *dto.CreateProductInput) {
	if input.HasVariants() {
		// Stock and pricing are managed per variant.
		p.Stock = nil
		return
	}
	// Simple product: seed a single record with strategy defaults. The
	// lifecycle completes pricing from the request before persisting.
	p.Stock = &model.Stock{
		Quantity:        0,
		ReorderLevel:    defaultReorderLevel,
		ReorderQuantity: defaultReorderQuantity,
	}
}

func (s *stockStrategy) CanPurchase(p *model.Product, qty int) bool {
	return p.TotalStock() >= qty
}

func (s *stockStrategy) ApplyPurchase(p *model.Product, qty int) error {
	if p.HasVariants() {
		return apperrors.Ambiguous("cannot process purchase for product %s without specifying a variant", p.ID)
	}
	if p.Stock == nil {
		return apperrors.StateConflict("product %s has no stock record", p.ID)
	}

	remaining := p.Stock.Quantity - qty
	if remaining < 0 {
		return apperrors.StateConflict("insufficient stock for product %s: have %d, want %d", p.ID, p.Stock.Quantity, qty)
	}
	p.Stock.Quantity = remaining
	return nil
}

func (s *stockStrategy) TotalPrice(p *model.Product, qty int) (float64, error) {
	return simpleRecordPrice(p, qty)
}

// validateVariantPricing is shared by both strategies. quantityRequired is
// the only difference: STOCK variants must carry an initial quantity,
// NON_STOCK variants may omit it (always available).
func validateVariantPricing(i int, v dto.VariantInput, quantityRequired bool) []apperrors.FieldViolation {
	var violations []apperrors.FieldViolation

	if v.Size == "" {
		violations = append(violations, apperrors.FieldViolation{
			Field:  variantField(i, "size"),
			Reason: "size is required",
		})
	}
	if v.UnitCost == nil {
		violations = append(violations, apperrors.FieldViolation{
			Field:  variantField(i, "unit_cost"),
			Reason: "unit cost is required",
		})
	} else if *v.UnitCost < 0 {
		violations = append(violations, apperrors.FieldViolation{
			Field:  variantField(i, "unit_cost"),
			Reason: "unit cost must be zero or positive",
		})
	}
	if v.SellingPrice == nil {
		violations = append(violations, apperrors.FieldViolation{
			Field:  variantField(i, "selling_price"),
			Reason: "selling price is required",
		})
	} else if *v.SellingPrice <= 0 {
		violations = append(violations, apperrors.FieldViolation{
			Field:  variantField(i, "selling_price"),
			Reason: "selling price must be positive",
		})
	}
	if v.UnitCost != nil && v.SellingPrice != nil && *v.SellingPrice < *v.UnitCost {
		violations = append(violations, apperrors.FieldViolation{
			Field:  variantField(i, "selling_price"),
			Reason: "selling price should not be less than unit cost",
		})
	}

	switch {
	case v.Quantity == nil && quantityRequired:
		violations = append(violations, apperrors.FieldViolation{
			Field:  variantField(i, "quantity"),
			Reason: "initial quantity is required",
		})
	case v.Quantity != nil && *v.Quantity < 0:
		violations = append(violations, apperrors.FieldViolation{
			Field:  variantField(i, "quantity"),
			Reason: "quantity cannot be negative",
		})
	}

	return violations
}

func simpleRecordPrice(p *model.Product, qty int) (float64, error) {
	if p.HasVariants() {
		return 0, apperrors.Ambiguous("cannot calculate price for product %s without specifying a variant", p.ID)
	}
	if p.Stock == nil {
		return 0, apperrors.StateConflict("product %s has no stock record for pricing", p.ID)
	}
	return p.Stock.SellingPrice * float64(qty), nil
}
