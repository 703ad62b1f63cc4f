package strategy

import (
	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product/dto"
)

// nonStockStrategy handles products without inventory tracking: services,
// digital goods, made-to-order items. Variants are still allowed (e.g.
// pizza sizes) but carry no meaningful quantity.
type nonStockStrategy struct{}

func (s *nonStockStrategy) Validate(input *dto.CreateProductInput) error {
	if !input.HasVariants() {
		return nil
	}

	var violations []apperrors.FieldViolation
	for i, v := range input.Variants {
		violations = append(violations, validateVariantPricing(i, v, false)...)
	}
	if len(violations) > 0 {
		return apperrors.InvalidFields("invalid product request", violations)
	}
	return nil
}

func (s *nonStockStrategy) Initialize(p *model.Product, input *dto.CreateProductInput) {
	// No single-record allocation either way. For simple non-stock
	// products the lifecycle creates a pricing-only record from the
	// request; variant products price per variant.
	p.Stock = nil
}

func (s *nonStockStrategy) CanPurchase(p *model.Product, qty int) bool {
	// Always available.
	return true
}

func (s *nonStockStrategy) ApplyPurchase(p *model.Product, qty int) error {
	if p.HasVariants() {
		return apperrors.Ambiguous("cannot process purchase for product %s without specifying a variant", p.ID)
	}
	// No inventory to deduct.
	return nil
}

func (s *nonStockStrategy) TotalPrice(p *model.Product, qty int) (float64, error) {
	return simpleRecordPrice(p, qty)
}
