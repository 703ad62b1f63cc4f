// Package strategy implements the pricing behavior that differs between
// STOCK and NON_STOCK products. Strategies are selected by product type
// from a registration map built at startup; no reflection involved.
package strategy

import (
	"strconv"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product/dto"
)

type Strategy interface {
	// Validate checks the product request against the type's rules and
	// reports every violation found, not just the first.
	Validate(input *dto.CreateProductInput) error

	// Initialize prepares the product's inventory representation. Variant
	// materialization is the product lifecycle's job, not the strategy's.
	Initialize(p *model.Product, input *dto.CreateProductInput)

	// CanPurchase reports whether qty units are satisfiable right now.
	CanPurchase(p *model.Product, qty int) bool

	// ApplyPurchase mutates the loaded product's stock for a purchase of
	// qty units. Variant-bearing products cannot be purchased without a
	// variant selection and always fail with an Ambiguous error.
	ApplyPurchase(p *model.Product, qty int) error

	// TotalPrice computes the price of qty units from the simple record.
	TotalPrice(p *model.Product, qty int) (float64, error)
}

var registry = map[model.ProductType]Strategy{
	model.ProductTypeStock:    &stockStrategy{},
	model.ProductTypeNonStock: &nonStockStrategy{},
}

// For returns the strategy registered for the given product type.
func For(t model.ProductType) (Strategy, error) {
	s, ok := registry[t]
	if !ok {
		return nil, apperrors.InvalidRequest("no pricing strategy registered for product type %q", t)
	}
	return s, nil
}

func variantField(i int, name string) string {
	return "variants[" + strconv.Itoa(i) + "]." + name
}
