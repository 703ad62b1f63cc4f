package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product/dto"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func variantInput(size string, cost, price float64, qty int) dto.VariantInput {
	return dto.VariantInput{Size: size, UnitCost: f64(cost), SellingPrice: f64(price), Quantity: i(qty)}
}

func TestFor_UnknownType(t *testing.T) {
	_, err := For(model.ProductType("SUBSCRIPTION"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))
}

func TestFor_RegisteredTypes(t *testing.T) {
	for _, pt := range []model.ProductType{model.ProductTypeStock, model.ProductTypeNonStock} {
		s, err := For(pt)
		require.NoError(t, err)
		require.NotNil(t, s)
	}
}

func TestStockValidate_RequiresVariants(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	err := s.Validate(&dto.CreateProductInput{Name: "Tee", ProductType: "STOCK"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Violations, 1)
	assert.Equal(t, "variants", appErr.Violations[0].Field)
}

func TestStockValidate_CollectsAllViolations(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	input := &dto.CreateProductInput{
		Name: "Tee",
		Variants: []dto.VariantInput{
			{Size: "", UnitCost: f64(-1), SellingPrice: f64(0)},
			variantInput("M", 10, 5, 3),
		},
	}

	err := s.Validate(input)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)

	// First variant: missing size, negative cost, non-positive price,
	// missing quantity. Second variant: price below cost.
	fields := make([]string, 0, len(appErr.Violations))
	for _, v := range appErr.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "variants[0].size")
	assert.Contains(t, fields, "variants[0].unit_cost")
	assert.Contains(t, fields, "variants[0].selling_price")
	assert.Contains(t, fields, "variants[0].quantity")
	assert.Contains(t, fields, "variants[1].selling_price")
	assert.Len(t, appErr.Violations, 5)
}

func TestStockValidate_ZeroUnitCostAllowed(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	input := &dto.CreateProductInput{
		Name:     "Sample",
		Variants: []dto.VariantInput{variantInput("M", 0, 5, 1)},
	}
	assert.NoError(t, s.Validate(input))
}

func TestNonStockValidate_VariantsOptional(t *testing.T) {
	s, _ := For(model.ProductTypeNonStock)

	assert.NoError(t, s.Validate(&dto.CreateProductInput{Name: "Consulting"}))

	// Variants are allowed but quantity stays optional.
	input := &dto.CreateProductInput{
		Name:     "Course",
		Variants: []dto.VariantInput{{Size: "BASIC", UnitCost: f64(0), SellingPrice: f64(99)}},
	}
	assert.NoError(t, s.Validate(input))
}

func TestStockInitialize_SimpleDefaults(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	p := &model.Product{ProductType: model.ProductTypeStock}
	s.Initialize(p, &dto.CreateProductInput{})

	require.NotNil(t, p.Stock)
	assert.Equal(t, 0, p.Stock.Quantity)
	assert.Equal(t, 10, p.Stock.ReorderLevel)
	assert.Equal(t, 50, p.Stock.ReorderQuantity)
}

func TestStockInitialize_VariantsClearStockRecord(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	p := &model.Product{Stock: &model.Stock{Quantity: 5}}
	s.Initialize(p, &dto.CreateProductInput{
		Variants: []dto.VariantInput{variantInput("M", 1, 2, 3)},
	})
	assert.Nil(t, p.Stock)
}

func TestNonStockInitialize_NoStockRecord(t *testing.T) {
	s, _ := For(model.ProductTypeNonStock)

	p := &model.Product{Stock: &model.Stock{Quantity: 5}}
	s.Initialize(p, &dto.CreateProductInput{})
	assert.Nil(t, p.Stock)
}

func TestStockCanPurchase_DerivedFromVariants(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	p := &model.Product{
		ProductType: model.ProductTypeStock,
		Variants: []model.Variant{
			{Size: "M", Quantity: 2},
			{Size: "L", Quantity: 3},
		},
	}

	assert.True(t, s.CanPurchase(p, 5))
	assert.False(t, s.CanPurchase(p, 6))
}

func TestStockCanPurchase_SimpleRecord(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	p := &model.Product{Stock: &model.Stock{Quantity: 4}}
	assert.True(t, s.CanPurchase(p, 4))
	assert.False(t, s.CanPurchase(p, 5))
}

func TestNonStockCanPurchase_AlwaysTrue(t *testing.T) {
	s, _ := For(model.ProductTypeNonStock)

	p := &model.Product{ProductType: model.ProductTypeNonStock}
	assert.True(t, s.CanPurchase(p, 1))
	assert.True(t, s.CanPurchase(p, 1000000))
}

func TestStockApplyPurchase_DecrementsSimpleRecord(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	p := &model.Product{Stock: &model.Stock{Quantity: 5}}
	require.NoError(t, s.ApplyPurchase(p, 5))
	assert.Equal(t, 0, p.Stock.Quantity)

	err := s.ApplyPurchase(p, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindStateConflict, apperrors.KindOf(err))
	assert.Equal(t, 0, p.Stock.Quantity)
}

func TestStockApplyPurchase_VariantProductIsAmbiguous(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	p := &model.Product{Variants: []model.Variant{{Size: "M", Quantity: 10}}}
	err := s.ApplyPurchase(p, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAmbiguous, apperrors.KindOf(err))
}

func TestNonStockApplyPurchase(t *testing.T) {
	s, _ := For(model.ProductTypeNonStock)

	p := &model.Product{ProductType: model.ProductTypeNonStock}
	assert.NoError(t, s.ApplyPurchase(p, 10))

	p.Variants = []model.Variant{{Size: "BASIC"}}
	err := s.ApplyPurchase(p, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAmbiguous, apperrors.KindOf(err))
}

func TestTotalPrice_SimpleRecord(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	p := &model.Product{Stock: &model.Stock{SellingPrice: 12.5}}
	price, err := s.TotalPrice(p, 4)
	require.NoError(t, err)
	assert.Equal(t, 50.0, price)
}

func TestTotalPrice_VariantProductIsAmbiguous(t *testing.T) {
	s, _ := For(model.ProductTypeStock)

	p := &model.Product{Variants: []model.Variant{{Size: "M"}}}
	_, err := s.TotalPrice(p, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAmbiguous, apperrors.KindOf(err))
}
