package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/variant/dto"
)

type fakeVariantRepo struct {
	variants map[string]*model.Variant
	existing bool
	created  *model.Variant
	updated  *model.Variant
}

func newFakeVariantRepo() *fakeVariantRepo {
	return &fakeVariantRepo{variants: map[string]*model.Variant{}}
}

func (f *fakeVariantRepo) Create(_ context.Context, v *model.Variant) error {
	f.created = v
	f.variants[v.ID] = v
	return nil
}

func (f *fakeVariantRepo) FindByID(_ context.Context, id string) (*model.Variant, error) {
	return f.variants[id], nil
}

func (f *fakeVariantRepo) FindByProduct(_ context.Context, productID string) ([]model.Variant, error) {
	var out []model.Variant
	for _, v := range f.variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVariantRepo) Update(_ context.Context, v *model.Variant) error {
	f.updated = v
	f.variants[v.ID] = v
	return nil
}

func (f *fakeVariantRepo) ExistsByColorSize(_ context.Context, _ string, _ *string, _ string) (bool, error) {
	return f.existing, nil
}

func (f *fakeVariantRepo) Decrement(_ context.Context, id string, qty int) (bool, error) {
	v, ok := f.variants[id]
	if !ok || v.Quantity < qty {
		return false, nil
	}
	v.Quantity -= qty
	return true, nil
}

func (f *fakeVariantRepo) SizesInUse(_ context.Context, _ string, _ []string) ([]string, error) {
	return nil, nil
}

type fakeProductResolver struct {
	product *model.Product
}

func (f *fakeProductResolver) FindByID(_ context.Context, _ string) (*model.Product, error) {
	return f.product, nil
}

type fakeTypeResolver struct {
	ct *model.CategoryType
}

func (f *fakeTypeResolver) FindTypeByCategory(_ context.Context, _ string) (*model.CategoryType, error) {
	return f.ct, nil
}

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }
func sptr(v string) *string  { return &v }

func stockProduct() *model.Product {
	return &model.Product{
		BaseModel:   model.BaseModel{ID: "prod-1"},
		Name:        "Organic Tomatoes",
		ProductType: model.ProductTypeStock,
		CategoryID:  "cat-1",
	}
}

func newUC(repo *fakeVariantRepo, products *fakeProductResolver, types *fakeTypeResolver) *variantUseCase {
	return &variantUseCase{
		repo:     repo,
		products: products,
		types:    types,
		logger:   zap.NewNop(),
	}
}

func TestCreateVariant_GeneratesSKU(t *testing.T) {
	repo := newFakeVariantRepo()
	uc := newUC(repo, &fakeProductResolver{product: stockProduct()}, &fakeTypeResolver{})

	v, err := uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:    "prod-1",
		Color:        sptr("Red"),
		Size:         "1kg",
		UnitCost:     f64(2),
		SellingPrice: f64(4),
		Quantity:     iptr(10),
	})
	require.NoError(t, err)

	require.NotNil(t, v.SKU)
	assert.Contains(t, *v.SKU, "ORGA-RED-1KG-")
	assert.True(t, v.IsActive)
	assert.Equal(t, 10, v.Quantity)
	assert.Same(t, v, repo.created)
}

func TestCreateVariant_KeepsProvidedSKU(t *testing.T) {
	repo := newFakeVariantRepo()
	uc := newUC(repo, &fakeProductResolver{product: stockProduct()}, &fakeTypeResolver{})

	v, err := uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:    "prod-1",
		Size:         "M",
		UnitCost:     f64(2),
		SellingPrice: f64(4),
		Quantity:     iptr(1),
		SKU:          "CUSTOM-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-1", *v.SKU)
}

func TestCreateVariant_ProductNotFound(t *testing.T) {
	uc := newUC(newFakeVariantRepo(), &fakeProductResolver{product: nil}, &fakeTypeResolver{})

	_, err := uc.CreateVariant(context.Background(), &dto.CreateVariantInput{ProductID: "nope"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateVariant_DuplicateTuple(t *testing.T) {
	repo := newFakeVariantRepo()
	repo.existing = true
	uc := newUC(repo, &fakeProductResolver{product: stockProduct()}, &fakeTypeResolver{})

	_, err := uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:    "prod-1",
		Size:         "M",
		UnitCost:     f64(2),
		SellingPrice: f64(4),
		Quantity:     iptr(1),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestCreateVariant_QuantityRequiredForStockOnly(t *testing.T) {
	repo := newFakeVariantRepo()

	// STOCK product: missing quantity is a violation.
	uc := newUC(repo, &fakeProductResolver{product: stockProduct()}, &fakeTypeResolver{})
	_, err := uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:    "prod-1",
		Size:         "M",
		UnitCost:     f64(2),
		SellingPrice: f64(4),
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Violations, 1)
	assert.Equal(t, "quantity", appErr.Violations[0].Field)

	// NON_STOCK product: the same request is fine.
	p := stockProduct()
	p.ProductType = model.ProductTypeNonStock
	uc = newUC(repo, &fakeProductResolver{product: p}, &fakeTypeResolver{})
	_, err = uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:    "prod-1",
		Size:         "M",
		UnitCost:     f64(2),
		SellingPrice: f64(4),
	})
	assert.NoError(t, err)
}

func TestCreateVariant_SizeVocabularyEnforced(t *testing.T) {
	ct := &model.CategoryType{Name: "Clothing Sizes"}
	ct.SetSizeOptions([]string{"S", "M", "L"})

	uc := newUC(newFakeVariantRepo(), &fakeProductResolver{product: stockProduct()}, &fakeTypeResolver{ct: ct})

	_, err := uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:    "prod-1",
		Size:         "XXL",
		UnitCost:     f64(2),
		SellingPrice: f64(4),
		Quantity:     iptr(1),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))

	_, err = uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:    "prod-1",
		Size:         "m",
		UnitCost:     f64(2),
		SellingPrice: f64(4),
		Quantity:     iptr(1),
	})
	assert.NoError(t, err)
}

func TestUpdateVariant_EmptyRequest(t *testing.T) {
	uc := newUC(newFakeVariantRepo(), &fakeProductResolver{}, &fakeTypeResolver{})

	_, err := uc.UpdateVariant(context.Background(), &dto.UpdateVariantInput{ID: "v-1"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))
}

func TestUpdateVariant_StrictlyPositivePrices(t *testing.T) {
	repo := newFakeVariantRepo()
	repo.variants["v-1"] = &model.Variant{BaseModel: model.BaseModel{ID: "v-1"}, Size: "M", UnitCost: 2, SellingPrice: 4}
	uc := newUC(repo, &fakeProductResolver{}, &fakeTypeResolver{})

	// Zero unit cost is legal at creation but not on update.
	_, err := uc.UpdateVariant(context.Background(), &dto.UpdateVariantInput{ID: "v-1", UnitCost: f64(0)})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "unit_cost", appErr.Violations[0].Field)
}

func TestUpdateVariant_PartialApply(t *testing.T) {
	repo := newFakeVariantRepo()
	repo.variants["v-1"] = &model.Variant{BaseModel: model.BaseModel{ID: "v-1"}, Size: "M", UnitCost: 2, SellingPrice: 4, Quantity: 7}
	uc := newUC(repo, &fakeProductResolver{}, &fakeTypeResolver{})

	v, err := uc.UpdateVariant(context.Background(), &dto.UpdateVariantInput{ID: "v-1", SellingPrice: f64(9)})
	require.NoError(t, err)
	assert.Equal(t, 9.0, v.SellingPrice)
	assert.Equal(t, 2.0, v.UnitCost)
	assert.Equal(t, 7, v.Quantity)
}

func TestDecrement_GuardRejectsOversell(t *testing.T) {
	repo := newFakeVariantRepo()
	repo.variants["v-1"] = &model.Variant{BaseModel: model.BaseModel{ID: "v-1"}, Size: "M", Quantity: 5}
	uc := newUC(repo, &fakeProductResolver{}, &fakeTypeResolver{})

	v, err := uc.Decrement(context.Background(), "v-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Quantity)

	_, err = uc.Decrement(context.Background(), "v-1", 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindStateConflict, apperrors.KindOf(err))
	assert.Equal(t, 0, repo.variants["v-1"].Quantity)
	// The message reports the requested quantity, not a possibly stale
	// on-hand count.
	assert.Contains(t, err.Error(), "want 1")
	assert.NotContains(t, err.Error(), "have")
}

func TestDecrement_NonPositiveQuantity(t *testing.T) {
	uc := newUC(newFakeVariantRepo(), &fakeProductResolver{}, &fakeTypeResolver{})

	_, err := uc.Decrement(context.Background(), "v-1", 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))
}
