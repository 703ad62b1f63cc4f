package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/inventory/dto"
	"github.com/tradecove/catalog-service/internal/model"
)

type fakeStockRepo struct {
	stocks map[string]*model.Stock
}

func (f *fakeStockRepo) GetByProduct(_ context.Context, productID string) (*model.Stock, error) {
	return f.stocks[productID], nil
}

func (f *fakeStockRepo) Update(_ context.Context, s *model.Stock) error {
	f.stocks[s.ProductID] = s
	return nil
}

func (f *fakeStockRepo) Decrement(_ context.Context, productID string, qty int) (bool, error) {
	s, ok := f.stocks[productID]
	if !ok || s.Quantity < qty {
		return false, nil
	}
	s.Quantity -= qty
	return true, nil
}

func (f *fakeStockRepo) FindLowStock(_ context.Context, _ *dto.LowStockFilters) ([]model.Stock, int, error) {
	var out []model.Stock
	for _, s := range f.stocks {
		if s.Quantity <= s.ReorderLevel {
			out = append(out, *s)
		}
	}
	return out, len(out), nil
}

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

func newTestUC(repo *fakeStockRepo) *inventoryUseCase {
	return &inventoryUseCase{repo: repo, logger: zap.NewNop()}
}

func seeded() *fakeStockRepo {
	return &fakeStockRepo{stocks: map[string]*model.Stock{
		"prod-1": {ProductID: "prod-1", UnitCost: 2, SellingPrice: 5, Quantity: 8, ReorderLevel: 10, ReorderQuantity: 50},
	}}
}

func TestGetStock_NotFound(t *testing.T) {
	uc := newTestUC(&fakeStockRepo{stocks: map[string]*model.Stock{}})

	_, err := uc.GetStock(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateStock_EmptyRequest(t *testing.T) {
	uc := newTestUC(seeded())

	_, err := uc.UpdateStock(context.Background(), &dto.UpdateStockInput{ProductID: "prod-1"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))
}

func TestUpdateStock_PartialApply(t *testing.T) {
	repo := seeded()
	uc := newTestUC(repo)

	s, err := uc.UpdateStock(context.Background(), &dto.UpdateStockInput{
		ProductID: "prod-1",
		Quantity:  iptr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, s.Quantity)
	assert.Equal(t, 5.0, s.SellingPrice)
	assert.Equal(t, 50, s.ReorderQuantity)
}

func TestUpdateStock_RejectsPriceBelowCost(t *testing.T) {
	uc := newTestUC(seeded())

	_, err := uc.UpdateStock(context.Background(), &dto.UpdateStockInput{
		ProductID:    "prod-1",
		SellingPrice: f64(1),
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "selling_price", appErr.Violations[0].Field)
}

func TestUpdateStock_CollectsAllViolations(t *testing.T) {
	uc := newTestUC(seeded())

	_, err := uc.UpdateStock(context.Background(), &dto.UpdateStockInput{
		ProductID:    "prod-1",
		UnitCost:     f64(-1),
		Quantity:     iptr(-5),
		ReorderLevel: iptr(-2),
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Len(t, appErr.Violations, 3)
}

func TestListLowStock(t *testing.T) {
	repo := seeded()
	repo.stocks["prod-2"] = &model.Stock{ProductID: "prod-2", Quantity: 100, ReorderLevel: 10}
	uc := newTestUC(repo)

	stocks, total, err := uc.ListLowStock(context.Background(), &dto.LowStockFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, stocks, 1)
	assert.Equal(t, "prod-1", stocks[0].ProductID)
}
