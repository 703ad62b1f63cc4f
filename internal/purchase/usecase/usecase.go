package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product/strategy"
	"github.com/tradecove/catalog-service/internal/purchase"
)

type purchaseUseCase struct {
	products purchase.ProductLoader
	stocks   purchase.StockDecrementer
	variants purchase.VariantDecrementer
	logger   *zap.Logger
}

func NewPurchaseUseCase(
	products purchase.ProductLoader,
	stocks purchase.StockDecrementer,
	variants purchase.VariantDecrementer,
	log *zap.Logger,
) purchase.UseCase {
	return &purchaseUseCase{
		products: products,
		stocks:   stocks,
		variants: variants,
		logger:   log,
	}
}

func (uc *purchaseUseCase) CanPurchase(ctx context.Context, productID string, qty int) (bool, error) {
	if qty <= 0 {
		return false, apperrors.InvalidRequest("purchase quantity must be positive")
	}

	p, strat, err := uc.load(ctx, productID)
	if err != nil {
		return false, err
	}
	return strat.CanPurchase(p, qty), nil
}

func (uc *purchaseUseCase) TotalPrice(ctx context.Context, productID string, qty int) (float64, error) {
	if qty <= 0 {
		return 0, apperrors.InvalidRequest("purchase quantity must be positive")
	}

	p, strat, err := uc.load(ctx, productID)
	if err != nil {
		return 0, err
	}
	return strat.TotalPrice(p, qty)
}

func (uc *purchaseUseCase) PurchaseProduct(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return apperrors.InvalidRequest("purchase quantity must be positive")
	}

	p, strat, err := uc.load(ctx, productID)
	if err != nil {
		return err
	}

	// The in-memory check gives the type-specific error shape; persistence
	// re-checks under the row lock, so a stale read cannot oversell.
	if err := strat.ApplyPurchase(p, qty); err != nil {
		return err
	}

	if p.ProductType == model.ProductTypeStock {
		ok, err := uc.stocks.Decrement(ctx, productID, qty)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.StateConflict("insufficient stock for product %s: want %d", productID, qty)
		}
	}

	uc.logger.Info("purchase applied",
		zap.String("product_id", productID),
		zap.Int("quantity", qty),
	)
	return nil
}

func (uc *purchaseUseCase) PurchaseVariant(ctx context.Context, variantID string, qty int) error {
	if qty <= 0 {
		return apperrors.InvalidRequest("purchase quantity must be positive")
	}

	v, err := uc.variants.FindByID(ctx, variantID)
	if err != nil {
		return err
	}
	if v == nil {
		return apperrors.NotFound("variant not found with id: %s", variantID)
	}

	ok, err := uc.variants.Decrement(ctx, variantID, qty)
	if err != nil {
		return err
	}
	if !ok {
		// v.Quantity predates the guarded decrement and may be stale, so
		// it is not echoed back.
		return apperrors.StateConflict(
			"insufficient stock for variant %s: want %d",
			v.DisplayName(), qty)
	}

	uc.logger.Info("variant purchase applied",
		zap.String("variant_id", variantID),
		zap.Int("quantity", qty),
	)
	return nil
}

func (uc *purchaseUseCase) load(ctx context.Context, productID string) (*model.Product, strategy.Strategy, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, apperrors.NotFound("product not found with id: %s", productID)
	}

	strat, err := strategy.For(p.ProductType)
	if err != nil {
		return nil, nil, err
	}
	return p, strat, nil
}
