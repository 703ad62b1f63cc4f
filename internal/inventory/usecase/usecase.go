package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/inventory"
	"github.com/tradecove/catalog-service/internal/inventory/dto"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/pkg/cache"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger *zap.Logger
}

func NewInventoryUseCase(repo inventory.Repository, cacheClient *cache.RedisClient, log *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  cacheClient,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetStock(ctx context.Context, productID string) (*model.Stock, error) {
	s, err := uc.repo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperrors.NotFound("no stock record for product: %s", productID)
	}
	return s, nil
}

func (uc *inventoryUseCase) UpdateStock(ctx context.Context, input *dto.UpdateStockInput) (*model.Stock, error) {
	if input.Empty() {
		return nil, apperrors.InvalidRequest("no fields to update")
	}

	lockValue, err := uc.lock(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	defer uc.unlock(context.Background(), input.ProductID, lockValue)

	s, err := uc.repo.GetByProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperrors.NotFound("no stock record for product: %s", input.ProductID)
	}

	var violations []apperrors.FieldViolation
	if input.UnitCost != nil {
		if *input.UnitCost < 0 {
			violations = append(violations, apperrors.FieldViolation{Field: "unit_cost", Reason: "unit cost must be zero or positive"})
		} else {
			s.UnitCost = *input.UnitCost
		}
	}
	if input.SellingPrice != nil {
		if *input.SellingPrice <= 0 {
			violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price must be positive"})
		} else {
			s.SellingPrice = *input.SellingPrice
		}
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			violations = append(violations, apperrors.FieldViolation{Field: "quantity", Reason: "quantity cannot be negative"})
		} else {
			s.Quantity = *input.Quantity
		}
	}
	if input.ReorderLevel != nil {
		if *input.ReorderLevel < 0 {
			violations = append(violations, apperrors.FieldViolation{Field: "reorder_level", Reason: "reorder level cannot be negative"})
		} else {
			s.ReorderLevel = *input.ReorderLevel
		}
	}
	if input.ReorderQuantity != nil {
		if *input.ReorderQuantity < 0 {
			violations = append(violations, apperrors.FieldViolation{Field: "reorder_quantity", Reason: "reorder quantity cannot be negative"})
		} else {
			s.ReorderQuantity = *input.ReorderQuantity
		}
	}
	if s.SellingPrice < s.UnitCost {
		violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price should not be less than unit cost"})
	}
	if len(violations) > 0 {
		return nil, apperrors.InvalidFields("invalid stock update", violations)
	}

	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Info("stock updated",
		zap.String("product_id", s.ProductID),
		zap.Int("quantity", s.Quantity),
	)
	return s, nil
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, filters *dto.LowStockFilters) ([]model.Stock, int, error) {
	return uc.repo.FindLowStock(ctx, filters)
}

// lock serializes writers of one product's stock record across instances.
// The returned value identifies the holder and must be passed to unlock.
func (uc *inventoryUseCase) lock(ctx context.Context, productID string) (string, error) {
	if uc.cache == nil {
		return "", nil
	}
	key := fmt.Sprintf("lock:stock:%s", productID)
	value := uuid.New().String()
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, key, value, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.Error(err))
		}
		if ok {
			return value, nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return "", apperrors.StateConflict("stock record busy for product: %s", productID)
}

func (uc *inventoryUseCase) unlock(ctx context.Context, productID, value string) {
	if uc.cache == nil {
		return
	}
	key := fmt.Sprintf("lock:stock:%s", productID)
	if err := uc.cache.ReleaseLock(ctx, key, value); err != nil {
		uc.logger.Error("failed to release stock lock", zap.Error(err))
	}
}
