package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/inventory"
	"github.com/tradecove/catalog-service/internal/inventory/dto"
	"github.com/tradecove/catalog-service/pkg/response"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger *zap.Logger
}

func NewInventoryHandler(uc inventory.UseCase, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

func (h *InventoryHandler) MapRoutes(products, stocks *gin.RouterGroup) {
	products.GET("/:id/stock", h.Get)
	products.PATCH("/:id/stock", h.Update)
	stocks.GET("/low", h.ListLow)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	s, err := h.uc.GetStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var input dto.UpdateStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid stock payload: %v", err))
		return
	}
	input.ProductID = c.Param("id")

	s, err := h.uc.UpdateStock(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s)
}

func (h *InventoryHandler) ListLow(c *gin.Context) {
	var filters dto.LowStockFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid filters: %v", err))
		return
	}

	stocks, total, err := h.uc.ListLowStock(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"stocks": stocks,
		"total":  total,
	})
}
