package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/purchase"
	"github.com/tradecove/catalog-service/pkg/response"
)

type PurchaseHandler struct {
	uc     purchase.UseCase
	logger *zap.Logger
}

func NewPurchaseHandler(uc purchase.UseCase, log *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, logger: log}
}

func (h *PurchaseHandler) MapRoutes(products, variants *gin.RouterGroup) {
	products.GET("/:id/can-purchase", h.CanPurchase)
	products.GET("/:id/price", h.TotalPrice)
	products.POST("/:id/purchase", h.PurchaseProduct)
	variants.POST("/:id/purchase", h.PurchaseVariant)
}

func (h *PurchaseHandler) CanPurchase(c *gin.Context) {
	qty, err := quantityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ok, err := h.uc.CanPurchase(c.Request.Context(), c.Param("id"), qty)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"can_purchase": ok})
}

func (h *PurchaseHandler) TotalPrice(c *gin.Context) {
	qty, err := quantityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	price, err := h.uc.TotalPrice(c.Request.Context(), c.Param("id"), qty)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"total_price": price})
}

func (h *PurchaseHandler) PurchaseProduct(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.InvalidRequest("quantity is required"))
		return
	}

	if err := h.uc.PurchaseProduct(c.Request.Context(), c.Param("id"), body.Quantity); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *PurchaseHandler) PurchaseVariant(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.InvalidRequest("quantity is required"))
		return
	}

	if err := h.uc.PurchaseVariant(c.Request.Context(), c.Param("id"), body.Quantity); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func quantityQuery(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("quantity", "1")
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidRequest("invalid quantity: %s", raw)
	}
	return qty, nil
}
