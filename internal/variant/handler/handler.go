package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/variant"
	"github.com/tradecove/catalog-service/internal/variant/dto"
	"github.com/tradecove/catalog-service/pkg/response"
)

type VariantHandler struct {
	uc     variant.UseCase
	logger *zap.Logger
}

func NewVariantHandler(uc variant.UseCase, log *zap.Logger) *VariantHandler {
	return &VariantHandler{uc: uc, logger: log}
}

func (h *VariantHandler) MapRoutes(products, variants *gin.RouterGroup) {
	products.POST("/:id/variants", h.Create)
	products.GET("/:id/variants", h.ListByProduct)
	variants.GET("/:id", h.Get)
	variants.PATCH("/:id", h.Update)
	variants.PATCH("/:id/status", h.UpdateStatus)
	variants.POST("/:id/decrement", h.Decrement)
}

func (h *VariantHandler) Create(c *gin.Context) {
	var input dto.CreateVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid variant payload: %v", err))
		return
	}
	input.ProductID = c.Param("id")

	v, err := h.uc.CreateVariant(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, v)
}

func (h *VariantHandler) ListByProduct(c *gin.Context) {
	variants, err := h.uc.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, variants)
}

func (h *VariantHandler) Get(c *gin.Context) {
	v, err := h.uc.GetVariant(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, v)
}

func (h *VariantHandler) Update(c *gin.Context) {
	var input dto.UpdateVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid variant payload: %v", err))
		return
	}
	input.ID = c.Param("id")

	v, err := h.uc.UpdateVariant(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, v)
}

func (h *VariantHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.InvalidRequest("is_active is required"))
		return
	}

	v, err := h.uc.UpdateVariantStatus(c.Request.Context(), c.Param("id"), *body.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, v)
}

func (h *VariantHandler) Decrement(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.InvalidRequest("quantity is required"))
		return
	}

	v, err := h.uc.Decrement(c.Request.Context(), c.Param("id"), body.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, v)
}
