package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/category"
	"github.com/tradecove/catalog-service/internal/category/dto"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/pkg/response"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger *zap.Logger
}

func NewCategoryHandler(uc category.UseCase, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: log}
}

func (h *CategoryHandler) MapRoutes(categories, types *gin.RouterGroup) {
	categories.POST("", h.Create)
	categories.GET("", h.List)
	categories.GET("/:id", h.Get)
	categories.PATCH("/:id", h.Update)
	categories.PATCH("/:id/status", h.UpdateStatus)
	categories.DELETE("/:id", h.Delete)

	types.POST("", h.CreateType)
	types.GET("", h.ListTypes)
	types.GET("/:id", h.GetType)
	types.PATCH("/:id", h.UpdateType)
	types.DELETE("/:id", h.DeleteType)
}

// Create accepts either JSON or a multipart form with an optional "image"
// file alongside the category fields.
func (h *CategoryHandler) Create(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid category payload: %v", err))
		return
	}

	image, _ := c.FormFile("image")

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) List(c *gin.Context) {
	var filters dto.CategoryFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid filters: %v", err))
		return
	}

	categories, total, err := h.uc.ListCategories(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"categories": categories,
		"total":      total,
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var input dto.UpdateCategoryInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid category payload: %v", err))
		return
	}
	input.ID = c.Param("id")

	image, _ := c.FormFile("image")

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &input, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.InvalidRequest("status is required"))
		return
	}

	status, err := model.ParseStatus(body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	cat, err := h.uc.UpdateCategoryStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *CategoryHandler) CreateType(c *gin.Context) {
	var input dto.CreateCategoryTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid category type payload: %v", err))
		return
	}

	ct, err := h.uc.CreateCategoryType(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ct)
}

func (h *CategoryHandler) GetType(c *gin.Context) {
	ct, err := h.uc.GetCategoryType(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ct)
}

func (h *CategoryHandler) ListTypes(c *gin.Context) {
	types, err := h.uc.ListCategoryTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, types)
}

func (h *CategoryHandler) UpdateType(c *gin.Context) {
	var input dto.UpdateCategoryTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid category type payload: %v", err))
		return
	}
	input.ID = c.Param("id")

	ct, err := h.uc.UpdateCategoryType(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ct)
}

func (h *CategoryHandler) DeleteType(c *gin.Context) {
	if err := h.uc.DeleteCategoryType(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
