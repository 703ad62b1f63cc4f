package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product"
	"github.com/tradecove/catalog-service/internal/product/dto"
	"github.com/tradecove/catalog-service/pkg/response"
)

type ProductHandler struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewProductHandler(uc product.UseCase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) MapRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/images", h.UploadImages)
}

// Create expects a multipart form: a "data" field holding the product JSON
// and one or more "images" files.
func (h *ProductHandler) Create(c *gin.Context) {
	var input dto.CreateProductInput
	if err := json.Unmarshal([]byte(c.PostForm("data")), &input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid product payload: %v", err))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, apperrors.InvalidRequest("multipart form required: %v", err))
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &input, form.File["images"])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	var filters dto.ProductFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid filters: %v", err))
		return
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	products, total, err := h.uc.ListProducts(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"products": products,
		"total":    total,
		"page":     filters.Page,
	})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input dto.UpdateProductInput

	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		if err := json.Unmarshal([]byte(c.PostForm("data")), &input); err != nil {
			response.Error(c, apperrors.InvalidRequest("invalid product payload: %v", err))
			return
		}
		input.ID = c.Param("id")
		form, err := c.MultipartForm()
		if err != nil {
			response.Error(c, apperrors.InvalidRequest("multipart form required: %v", err))
			return
		}
		p, err := h.uc.UpdateProduct(c.Request.Context(), &input, form.File["images"])
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, p)
		return
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.InvalidRequest("invalid product payload: %v", err))
		return
	}
	input.ID = c.Param("id")

	p, err := h.uc.UpdateProduct(c.Request.Context(), &input, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

func (h *ProductHandler) UpdateStatus(c *gin.Context) {
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

	p, err := h.uc.UpdateProductStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ProductHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, apperrors.InvalidRequest("multipart form required: %v", err))
		return
	}

	p, err := h.uc.UploadImages(c.Request.Context(), c.Param("id"), form.File["images"])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}
