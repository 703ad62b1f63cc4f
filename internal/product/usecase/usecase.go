package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/internal/apperrors"
	"github.com/tradecove/catalog-service/internal/imagestore"
	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product"
	"github.com/tradecove/catalog-service/internal/product/dto"
	"github.com/tradecove/catalog-service/internal/product/strategy"
	"github.com/tradecove/catalog-service/internal/variant"
	"github.com/tradecove/catalog-service/pkg/cache"
	"github.com/tradecove/catalog-service/pkg/search"
)

const (
	maxImages     = 6
	productFolder = "products/"
	productsIndex = "products"
)

type productUseCase struct {
	repo       product.Repository
	categories product.CategoryResolver
	types      variant.SizeVocabularyResolver
	images     imagestore.Store
	cache      *cache.RedisClient
	es         *search.Client
	logger     *zap.Logger
}

func NewProductUseCase(
	repo product.Repository,
	categories product.CategoryResolver,
	types variant.SizeVocabularyResolver,
	images imagestore.Store,
	cacheClient *cache.RedisClient,
	es *search.Client,
	log *zap.Logger,
) product.UseCase {
	return &productUseCase{
		repo:       repo,
		categories: categories,
		types:      types,
		images:     images,
		cache:      cacheClient,
		es:         es,
		logger:     log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput, images []*multipart.FileHeader) (*model.Product, error) {
	// Image ceiling is checked before anything is persisted or uploaded.
	valid := validFiles(images)
	if len(valid) == 0 {
		return nil, apperrors.InvalidRequest("at least 1 valid image is required when creating a product")
	}
	if len(valid) > maxImages {
		return nil, apperrors.InvalidRequest("cannot add %d images, maximum allowed is %d images", len(valid), maxImages)
	}

	productType, err := model.ParseProductType(input.ProductType)
	if err != nil {
		return nil, err
	}

	status := model.StatusActive
	if input.Status != "" {
		status, err = model.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
	}

	cat, err := uc.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperrors.NotFound("category not found with id: %s", input.CategoryID)
	}

	strat, err := strategy.For(productType)
	if err != nil {
		return nil, err
	}
	if err := strat.Validate(input); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		Description: optional(input.Description),
		ProductType: productType,
		Status:      status,
		CategoryID:  cat.ID,
	}

	strat.Initialize(p, input)

	if input.HasVariants() {
		if err := uc.materializeVariants(ctx, p, input.Variants); err != nil {
			return nil, err
		}
	} else if err := uc.completeSimpleRecord(p, input); err != nil {
		return nil, err
	}

	// Two-phase persist: the product row first for its identity, then the
	// inventory rows referencing it, in one transaction.
	if err := uc.repo.CreateWithInventory(ctx, p); err != nil {
		return nil, err
	}

	urls, err := uc.images.UploadMany(ctx, valid, productFolder+p.ID+"/", "product")
	if err != nil {
		// The product row is already committed. Roll it back so a failed
		// upload does not leave a half-created product behind.
		uc.compensateCreate(ctx, p.ID)
		return nil, err
	}
	if err := uc.repo.AddImages(ctx, p.ID, urls); err != nil {
		uc.images.DeleteMany(ctx, urls)
		uc.compensateCreate(ctx, p.ID)
		return nil, err
	}
	p.ImageURLs = urls

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	uc.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("type", string(p.ProductType)),
		zap.Int("variants", len(p.Variants)),
	)
	return p, nil
}

func (uc *productUseCase) compensateCreate(ctx context.Context, productID string) {
	if err := uc.repo.Delete(ctx, productID); err != nil {
		uc.logger.Error("failed to roll back product after image failure",
			zap.String("product_id", productID),
			zap.Error(err),
		)
	}
}

// materializeVariants turns the request's variant specs into bound Variant
// rows: identity, SKU generation, size-vocabulary check, and in-request
// tuple uniqueness.
func (uc *productUseCase) materializeVariants(ctx context.Context, p *model.Product, inputs []dto.VariantInput) error {
	ct, err := uc.types.FindTypeByCategory(ctx, p.CategoryID)
	if err != nil {
		return err
	}

	now := time.Now()
	seen := map[string]bool{}
	for _, in := range inputs {
		if ct != nil && !ct.HasSize(in.Size) {
			return apperrors.InvalidRequest("size %q is not an option of category type %q (allowed: %s)", in.Size, ct.Name, ct.SizeOptions)
		}

		key := tupleKey(in.Color, in.Size)
		if seen[key] {
			return apperrors.Conflict("duplicate variant %s in request", key)
		}
		seen[key] = true

		v := model.Variant{
			BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			ProductID:    p.ID,
			Color:        in.Color,
			Size:         in.Size,
			UnitCost:     *in.UnitCost,
			SellingPrice: *in.SellingPrice,
			IsActive:     true,
		}
		if in.Quantity != nil {
			v.Quantity = *in.Quantity
		}

		sku := in.SKU
		if sku == "" {
			sku = variant.GenerateSKU(p.Name, in.Color, in.Size)
		}
		v.SKU = &sku

		p.Variants = append(p.Variants, v)
	}
	return nil
}

// completeSimpleRecord fills the single-record pricing from the request.
// The STOCK strategy has already seeded quantity/reorder defaults; for
// NON_STOCK the record exists purely to carry pricing.
func (uc *productUseCase) completeSimpleRecord(p *model.Product, input *dto.CreateProductInput) error {
	var violations []apperrors.FieldViolation
	if input.UnitCost == nil {
		violations = append(violations, apperrors.FieldViolation{Field: "unit_cost", Reason: "unit cost is required for products without variants"})
	} else if *input.UnitCost < 0 {
		violations = append(violations, apperrors.FieldViolation{Field: "unit_cost", Reason: "unit cost must be zero or positive"})
	}
	if input.SellingPrice == nil {
		violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price is required for products without variants"})
	} else if *input.SellingPrice <= 0 {
		violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price must be positive"})
	}
	if input.UnitCost != nil && input.SellingPrice != nil && *input.SellingPrice < *input.UnitCost {
		violations = append(violations, apperrors.FieldViolation{Field: "selling_price", Reason: "selling price should not be less than unit cost"})
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		violations = append(violations, apperrors.FieldViolation{Field: "quantity", Reason: "quantity cannot be negative"})
	}
	if len(violations) > 0 {
		return apperrors.InvalidFields("invalid product request", violations)
	}

	now := time.Now()
	if p.Stock == nil {
		p.Stock = &model.Stock{}
	}
	p.Stock.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	p.Stock.ProductID = p.ID
	p.Stock.UnitCost = *input.UnitCost
	p.Stock.SellingPrice = *input.SellingPrice
	if input.Quantity != nil {
		p.Stock.Quantity = *input.Quantity
	}
	return nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := listCacheKey(filters)
	if uc.cache != nil && cacheKey != "" {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("elastic search failed, falling back to database", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		payload := struct {
			Products []model.Product
			Count    int
		}{products, count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]interface{}{
		{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "description"},
			},
		},
	}
	if filters.Status != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"status": filters.Status},
		})
	}
	if filters.CategoryID != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"category_id": filters.CategoryID},
		})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"from": (filters.Page - 1) * filters.PageSize,
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, productsIndex, q)
	if err != nil {
		return nil, 0, err
	}

	var products []model.Product
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput, images []*multipart.FileHeader) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", input.ID)
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Status != nil {
		status, err := model.ParseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		p.Status = status
	}
	if input.CategoryID != nil {
		cat, err := uc.categories.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, apperrors.NotFound("category not found with id: %s", *input.CategoryID)
		}
		p.CategoryID = cat.ID
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if valid := validFiles(images); len(valid) > 0 {
		if err := uc.appendImages(ctx, p, valid); err != nil {
			return nil, err
		}
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) UpdateProductStatus(ctx context.Context, id string, status model.Status) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", id)
	}

	p.Status = status
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperrors.NotFound("product not found with id: %s", id)
	}

	// Products are leaf aggregates: deletion is unconditional and cascades
	// variants, the stock record and image references.
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.images.DeleteMany(ctx, p.ImageURLs)

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productsIndex, id); err != nil {
				uc.logger.Error("failed to delete product from index", zap.Error(err))
			}
		}()
	}

	uc.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (uc *productUseCase) UploadImages(ctx context.Context, id string, images []*multipart.FileHeader) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", id)
	}

	valid := validFiles(images)
	if len(valid) == 0 {
		return nil, apperrors.InvalidRequest("at least one file is required for upload")
	}

	if err := uc.appendImages(ctx, p, valid); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *productUseCase) appendImages(ctx context.Context, p *model.Product, files []*multipart.FileHeader) error {
	if len(p.ImageURLs)+len(files) > maxImages {
		return apperrors.InvalidRequest(
			"cannot add %d images, product already has %d images, maximum allowed is %d images",
			len(files), len(p.ImageURLs), maxImages)
	}

	urls, err := uc.images.UploadMany(ctx, files, productFolder+p.ID+"/", "product")
	if err != nil {
		return err
	}
	if err := uc.repo.AddImages(ctx, p.ID, urls); err != nil {
		return err
	}
	p.ImageURLs = append(p.ImageURLs, urls...)
	return nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"description": { "type": "text" },
				"product_type": { "type": "keyword" },
				"status": { "type": "keyword" },
				"category_id": { "type": "keyword" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productsIndex, mapping)

	if err := uc.es.Index(ctx, productsIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func listCacheKey(filters *dto.ProductFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data))
}

func tupleKey(color *string, size string) string {
	c := "NONE"
	if color != nil && *color != "" {
		c = *color
	}
	return c + "-" + size
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func validFiles(files []*multipart.FileHeader) []*multipart.FileHeader {
	var valid []*multipart.FileHeader
	for _, f := range files {
		if f != nil && f.Size > 0 {
			valid = append(valid, f)
		}
	}
	return valid
}
