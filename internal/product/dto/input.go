package dto

// VariantInput is one variant spec inside a product create/append request.
// Pointer fields distinguish absent from zero so strategies can report
// "required" separately from range violations.
type VariantInput struct {
	Color        *string  `json:"color"`
	Size         string   `json:"size"`
	UnitCost     *float64 `json:"unit_cost"`
	SellingPrice *float64 `json:"selling_price"`
	Quantity     *int     `json:"quantity"`
	SKU          string   `json:"sku"`
}

type CreateProductInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ProductType string         `json:"product_type"`
	CategoryID  string         `json:"category_id"`
	Status      string         `json:"status"`
	Variants    []VariantInput `json:"variants"`

	// Simple-record pricing, used only when no variants are supplied.
	UnitCost     *float64 `json:"unit_cost"`
	SellingPrice *float64 `json:"selling_price"`
	Quantity     *int     `json:"quantity"`
}

func (in *CreateProductInput) HasVariants() bool {
	return len(in.Variants) > 0
}

// UpdateProductInput mutates name/description/status/category only.
// Variant mutation goes exclusively through the variant ledger.
type UpdateProductInput struct {
	ID          string
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	CategoryID  *string `json:"category_id"`
}

type ProductFilters struct {
	CategoryID  string `form:"category_id" json:"category_id"`
	Status      string `form:"status" json:"status"`
	SearchQuery string `form:"search" json:"search"`
	Page        int    `form:"page" json:"page"`
	PageSize    int    `form:"page_size" json:"page_size"`
}
