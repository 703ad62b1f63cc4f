package dto

type CreateVariantInput struct {
	ProductID    string
	Color        *string  `json:"color"`
	Size         string   `json:"size"`
	UnitCost     *float64 `json:"unit_cost"`
	SellingPrice *float64 `json:"selling_price"`
	Quantity     *int     `json:"quantity"`
	SKU          string   `json:"sku"`
}

// UpdateVariantInput carries any combination of updatable fields. Only
// non-nil fields are applied; supplying none is a validation error.
type UpdateVariantInput struct {
	ID           string
	Quantity     *int     `json:"quantity"`
	UnitCost     *float64 `json:"unit_cost"`
	SellingPrice *float64 `json:"selling_price"`
	IsActive     *bool    `json:"is_active"`
}

func (in *UpdateVariantInput) Empty() bool {
	return in.Quantity == nil && in.UnitCost == nil && in.SellingPrice == nil && in.IsActive == nil
}
