package dto

type UpdateStockInput struct {
	ProductID       string   `json:"-"`
	UnitCost        *float64 `json:"unit_cost"`
	SellingPrice    *float64 `json:"selling_price"`
	Quantity        *int     `json:"quantity"`
	ReorderLevel    *int     `json:"reorder_level"`
	ReorderQuantity *int     `json:"reorder_quantity"`
}

func (i *UpdateStockInput) Empty() bool {
	return i.UnitCost == nil && i.SellingPrice == nil && i.Quantity == nil &&
		i.ReorderLevel == nil && i.ReorderQuantity == nil
}

type LowStockFilters struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}
