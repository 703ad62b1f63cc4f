package model

// Stock is the single-record inventory representation used by products
// without variants. Strategy defaults seed reorder level 10 / quantity 50.
type Stock struct {
	BaseModel
	ProductID       string  `db:"product_id" json:"product_id"`
	UnitCost        float64 `db:"unit_cost" json:"unit_cost"`
	SellingPrice    float64 `db:"selling_price" json:"selling_price"`
	Quantity        int     `db:"quantity" json:"quantity"`
	ReorderLevel    int     `db:"reorder_level" json:"reorder_level"`
	ReorderQuantity int     `db:"reorder_quantity" json:"reorder_quantity"`
}
