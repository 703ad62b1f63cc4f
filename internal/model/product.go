package model

import "fmt"

type Product struct {
	BaseModel
	Name        string      `db:"name" json:"name"`
	Description *string     `db:"description" json:"description"`
	ProductType ProductType `db:"product_type" json:"product_type"`
	Status      Status      `db:"status" json:"status"`
	CategoryID  string      `db:"category_id" json:"category_id"`

	// Exactly one inventory representation is populated at a time:
	// a single simple stock record, or a non-empty variant list.
	Stock    *Stock    `db:"-" json:"stock,omitempty"`
	Variants []Variant `db:"-" json:"variants,omitempty"`

	ImageURLs []string  `db:"-" json:"image_urls"`
	Category  *Category `db:"-" json:"category,omitempty"` // joined data
}

func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// TotalStock is always derived, never stored: the sum of variant quantities
// when variants exist, else the simple record's quantity, else 0.
func (p *Product) TotalStock() int {
	if p.HasVariants() {
		total := 0
		for _, v := range p.Variants {
			total += v.Quantity
		}
		return total
	}
	if p.Stock != nil {
		return p.Stock.Quantity
	}
	return 0
}

// Variant is one purchasable SKU of a product, distinguished by color/size.
// (product_id, color, size) is unique per product.
type Variant struct {
	BaseModel
	ProductID    string  `db:"product_id" json:"product_id"`
	Color        *string `db:"color" json:"color"`
	Size         string  `db:"size" json:"size"`
	UnitCost     float64 `db:"unit_cost" json:"unit_cost"`
	SellingPrice float64 `db:"selling_price" json:"selling_price"`
	Quantity     int     `db:"quantity" json:"quantity"`
	SKU          *string `db:"sku" json:"sku"`
	IsActive     bool    `db:"is_active" json:"is_active"`
}

func (v *Variant) DisplayName() string {
	if v.Color != nil && *v.Color != "" {
		return fmt.Sprintf("%s - %s", *v.Color, v.Size)
	}
	return v.Size
}
