package model

import (
	"strings"

	"github.com/tradecove/catalog-service/internal/apperrors"
)

// Status is shared by products, categories and category types.
// Soft-deleted categories are flipped to StatusInactive, never removed.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusDraft    Status = "DRAFT"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	case StatusDraft:
		return StatusDraft, nil
	}
	return "", apperrors.InvalidRequest("invalid status %q, allowed values: ACTIVE, INACTIVE, DRAFT", s)
}

// ProductType decides the pricing strategy. STOCK products track inventory,
// NON_STOCK products (services, made-to-order goods) are always available.
type ProductType string

const (
	ProductTypeStock    ProductType = "STOCK"
	ProductTypeNonStock ProductType = "NON_STOCK"
)

func ParseProductType(s string) (ProductType, error) {
	switch ProductType(strings.ToUpper(strings.TrimSpace(s))) {
	case ProductTypeStock:
		return ProductTypeStock, nil
	case ProductTypeNonStock:
		return ProductTypeNonStock, nil
	}
	return "", apperrors.InvalidRequest("invalid product type %q, allowed values: STOCK, NON_STOCK", s)
}
