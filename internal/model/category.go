package model

import (
	"encoding/json"
	"strings"
)

// CategoryType is a sizing template, e.g. "Clothing Sizes" with options
// [S, M, L, XL]. Size options are stored as a comma-joined column.
type CategoryType struct {
	BaseModel
	Name        string `db:"name" json:"name"`
	SizeOptions string `db:"size_options" json:"-"`
	Status      Status `db:"status" json:"status"`
}

func (ct *CategoryType) SizeOptionList() []string {
	if ct.SizeOptions == "" {
		return nil
	}
	return strings.Split(ct.SizeOptions, ",")
}

func (ct *CategoryType) SetSizeOptions(options []string) {
	ct.SizeOptions = strings.Join(options, ",")
}

// MarshalJSON exposes the size options as a list even though they are
// stored comma-joined.
func (ct CategoryType) MarshalJSON() ([]byte, error) {
	type alias CategoryType
	return json.Marshal(struct {
		alias
		SizeOptions []string `json:"size_options"`
	}{alias(ct), ct.SizeOptionList()})
}

// HasSize reports whether size is one of the template's options.
// Matching is case-insensitive, sizes are stored the way they were entered.
func (ct *CategoryType) HasSize(size string) bool {
	for _, opt := range ct.SizeOptionList() {
		if strings.EqualFold(opt, size) {
			return true
		}
	}
	return false
}

type Category struct {
	BaseModel
	Name           string  `db:"name" json:"name"`
	Description    *string `db:"description" json:"description"`
	ImageURL       *string `db:"image_url" json:"image_url"`
	CategoryTypeID *string `db:"category_type_id" json:"category_type_id"`
	Status         Status  `db:"status" json:"status"`

	CategoryType *CategoryType `db:"-" json:"category_type,omitempty"` // joined data
}
