package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecove/catalog-service/internal/apperrors"
)

func TestTotalStock_Derived(t *testing.T) {
	p := &Product{
		Variants: []Variant{
			{Size: "S", Quantity: 1},
			{Size: "M", Quantity: 2},
			{Size: "L", Quantity: 3},
		},
	}
	assert.Equal(t, 6, p.TotalStock())

	// Variants shadow the simple record entirely.
	p.Stock = &Stock{Quantity: 100}
	assert.Equal(t, 6, p.TotalStock())

	p.Variants = nil
	assert.Equal(t, 100, p.TotalStock())

	p.Stock = nil
	assert.Equal(t, 0, p.TotalStock())
}

func TestVariantDisplayName(t *testing.T) {
	red := "Red"
	v := &Variant{Color: &red, Size: "M"}
	assert.Equal(t, "Red - M", v.DisplayName())

	v.Color = nil
	assert.Equal(t, "M", v.DisplayName())
}

func TestCategoryTypeSizeOptions(t *testing.T) {
	ct := &CategoryType{}
	assert.Empty(t, ct.SizeOptionList())

	ct.SetSizeOptions([]string{"S", "M", "L", "XL"})
	assert.Equal(t, "S,M,L,XL", ct.SizeOptions)
	assert.Equal(t, []string{"S", "M", "L", "XL"}, ct.SizeOptionList())
}

func TestCategoryTypeHasSize(t *testing.T) {
	ct := &CategoryType{}
	ct.SetSizeOptions([]string{"S", "M", "L"})

	assert.True(t, ct.HasSize("M"))
	assert.True(t, ct.HasSize("m"))
	assert.False(t, ct.HasSize("XXL"))
	assert.False(t, ct.HasSize(""))
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"ACTIVE":   StatusActive,
		"inactive": StatusInactive,
		"Draft":    StatusDraft,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseStatus("ARCHIVED")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))
}

func TestParseProductType(t *testing.T) {
	got, err := ParseProductType("stock")
	require.NoError(t, err)
	assert.Equal(t, ProductTypeStock, got)

	got, err = ParseProductType("NON_STOCK")
	require.NoError(t, err)
	assert.Equal(t, ProductTypeNonStock, got)

	_, err = ParseProductType("DIGITAL")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))
}
