package variant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSKU_Shape(t *testing.T) {
	red := "Red"
	sku := GenerateSKU("Organic Tomatoes", &red, "1kg")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "ORGA", parts[0])
	assert.Equal(t, "RED", parts[1])
	assert.Equal(t, "1KG", parts[2])
	assert.NotEmpty(t, parts[3])
}

func TestGenerateSKU_NoColor(t *testing.T) {
	sku := GenerateSKU("Tee", nil, "M")
	parts := strings.Split(sku, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "TEE", parts[0])
	assert.Equal(t, "NONE", parts[1])
	assert.Equal(t, "M", parts[2])
}

func TestGenerateSKU_BlankColorFallsBack(t *testing.T) {
	blank := "   "
	sku := GenerateSKU("Tee", &blank, "M")
	assert.Equal(t, "NONE", strings.Split(sku, "-")[1])
}

func TestGenerateSKU_MultiByteName(t *testing.T) {
	sku := GenerateSKU("日本製品カタログ", nil, "M")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "日本製品", parts[0])
	assert.NotContains(t, sku, "�")
}

func TestGenerateSKU_MultiByteColor(t *testing.T) {
	color := "赤色です"
	sku := GenerateSKU("Tee", &color, "M")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "赤色で", parts[1])
	assert.NotContains(t, sku, "�")
}

func TestGenerateSKU_StripsNonAlnum(t *testing.T) {
	blue := "Sky-Blue"
	sku := GenerateSKU("T-Shirt 2024", &blue, "xl")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "TSHI", parts[0])
	assert.Equal(t, "SKY", parts[1])
	assert.Equal(t, "XL", parts[2])
}
