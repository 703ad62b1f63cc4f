package variant

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// GenerateSKU builds a deterministic SKU from product name, color and size:
// first 4 alphanumeric characters of the name, first 3 letters of the color
// (or "NONE"), the size, and a time-derived suffix to keep collisions low.
// Example: "Organic Tomatoes" / "Red" / "1kg" -> "ORGA-RED-1KG-4821".
func GenerateSKU(productName string, color *string, size string) string {
	// Truncation counts runes, not bytes, so multi-byte names are never
	// cut mid-character.
	name := []rune(keepAlnum(productName))
	if len(name) > 4 {
		name = name[:4]
	}
	namePart := strings.ToUpper(string(name))

	colorPart := "NONE"
	if color != nil && strings.TrimSpace(*color) != "" {
		c := []rune(keepLetters(*color))
		if len(c) > 3 {
			c = c[:3]
		}
		if len(c) > 0 {
			colorPart = strings.ToUpper(string(c))
		}
	}

	return fmt.Sprintf("%s-%s-%s-%d", namePart, colorPart, strings.ToUpper(size), time.Now().UnixMilli()%10000)
}

func keepAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
