package models

type Category string

const (
	CategoryTop    Category = "top"
	CategoryBottom Category = "bottom"
	CategoryDress  Category = "dress"
	CategoryShoes  Category = "shoes"
	CategoryBlazer Category = "blazer"
	CategoryOther  Category = "other"
)

// AllCategories returns the categories in their fixed scoring order.
func AllCategories() []Category {
	return []Category{
		CategoryTop,
		CategoryBottom,
		CategoryDress,
		CategoryShoes,
		CategoryBlazer,
		CategoryOther,
	}
}

// ColorInfo is one extracted dominant color. HSV uses H 0-360, S 0-100, V 0-100.
type ColorInfo struct {
	Hex        string     `json:"hex"`
	RGB        [3]int     `json:"rgb"`
	HSV        [3]float64 `json:"hsv"`
	Percentage float64    `json:"percentage"`
	Name       string     `json:"name"`
}

// WardrobeItem is a classified and color-analyzed garment. Items are produced
// once by the analysis pipeline and never mutated afterwards. Colors are
// ordered descending by percentage, element 0 being the dominant color.
type WardrobeItem struct {
	ID         string      `json:"id"`
	Category   Category    `json:"category"`
	Confidence float64     `json:"confidence"`
	Embedding  []float64   `json:"embedding,omitempty"`
	Colors     []ColorInfo `json:"colors"`
}

const FallbackHex = "#808080"

func (w WardrobeItem) DominantHex() string {
	if len(w.Colors) > 0 {
		return w.Colors[0].Hex
	}
	return FallbackHex
}

// SecondaryHex returns the second most prominent color, when present.
func (w WardrobeItem) SecondaryHex() (string, bool) {
	if len(w.Colors) > 1 {
		return w.Colors[1].Hex, true
	}
	return "", false
}
