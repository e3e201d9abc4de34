package models

type AnalyzeClothingOut struct {
	PredictedType Category    `json:"predicted_type"`
	Confidence    float64     `json:"confidence"`
	Colors        []ColorInfo `json:"colors"`
	DominantColor string      `json:"dominant_color"`
}

type RecommendOutfitsIn struct {
	Occasion   string         `json:"occasion" validate:"required,occasion"`
	MaxItems   int            `json:"max_items" validate:"omitempty,min=1,max=6"`
	MaxOutfits int            `json:"max_outfits" validate:"omitempty,min=1,max=50"`
	MinScore   *float64       `json:"min_score" validate:"omitempty,min=0,max=1"`
	Wardrobe   []WardrobeItem `json:"wardrobe" validate:"required"`
}

type RecommendOutfitsOut struct {
	Occasion           string   `json:"occasion"`
	Recommendations    []Outfit `json:"recommendations"`
	SkippedItems       []string `json:"skipped_items"`
	TotalItemsAnalyzed int      `json:"total_items_analyzed"`
}

type HarmonyOut struct {
	Score  float64     `json:"score"`
	Scheme ColorScheme `json:"scheme"`
}

type ColorSchemesOut struct {
	Base    string              `json:"base"`
	Schemes map[string][]string `json:"schemes"`
}
