package services

import (
	"fmt"
	"testing"

	"clazzyapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wardrobeItem(id string, category models.Category, hex string, embedding []float64) models.WardrobeItem {
	r, g, b, _ := HexToRGB(hex)
	h, s, v := RGBToHSV(r, g, b)
	return models.WardrobeItem{
		ID:         id,
		Category:   category,
		Confidence: 0.9,
		Embedding:  embedding,
		Colors: []models.ColorInfo{{
			Hex:        hex,
			RGB:        [3]int{r, g, b},
			HSV:        [3]float64{h, s, v},
			Percentage: 100,
			Name:       ColorName(r, g, b),
		}},
	}
}

func TestLookupOccasion(t *testing.T) {
	profile, err := LookupOccasion("casual")
	require.NoError(t, err)
	assert.Equal(t, "casual", profile.Name)
	assert.InDelta(t, 0.3, profile.Formality, 0.001)

	_, err = LookupOccasion("wedding")
	assert.ErrorIs(t, err, ErrUnknownOccasion)
}

func TestOccasionNames(t *testing.T) {
	names := OccasionNames()
	assert.Equal(t, []string{"business", "casual", "date", "formal", "party", "sports"}, names)
}

func TestRecommendComplementaryPair(t *testing.T) {
	// Blue top and orange bottom: complementary colors, identical style
	// embeddings, a strong casual outfit.
	embedding := []float64{0.1, 0.2, 0.3}
	wardrobe := []models.WardrobeItem{
		wardrobeItem("item-blue-top", models.CategoryTop, "#3B82F6", embedding),
		wardrobeItem("item-orange-bottom", models.CategoryBottom, "#F97316", embedding),
	}
	occasion, err := LookupOccasion("casual")
	require.NoError(t, err)

	outfits, skipped := NewOutfitRecommender().Recommend(wardrobe, occasion, RecommendOptions{})
	require.Len(t, outfits, 1)
	assert.Empty(t, skipped)

	outfit := outfits[0]
	assert.Len(t, outfit.Items, 2)
	assert.Equal(t, models.SchemeComplementary, outfit.Scheme)
	assert.InDelta(t, 1.0, outfit.SchemeConfidence, 0.001)
	assert.GreaterOrEqual(t, outfit.Score, 0.85)
}

func TestRecommendUnsatisfiablePatterns(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		wardrobeItem("top-1", models.CategoryTop, "#3B82F6", nil),
		wardrobeItem("top-2", models.CategoryTop, "#F97316", nil),
	}
	occasion, err := LookupOccasion("casual")
	require.NoError(t, err)

	outfits, skipped := NewOutfitRecommender().Recommend(wardrobe, occasion, RecommendOptions{})
	assert.Empty(t, outfits)
	assert.Empty(t, skipped)
}

func TestRecommendSkipsOtherItems(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		wardrobeItem("top-1", models.CategoryTop, "#3B82F6", nil),
		wardrobeItem("bottom-1", models.CategoryBottom, "#F97316", nil),
		wardrobeItem("mystery", models.CategoryOther, "#00FF00", nil),
	}
	occasion, err := LookupOccasion("casual")
	require.NoError(t, err)

	outfits, skipped := NewOutfitRecommender().Recommend(wardrobe, occasion, RecommendOptions{})
	assert.Equal(t, []string{"mystery"}, skipped)
	for _, outfit := range outfits {
		for _, item := range outfit.Items {
			assert.NotEqual(t, models.CategoryOther, item.Category)
		}
	}
}

func TestRecommendNoDuplicateCategories(t *testing.T) {
	embedding := []float64{0.4, 0.1, 0.7}
	wardrobe := []models.WardrobeItem{
		wardrobeItem("top-1", models.CategoryTop, "#3B82F6", embedding),
		wardrobeItem("top-2", models.CategoryTop, "#1E40AF", embedding),
		wardrobeItem("bottom-1", models.CategoryBottom, "#F97316", embedding),
		wardrobeItem("shoes-1", models.CategoryShoes, "#808080", embedding),
		wardrobeItem("dress-1", models.CategoryDress, "#DC2626", embedding),
	}
	occasion, err := LookupOccasion("party")
	require.NoError(t, err)

	outfits, _ := NewOutfitRecommender().Recommend(wardrobe, occasion, RecommendOptions{MaxOutfits: 20})
	require.NotEmpty(t, outfits)
	for _, outfit := range outfits {
		seen := map[models.Category]bool{}
		for _, item := range outfit.Items {
			assert.False(t, seen[item.Category], "duplicate category %s in outfit", item.Category)
			seen[item.Category] = true
		}
	}
}

func TestRecommendTopFiveSortedAndDistinct(t *testing.T) {
	embedding := []float64{0.5, 0.5, 0.5}
	var wardrobe []models.WardrobeItem
	topHexes := []string{"#DC2626", "#EA580C", "#D97706", "#CA8A04", "#B91C1C"}
	bottomHexes := []string{"#1D4ED8", "#1E40AF", "#3730A3", "#0E7490", "#0F766E"}
	for i := 0; i < 5; i++ {
		wardrobe = append(wardrobe,
			wardrobeItem(fmt.Sprintf("top-%d", i), models.CategoryTop, topHexes[i], embedding),
			wardrobeItem(fmt.Sprintf("bottom-%d", i), models.CategoryBottom, bottomHexes[i], embedding),
		)
	}
	occasion, err := LookupOccasion("casual")
	require.NoError(t, err)

	outfits, _ := NewOutfitRecommender().Recommend(wardrobe, occasion, RecommendOptions{MaxOutfits: 5})
	require.Len(t, outfits, 5)

	seenPairs := map[string]bool{}
	for i, outfit := range outfits {
		if i > 0 {
			assert.LessOrEqual(t, outfit.Score, outfits[i-1].Score)
		}
		pair := outfit.Items[0].ID + "|" + outfit.Items[1].ID
		assert.False(t, seenPairs[pair], "duplicate pair %s", pair)
		seenPairs[pair] = true
	}
}

func TestRecommendIdempotent(t *testing.T) {
	embedding := []float64{0.2, 0.8, 0.4}
	wardrobe := []models.WardrobeItem{
		wardrobeItem("top-1", models.CategoryTop, "#3B82F6", embedding),
		wardrobeItem("top-2", models.CategoryTop, "#16A34A", embedding),
		wardrobeItem("bottom-1", models.CategoryBottom, "#F97316", embedding),
		wardrobeItem("shoes-1", models.CategoryShoes, "#404040", embedding),
	}
	occasion, err := LookupOccasion("casual")
	require.NoError(t, err)

	recommender := NewOutfitRecommender()
	first, firstSkipped := recommender.Recommend(wardrobe, occasion, RecommendOptions{})
	second, secondSkipped := recommender.Recommend(wardrobe, occasion, RecommendOptions{})

	assert.Equal(t, first, second)
	assert.Equal(t, firstSkipped, secondSkipped)
}

func TestRecommendMinScoreFiltersEverything(t *testing.T) {
	wardrobe := []models.WardrobeItem{
		wardrobeItem("top-1", models.CategoryTop, "#3B82F6", nil),
		wardrobeItem("bottom-1", models.CategoryBottom, "#F97316", nil),
	}
	occasion, err := LookupOccasion("casual")
	require.NoError(t, err)

	minScore := 0.99
	outfits, _ := NewOutfitRecommender().Recommend(wardrobe, occasion, RecommendOptions{MinScore: &minScore})
	assert.Empty(t, outfits)
}

func TestRecommendMaxItemsPerOutfitSkipsLargePatterns(t *testing.T) {
	embedding := []float64{0.3, 0.3, 0.3}
	wardrobe := []models.WardrobeItem{
		wardrobeItem("top-1", models.CategoryTop, "#3B82F6", embedding),
		wardrobeItem("bottom-1", models.CategoryBottom, "#F97316", embedding),
		wardrobeItem("shoes-1", models.CategoryShoes, "#808080", embedding),
	}
	occasion, err := LookupOccasion("casual")
	require.NoError(t, err)

	outfits, _ := NewOutfitRecommender().Recommend(wardrobe, occasion, RecommendOptions{MaxItemsPerOutfit: 2, MaxOutfits: 10})
	for _, outfit := range outfits {
		assert.LessOrEqual(t, len(outfit.Items), 2)
	}
}

func TestRecommendCapsPerCategoryByConfidence(t *testing.T) {
	embedding := []float64{0.5, 0.5, 0.5}
	var wardrobe []models.WardrobeItem
	for i := 0; i < 8; i++ {
		item := wardrobeItem(fmt.Sprintf("top-%d", i), models.CategoryTop, "#3B82F6", embedding)
		item.Confidence = 0.5 + float64(i)*0.05
		wardrobe = append(wardrobe, item)
	}
	wardrobe = append(wardrobe, wardrobeItem("bottom-1", models.CategoryBottom, "#F97316", embedding))
	occasion, err := LookupOccasion("casual")
	require.NoError(t, err)

	outfits, _ := NewOutfitRecommender().Recommend(wardrobe, occasion, RecommendOptions{MaxOutfits: 50, MaxPerCategory: 3})
	require.NotEmpty(t, outfits)
	assert.LessOrEqual(t, len(outfits), 3)

	// Only the three most confident tops may appear.
	for _, outfit := range outfits {
		id := outfit.Items[0].ID
		assert.Contains(t, []string{"top-7", "top-6", "top-5"}, id)
	}
}

func TestScoreOutfitSingleItemDefaults(t *testing.T) {
	occasion, err := LookupOccasion("party")
	require.NoError(t, err)

	dress := wardrobeItem("dress-1", models.CategoryDress, "#DC2626", nil)
	score := NewOutfitRecommender().scoreOutfit([]models.WardrobeItem{dress}, occasion)

	// harmony 0.88, style 0.80, fit 1-|0.7-0.5|, variety 1/3.
	expected := 0.40*0.88 + 0.30*0.80 + 0.20*0.8 + 0.10*(1.0/3.0)
	assert.InDelta(t, expected, score, 0.001)
}

func TestDominantSchemeSingleItem(t *testing.T) {
	scheme, confidence := dominantScheme([]models.WardrobeItem{
		wardrobeItem("dress-1", models.CategoryDress, "#DC2626", nil),
	})
	assert.Equal(t, models.SchemeMonochromatic, scheme)
	assert.InDelta(t, 0.90, confidence, 0.001)
}
