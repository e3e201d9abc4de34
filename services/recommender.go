package services

import (
	"math"
	"sort"

	"clazzyapi/models"
)

// occasionProfiles is the built-in occasion configuration. Patterns never
// repeat a category; the generator guards against duplicates anyway.
var occasionProfiles = map[string]models.OccasionProfile{
	"casual": {
		Name:       "casual",
		Formality:  0.3,
		ColorStyle: models.ColorStyleRelaxed,
		Patterns: [][]models.Category{
			{models.CategoryTop, models.CategoryBottom},
			{models.CategoryDress},
			{models.CategoryTop, models.CategoryBottom, models.CategoryShoes},
		},
	},
	"formal": {
		Name:       "formal",
		Formality:  0.9,
		ColorStyle: models.ColorStyleConservative,
		Patterns: [][]models.Category{
			{models.CategoryBlazer, models.CategoryTop, models.CategoryBottom},
			{models.CategoryDress},
			{models.CategoryTop, models.CategoryBottom},
			{models.CategoryBlazer, models.CategoryDress},
		},
	},
	"business": {
		Name:       "business",
		Formality:  0.8,
		ColorStyle: models.ColorStyleProfessional,
		Patterns: [][]models.Category{
			{models.CategoryBlazer, models.CategoryTop, models.CategoryBottom},
			{models.CategoryTop, models.CategoryBottom},
			{models.CategoryBlazer, models.CategoryDress},
			{models.CategoryDress},
		},
	},
	"party": {
		Name:       "party",
		Formality:  0.5,
		ColorStyle: models.ColorStyleBold,
		Patterns: [][]models.Category{
			{models.CategoryDress},
			{models.CategoryTop, models.CategoryBottom},
			{models.CategoryBlazer, models.CategoryTop, models.CategoryBottom},
			{models.CategoryTop, models.CategoryBottom, models.CategoryShoes},
		},
	},
	"date": {
		Name:       "date",
		Formality:  0.6,
		ColorStyle: models.ColorStyleHarmonious,
		Patterns: [][]models.Category{
			{models.CategoryDress},
			{models.CategoryTop, models.CategoryBottom},
			{models.CategoryBlazer, models.CategoryTop, models.CategoryBottom},
		},
	},
	"sports": {
		Name:       "sports",
		Formality:  0.2,
		ColorStyle: models.ColorStyleVibrant,
		Patterns: [][]models.Category{
			{models.CategoryTop, models.CategoryBottom},
			{models.CategoryTop, models.CategoryBottom, models.CategoryShoes},
		},
	},
}

// LookupOccasion resolves a configured occasion profile by name.
func LookupOccasion(name string) (models.OccasionProfile, error) {
	profile, ok := occasionProfiles[name]
	if !ok {
		return models.OccasionProfile{}, ErrUnknownOccasion
	}
	return profile, nil
}

// OccasionNames returns the configured occasion names in stable order.
func OccasionNames() []string {
	names := make([]string, 0, len(occasionProfiles))
	for name := range occasionProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecommendOptions tunes one recommendation call. Zero values fall back to
// the defaults below.
type RecommendOptions struct {
	MaxOutfits        int
	MinScore          *float64
	MaxPerCategory    int
	MaxItemsPerOutfit int
}

const (
	DefaultMaxOutfits     = 5
	DefaultMinScore       = 0.5
	DefaultMaxPerCategory = 5
)

// categoryFormality drives the occasion-fit factor: an outfit's implied
// formality is the mean weight of its categories.
var categoryFormality = map[models.Category]float64{
	models.CategoryDress:  0.7,
	models.CategoryBlazer: 0.9,
	models.CategoryTop:    0.5,
	models.CategoryBottom: 0.5,
	models.CategoryShoes:  0.6,
	models.CategoryOther:  0.4,
}

// OutfitRecommender generates and ranks outfit combinations. It holds no
// mutable state; Recommend is a pure function of its inputs and safe to call
// concurrently.
type OutfitRecommender struct{}

func NewOutfitRecommender() *OutfitRecommender {
	return &OutfitRecommender{}
}

// Recommend enumerates the occasion's patterns over the wardrobe, scores
// every valid combination and returns the top outfits sorted by score.
// Items classified as `other` never participate in matching; their IDs come
// back as the second return value for manual tagging.
func (r *OutfitRecommender) Recommend(wardrobe []models.WardrobeItem, occasion models.OccasionProfile, opts RecommendOptions) ([]models.Outfit, []string) {
	maxOutfits := opts.MaxOutfits
	if maxOutfits <= 0 {
		maxOutfits = DefaultMaxOutfits
	}
	minScore := DefaultMinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}
	maxPerCategory := opts.MaxPerCategory
	if maxPerCategory <= 0 {
		maxPerCategory = DefaultMaxPerCategory
	}

	byCategory := make(map[models.Category][]models.WardrobeItem)
	var skipped []string
	for _, item := range wardrobe {
		if item.Category == models.CategoryOther || item.Category == "" {
			skipped = append(skipped, item.ID)
			continue
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	// Bound the search: keep only the top candidates per category by
	// classification confidence, preserving input order on ties.
	for cat, items := range byCategory {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Confidence > items[j].Confidence
		})
		if len(items) > maxPerCategory {
			items = items[:maxPerCategory]
		}
		byCategory[cat] = items
	}

	var outfits []models.Outfit
	for _, pattern := range occasion.Patterns {
		if opts.MaxItemsPerOutfit > 0 && len(pattern) > opts.MaxItemsPerOutfit {
			continue
		}
		if !patternSatisfiable(pattern, byCategory) {
			continue
		}
		outfits = append(outfits, r.expandPattern(pattern, byCategory, occasion, minScore)...)
	}

	sort.SliceStable(outfits, func(i, j int) bool {
		if outfits[i].Score != outfits[j].Score {
			return outfits[i].Score > outfits[j].Score
		}
		if len(outfits[i].Items) != len(outfits[j].Items) {
			return len(outfits[i].Items) > len(outfits[j].Items)
		}
		return outfits[i].Items[0].ID < outfits[j].Items[0].ID
	})

	if len(outfits) > maxOutfits {
		outfits = outfits[:maxOutfits]
	}
	return outfits, skipped
}

func patternSatisfiable(pattern []models.Category, byCategory map[models.Category][]models.WardrobeItem) bool {
	for _, cat := range pattern {
		if len(byCategory[cat]) == 0 {
			return false
		}
	}
	return true
}

// expandPattern walks the pattern's category slots depth first. Accumulators
// are copied per branch so sibling branches never alias each other's state.
func (r *OutfitRecommender) expandPattern(pattern []models.Category, byCategory map[models.Category][]models.WardrobeItem, occasion models.OccasionProfile, minScore float64) []models.Outfit {
	var outfits []models.Outfit

	var walk func(slot int, chosen []models.WardrobeItem, used map[models.Category]bool)
	walk = func(slot int, chosen []models.WardrobeItem, used map[models.Category]bool) {
		if slot == len(pattern) {
			score := r.scoreOutfit(chosen, occasion)
			if score < minScore {
				return
			}
			scheme, confidence := dominantScheme(chosen)
			items := make([]models.WardrobeItem, len(chosen))
			copy(items, chosen)
			outfits = append(outfits, models.Outfit{
				Items:            items,
				Score:            score,
				Scheme:           scheme,
				SchemeConfidence: confidence,
			})
			return
		}

		cat := pattern[slot]
		if used[cat] {
			return
		}
		for _, item := range byCategory[cat] {
			nextChosen := make([]models.WardrobeItem, len(chosen), len(chosen)+1)
			copy(nextChosen, chosen)
			nextChosen = append(nextChosen, item)

			nextUsed := make(map[models.Category]bool, len(used)+1)
			for k, v := range used {
				nextUsed[k] = v
			}
			nextUsed[cat] = true

			walk(slot+1, nextChosen, nextUsed)
		}
	}

	walk(0, nil, map[models.Category]bool{})
	return outfits
}

// scoreOutfit is the composite: 40% color harmony (with the occasion's
// color-style multipliers), 30% style similarity, 20% occasion fit, 10%
// variety.
func (r *OutfitRecommender) scoreOutfit(items []models.WardrobeItem, occasion models.OccasionProfile) float64 {
	if len(items) == 0 {
		return 0
	}
	harmony := r.colorHarmonyScore(items, occasion.ColorStyle)
	style := r.styleSimilarityScore(items)
	fit := r.occasionFitScore(items, occasion.Formality)
	variety := clamp01(float64(len(items)) / 3.0)

	return clamp01(harmony*0.40 + style*0.30 + fit*0.20 + variety*0.10)
}

// colorHarmonyScore averages pairwise harmony over each item's dominant and
// secondary colors, then biases by the occasion's color style.
func (r *OutfitRecommender) colorHarmonyScore(items []models.WardrobeItem, style models.ColorStyle) float64 {
	if len(items) < 2 {
		return 0.88
	}

	var colors []string
	for _, item := range items {
		colors = append(colors, item.DominantHex())
		if secondary, ok := item.SecondaryHex(); ok {
			colors = append(colors, secondary)
		}
	}

	var scores []float64
	schemes := make(map[models.ColorScheme]bool)
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			score, scheme, err := Harmony(colors[i], colors[j])
			if err != nil {
				continue
			}
			scores = append(scores, score)
			schemes[scheme] = true
		}
	}
	if len(scores) == 0 {
		return 0.88
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := sum / float64(len(scores))

	boost := func(factor float64) {
		avg = math.Min(avg*factor, 1.0)
	}
	switch style {
	case models.ColorStyleConservative:
		if schemes[models.SchemeAnalogous] || schemes[models.SchemeMonochromatic] {
			boost(1.08)
		}
		if schemes[models.SchemeComplementary] && avg > 0.92 {
			avg *= 0.96
		}
	case models.ColorStyleBold:
		if schemes[models.SchemeComplementary] {
			boost(1.10)
		}
		if schemes[models.SchemeTriadic] {
			boost(1.08)
		}
	case models.ColorStyleProfessional:
		if schemes[models.SchemeNeutral] {
			boost(1.12)
		}
		if schemes[models.SchemeMonochromatic] {
			boost(1.06)
		}
	case models.ColorStyleHarmonious:
		if schemes[models.SchemeAnalogous] {
			boost(1.10)
		}
		if schemes[models.SchemeMonochromatic] {
			boost(1.08)
		}
	case models.ColorStyleVibrant:
		if schemes[models.SchemeTriadic] || schemes[models.SchemeTetradic] {
			boost(1.08)
		}
	}
	if len(schemes) > 1 {
		boost(1.03)
	}
	return avg
}

// styleSimilarityScore rescales mean pairwise cosine similarity of the
// items' embeddings from [-1,1] into [0.6,1.0] so even dissimilar pieces
// keep a workable floor.
func (r *OutfitRecommender) styleSimilarityScore(items []models.WardrobeItem) float64 {
	if len(items) < 2 {
		return 0.80
	}

	var embeddings [][]float64
	for _, item := range items {
		if len(item.Embedding) > 0 {
			embeddings = append(embeddings, item.Embedding)
		}
	}
	if len(embeddings) < 2 {
		return 0.75
	}

	var sum float64
	var pairs int
	for i := 0; i < len(embeddings); i++ {
		for j := i + 1; j < len(embeddings); j++ {
			sum += (CosineSimilarity(embeddings[i], embeddings[j]) + 1) / 2
			pairs++
		}
	}
	return 0.6 + 0.4*(sum/float64(pairs))
}

func (r *OutfitRecommender) occasionFitScore(items []models.WardrobeItem, formality float64) float64 {
	var sum float64
	for _, item := range items {
		weight, ok := categoryFormality[item.Category]
		if !ok {
			weight = 0.5
		}
		sum += weight
	}
	implied := sum / float64(len(items))
	return clamp01(1 - math.Abs(implied-formality))
}

// dominantScheme annotates an outfit with its most common pairwise scheme
// over the items' dominant colors and the fraction of pairs that agree.
func dominantScheme(items []models.WardrobeItem) (models.ColorScheme, float64) {
	if len(items) < 2 {
		return models.SchemeMonochromatic, 0.90
	}

	counts := make(map[models.ColorScheme]int)
	total := 0
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			scheme, err := IdentifyScheme(items[i].DominantHex(), items[j].DominantHex())
			if err != nil {
				continue
			}
			counts[scheme]++
			total++
		}
	}
	if total == 0 {
		return models.SchemeCustom, 0.50
	}

	best := models.SchemeCustom
	bestCount := -1
	for scheme, count := range counts {
		if count > bestCount || (count == bestCount && scheme < best) {
			best = scheme
			bestCount = count
		}
	}
	return best, float64(bestCount) / float64(total)
}
