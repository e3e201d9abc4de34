package services

import (
	"context"
	"errors"
	"image"
	"math"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"clazzyapi/models"
)

// Classification is the full result of analyzing one garment image.
type Classification struct {
	Category   models.Category
	Confidence float64
	Embedding  []float64
}

// GarmentClassifier predicts the clothing category of an image by combining
// embedding statistics with spatial brightness heuristics. The embedding
// comes from the injected extractor and is returned alongside the category
// so callers can reuse it for style similarity.
type GarmentClassifier struct {
	Extractor        FeatureExtractor
	InferenceTimeout time.Duration
}

func NewGarmentClassifier(extractor FeatureExtractor) *GarmentClassifier {
	return &GarmentClassifier{
		Extractor:        extractor,
		InferenceTimeout: 30 * time.Second,
	}
}

// hintKeywords bias classification when the upload filename names the
// garment outright. Ordered so the first match wins deterministically.
var hintKeywords = []struct {
	keyword  string
	category models.Category
}{
	{"tshirt", models.CategoryTop},
	{"shirt", models.CategoryTop},
	{"blouse", models.CategoryTop},
	{"sweater", models.CategoryTop},
	{"hoodie", models.CategoryTop},
	{"cardigan", models.CategoryTop},
	{"jean", models.CategoryBottom},
	{"pant", models.CategoryBottom},
	{"trouser", models.CategoryBottom},
	{"skirt", models.CategoryBottom},
	{"short", models.CategoryBottom},
	{"dress", models.CategoryDress},
	{"gown", models.CategoryDress},
	{"sneaker", models.CategoryShoes},
	{"shoe", models.CategoryShoes},
	{"boot", models.CategoryShoes},
	{"sandal", models.CategoryShoes},
	{"heel", models.CategoryShoes},
	{"blazer", models.CategoryBlazer},
	{"jacket", models.CategoryBlazer},
	{"suit", models.CategoryBlazer},
	{"coat", models.CategoryBlazer},
}

const hintBias = 0.25

// Classify predicts the category of a garment image. filenameHint may be
// empty. Confidence lands in [0.60, 0.95]; anything the heuristics cannot
// place confidently becomes CategoryOther at the floor.
func (gc *GarmentClassifier) Classify(ctx context.Context, img image.Image, filenameHint string) (*Classification, error) {
	if img == nil {
		return nil, ErrUnreadableImage
	}
	if gc.Extractor == nil {
		return nil, ErrModelUnavailable
	}

	if gc.InferenceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gc.InferenceTimeout)
		defer cancel()
	}

	embedding, err := gc.Extractor.Embed(ctx, img)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrComputeTimeout
		}
		return nil, err
	}

	stats := embeddingStats(embedding)
	spatial := spatialStats(img)
	scores := categoryScores(stats, spatial)

	if hinted, ok := hintCategory(filenameHint); ok {
		scores[hinted] += hintBias
	}

	best := models.CategoryTop
	bestScore := math.Inf(-1)
	for _, cat := range models.AllCategories() {
		if scores[cat] > bestScore {
			bestScore = scores[cat]
			best = cat
		}
	}

	confidence := math.Min(bestScore+0.4, 0.95)
	if confidence < 0.60 {
		confidence = 0.60
		best = models.CategoryOther
	}

	return &Classification{
		Category:   best,
		Confidence: confidence,
		Embedding:  embedding,
	}, nil
}

func hintCategory(filenameHint string) (models.Category, bool) {
	hint := strings.ToLower(filenameHint)
	if hint == "" {
		return "", false
	}
	for _, hk := range hintKeywords {
		if strings.Contains(hint, hk.keyword) {
			return hk.category, true
		}
	}
	return "", false
}

type featureStats struct {
	mean float64
	std  float64
	max  float64
}

func embeddingStats(embedding []float64) featureStats {
	if len(embedding) == 0 {
		return featureStats{}
	}
	var sum float64
	max := math.Inf(-1)
	for _, v := range embedding {
		sum += v
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(embedding))
	var variance float64
	for _, v := range embedding {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(embedding))
	return featureStats{mean: mean, std: math.Sqrt(variance), max: max}
}

type spatialProfile struct {
	verticalRatio      float64
	horizontalSymmetry float64
}

// spatialStats compares perceptual brightness between image regions: top
// half vs bottom half for vertical weight, left third vs right third for
// symmetry.
func spatialStats(img image.Image) spatialProfile {
	small := imaging.Fit(img, 224, 224, imaging.Lanczos)
	bounds := small.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	luminance := func(x0, y0, x1, y1 int) float64 {
		var sum, n float64
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				r16, g16, b16, _ := small.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				sum += 0.299*float64(r16>>8) + 0.587*float64(g16>>8) + 0.114*float64(b16>>8)
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return sum / n
	}

	topLum := luminance(0, 0, w, h/2)
	bottomLum := luminance(0, h/2, w, h)
	leftLum := luminance(0, 0, w/3, h)
	rightLum := luminance(2*w/3, 0, w, h)

	return spatialProfile{
		verticalRatio:      topLum / (bottomLum + 0.001),
		horizontalSymmetry: 1.0 - math.Abs(leftLum-rightLum)/255.0,
	}
}

func categoryScores(stats featureStats, spatial spatialProfile) map[models.Category]float64 {
	scores := map[models.Category]float64{
		models.CategoryTop:    0,
		models.CategoryBottom: 0,
		models.CategoryDress:  0,
		models.CategoryShoes:  0,
		models.CategoryBlazer: 0,
		models.CategoryOther:  0,
	}

	if spatial.verticalRatio > 1.2 {
		scores[models.CategoryTop] += 0.3
	}
	if stats.mean > 0.2 && stats.mean < 0.5 {
		scores[models.CategoryTop] += 0.25
	}
	if stats.std > 0.25 {
		scores[models.CategoryTop] += 0.2
	}

	if spatial.verticalRatio < 0.8 {
		scores[models.CategoryBottom] += 0.35
	}
	if stats.mean < 0.35 {
		scores[models.CategoryBottom] += 0.25
	}
	if stats.std > 0.15 && stats.std < 0.3 {
		scores[models.CategoryBottom] += 0.2
	}

	if spatial.verticalRatio > 0.9 && spatial.verticalRatio < 1.1 {
		scores[models.CategoryDress] += 0.3
	}
	if spatial.horizontalSymmetry > 0.7 {
		scores[models.CategoryDress] += 0.25
	}
	if stats.mean > 0.25 {
		scores[models.CategoryDress] += 0.2
	}

	if spatial.verticalRatio < 0.6 {
		scores[models.CategoryShoes] += 0.3
	}
	if stats.mean > 0.5 && stats.std > 0.3 {
		scores[models.CategoryShoes] += 0.3
	}
	if spatial.horizontalSymmetry > 0.6 {
		scores[models.CategoryShoes] += 0.15
	}

	if spatial.verticalRatio > 1.0 {
		scores[models.CategoryBlazer] += 0.25
	}
	if stats.max > 2.5 {
		scores[models.CategoryBlazer] += 0.25
	}
	if stats.std > 0.3 {
		scores[models.CategoryBlazer] += 0.2
	}

	return scores
}
