package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/getsentry/sentry-go"

	"clazzyapi/models"
)

// WardrobeAnalyzer runs the full per-item pipeline: decode, classify,
// extract colors. Both the classifier and the extractor are shared
// read-only, so one analyzer serves all requests.
type WardrobeAnalyzer struct {
	Classifier *GarmentClassifier
	Colors     *ColorExtractor
}

func NewWardrobeAnalyzer(extractor FeatureExtractor) *WardrobeAnalyzer {
	return &WardrobeAnalyzer{
		Classifier: NewGarmentClassifier(extractor),
		Colors:     NewColorExtractor(),
	}
}

// AnalyzeImage classifies a garment image and extracts its dominant colors
// into a WardrobeItem. Classification errors propagate; a color extraction
// failure degrades to a single average-color approximation instead of
// failing the item.
func (a *WardrobeAnalyzer) AnalyzeImage(ctx context.Context, imageBytes []byte, id, filenameHint string) (models.WardrobeItem, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return models.WardrobeItem{}, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	classification, err := a.Classifier.Classify(ctx, img, filenameHint)
	if err != nil {
		return models.WardrobeItem{}, err
	}

	colors, err := a.Colors.ExtractColors(ctx, img, DefaultColorCount)
	if err != nil {
		fmt.Println("Color extraction degraded to average color:", id, err)
		sentry.CaptureException(err)
		colors = []models.ColorInfo{a.Colors.AverageColor(img)}
	}

	return models.WardrobeItem{
		ID:         id,
		Category:   classification.Category,
		Confidence: classification.Confidence,
		Embedding:  classification.Embedding,
		Colors:     colors,
	}, nil
}

// BatchInput is one image in an AnalyzeBatch call.
type BatchInput struct {
	ID           string
	FilenameHint string
	ImageBytes   []byte
}

// AnalyzeBatch analyzes images concurrently, one goroutine per item writing
// into its own slice slot. A failed item degrades to category `other` with
// zero confidence rather than failing the batch.
func (a *WardrobeAnalyzer) AnalyzeBatch(ctx context.Context, inputs []BatchInput) []models.WardrobeItem {
	items := make([]models.WardrobeItem, len(inputs))

	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input BatchInput) {
			defer wg.Done()
			item, err := a.AnalyzeImage(ctx, input.ImageBytes, input.ID, input.FilenameHint)
			if err != nil {
				fmt.Println("Analysis failed, marking item as other:", input.ID, err)
				sentry.CaptureException(err)
				item = models.WardrobeItem{
					ID:         input.ID,
					Category:   models.CategoryOther,
					Confidence: 0,
					Colors:     []models.ColorInfo{a.Colors.AverageColor(nil)},
				}
			}
			items[i] = item
		}(i, input)
	}
	wg.Wait()

	return items
}
