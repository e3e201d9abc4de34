package services

import (
	"context"
	"image"
	"math"
	"sort"
	"time"

	"github.com/disintegration/imaging"

	"clazzyapi/models"
)

const DefaultColorCount = 5

// ColorExtractor pulls the dominant colors out of a garment photo with
// k-means clustering over filtered pixels. The zero value is not usable;
// call NewColorExtractor.
type ColorExtractor struct {
	MaxDimension  int
	Inits         int
	MaxIterations int
	Seed          int64
	ClusterBudget time.Duration
}

func NewColorExtractor() *ColorExtractor {
	return &ColorExtractor{
		MaxDimension:  400,
		Inits:         15,
		MaxIterations: 500,
		Seed:          42,
		ClusterBudget: 10 * time.Second,
	}
}

// ExtractColors returns up to count dominant colors sorted by coverage,
// dominant first. Shadow, highlight and near-grayscale pixels are filtered
// out before clustering when enough colorful pixels remain.
func (e *ColorExtractor) ExtractColors(ctx context.Context, img image.Image, count int) ([]models.ColorInfo, error) {
	if img == nil {
		return nil, ErrUnreadableImage
	}
	if count <= 0 {
		count = DefaultColorCount
	}

	pixels := e.collectPixels(img)
	if len(pixels) == 0 {
		return nil, ErrUnreadableImage
	}

	ctx, cancel := context.WithTimeout(ctx, e.ClusterBudget)
	defer cancel()

	k := count
	if k > len(pixels) {
		k = len(pixels)
	}
	result, err := kmeansCluster(ctx, pixels, k, e.Inits, e.MaxIterations, e.Seed)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(result.centroids))
	for _, c := range result.assignments {
		counts[c]++
	}

	colors := make([]models.ColorInfo, 0, len(result.centroids))
	total := float64(len(result.assignments))
	for i, centroid := range result.centroids {
		r := int(centroid[0])
		g := int(centroid[1])
		b := int(centroid[2])
		h, s, v := RGBToHSV(r, g, b)
		colors = append(colors, models.ColorInfo{
			Hex:        RGBToHex(r, g, b),
			RGB:        [3]int{r, g, b},
			HSV:        [3]float64{h, s, v},
			Percentage: float64(counts[i]) / total * 100,
			Name:       ColorName(r, g, b),
		})
	}

	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Percentage > colors[j].Percentage
	})
	return colors, nil
}

// DominantColor returns the hex of the most covered color, falling back to
// mid gray when extraction fails.
func (e *ColorExtractor) DominantColor(ctx context.Context, img image.Image) string {
	colors, err := e.ExtractColors(ctx, img, DefaultColorCount)
	if err != nil || len(colors) == 0 {
		return models.FallbackHex
	}
	return colors[0].Hex
}

// AverageColor is the degraded path used when clustering is not worth it:
// a single flat average over every pixel.
func (e *ColorExtractor) AverageColor(img image.Image) models.ColorInfo {
	if img == nil {
		r, g, b, _ := HexToRGB(models.FallbackHex)
		h, s, v := RGBToHSV(r, g, b)
		return models.ColorInfo{
			Hex: models.FallbackHex, RGB: [3]int{r, g, b}, HSV: [3]float64{h, s, v},
			Percentage: 100, Name: ColorName(r, g, b),
		}
	}

	small := e.downsample(img)
	bounds := small.Bounds()
	var sumR, sumG, sumB, n float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := small.At(x, y).RGBA()
			sumR += float64(r >> 8)
			sumG += float64(g >> 8)
			sumB += float64(b >> 8)
			n++
		}
	}
	if n == 0 {
		return e.AverageColor(nil)
	}
	r, g, b := int(sumR/n), int(sumG/n), int(sumB/n)
	h, s, v := RGBToHSV(r, g, b)
	return models.ColorInfo{
		Hex: RGBToHex(r, g, b), RGB: [3]int{r, g, b}, HSV: [3]float64{h, s, v},
		Percentage: 100, Name: ColorName(r, g, b),
	}
}

func (e *ColorExtractor) downsample(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= e.MaxDimension && bounds.Dy() <= e.MaxDimension {
		return img
	}
	return imaging.Fit(img, e.MaxDimension, e.MaxDimension, imaging.Lanczos)
}

// collectPixels applies tiered filtering: the strict filter drops shadows,
// highlights and near-grayscale pixels; if too few survive it relaxes to
// brightness-only, then to the full pixel set.
func (e *ColorExtractor) collectPixels(img image.Image) [][3]float64 {
	small := e.downsample(img)
	bounds := small.Bounds()

	all := make([][3]float64, 0, bounds.Dx()*bounds.Dy())
	bright := make([][3]float64, 0, bounds.Dx()*bounds.Dy())
	strict := make([][3]float64, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := small.At(x, y).RGBA()
			p := [3]float64{float64(r16 >> 8), float64(g16 >> 8), float64(b16 >> 8)}
			all = append(all, p)

			brightness := (p[0] + p[1] + p[2]) / 3
			if brightness <= 15 || brightness >= 240 {
				continue
			}
			bright = append(bright, p)
			if channelStd(p) > 10 {
				strict = append(strict, p)
			}
		}
	}

	switch {
	case len(strict) > 500:
		return strict
	case len(bright) > 200:
		return bright
	default:
		return all
	}
}

// channelStd is the population standard deviation across the three channels
// of a single pixel. Near zero means the pixel is grayscale.
func channelStd(p [3]float64) float64 {
	mean := (p[0] + p[1] + p[2]) / 3
	variance := ((p[0]-mean)*(p[0]-mean) + (p[1]-mean)*(p[1]-mean) + (p[2]-mean)*(p[2]-mean)) / 3
	return math.Sqrt(variance)
}
