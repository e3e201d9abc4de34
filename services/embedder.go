package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"sync"

	"google.golang.org/genai"
)

const (
	EmbeddingDim       = 2048
	EmbeddingModelName = "gemini-embedding-001"
)

// FeatureExtractor produces a fixed-size embedding describing the visual
// style of a garment image.
type FeatureExtractor interface {
	Embed(ctx context.Context, img image.Image) ([]float64, error)
	Dim() int
}

// GoogleFeatureExtractor embeds images through the Gemini embedding API.
// The client is created lazily on first use so the service can boot without
// an API key and fail per-request instead.
type GoogleFeatureExtractor struct {
	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

func NewGoogleFeatureExtractor() *GoogleFeatureExtractor {
	return &GoogleFeatureExtractor{}
}

func (g *GoogleFeatureExtractor) Dim() int {
	return EmbeddingDim
}

func (g *GoogleFeatureExtractor) ensureClient(ctx context.Context) (*genai.Client, error) {
	g.initOnce.Do(func() {
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			g.initErr = fmt.Errorf("%w: GOOGLE_API_KEY not set", ErrModelUnavailable)
			return
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			g.initErr = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
			return
		}
		g.client = client
	})
	return g.client, g.initErr
}

func (g *GoogleFeatureExtractor) Embed(ctx context.Context, img image.Image) ([]float64, error) {
	if img == nil {
		return nil, ErrUnreadableImage
	}
	client, err := g.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{
			InlineData: &genai.Blob{
				MIMEType: "image/png",
				Data:     buf.Bytes(),
			},
		}},
	}}
	dim := int32(EmbeddingDim)
	result, err := client.Models.EmbedContent(ctx, EmbeddingModelName, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dim,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ErrModelUnavailable)
	}

	values := result.Embeddings[0].Values
	embedding := make([]float64, len(values))
	for i, v := range values {
		embedding[i] = float64(v)
	}
	return embedding, nil
}

// CosineSimilarity is in [-1, 1]; zero-norm or mismatched vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
