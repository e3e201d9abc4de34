package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"golang.org/x/sync/singleflight"

	"clazzyapi/models"
)

const analysisCacheTTL = 30 * time.Minute

type AnalysisCacheProvider interface {
	GetOrAnalyze(ctx context.Context, imageBytes []byte, id, filenameHint string) (models.WardrobeItem, error)
}

// AnalysisCacheService memoizes per-image analysis keyed by the image
// digest: re-uploading the same bytes skips the model call and clustering.
// Concurrent first requests for the same digest are collapsed into one
// pipeline run.
type AnalysisCacheService struct {
	analyzer *WardrobeAnalyzer
	cache    *cache.Cache[models.WardrobeItem]
	group    singleflight.Group
}

func NewAnalysisCacheService(analyzer *WardrobeAnalyzer) (*AnalysisCacheService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 26, // 64MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)

	return &AnalysisCacheService{
		analyzer: analyzer,
		cache:    cache.New[models.WardrobeItem](ristrettoStore),
	}, nil
}

// GetOrAnalyze returns the cached analysis for the image bytes, running the
// pipeline on a miss. The caller's id is stamped onto the result; the cache
// itself is keyed only by content.
func (s *AnalysisCacheService) GetOrAnalyze(ctx context.Context, imageBytes []byte, id, filenameHint string) (models.WardrobeItem, error) {
	digest := ImageDigest(imageBytes)

	if item, err := s.cache.Get(ctx, digest); err == nil {
		item.ID = id
		return item, nil
	}

	result, err, _ := s.group.Do(digest, func() (interface{}, error) {
		log.Printf("Analysis cache miss for digest %.12s, running pipeline.", digest)
		item, err := s.analyzer.AnalyzeImage(ctx, imageBytes, id, filenameHint)
		if err != nil {
			return models.WardrobeItem{}, err
		}
		if err := s.cache.Set(ctx, digest, item, store.WithExpiration(analysisCacheTTL)); err != nil {
			log.Printf("Failed to cache analysis for digest %.12s: %v", digest, err)
		}
		return item, nil
	})
	if err != nil {
		return models.WardrobeItem{}, err
	}

	item := result.(models.WardrobeItem)
	item.ID = id
	return item, nil
}
