package services

import (
	"context"
	"math"
	"math/rand"
)

// kmeansResult holds cluster centroids and the per-pixel assignment of one
// converged run.
type kmeansResult struct {
	centroids   [][3]float64
	assignments []int
}

// kmeansCluster runs Lloyd's algorithm over RGB pixels. It restarts `inits`
// times from seeded random centroids and keeps the run with the lowest
// inertia, so repeated calls over the same pixels give identical output.
// Respects ctx between iterations and reports ErrComputeTimeout when the
// deadline cuts the run short.
func kmeansCluster(ctx context.Context, pixels [][3]float64, k, inits, maxIterations int, seed int64) (kmeansResult, error) {
	if k > len(pixels) {
		k = len(pixels)
	}
	if k < 1 {
		return kmeansResult{}, ErrUnreadableImage
	}

	rng := rand.New(rand.NewSource(seed))
	best := kmeansResult{}
	bestInertia := math.Inf(1)

	for init := 0; init < inits; init++ {
		centroids := make([][3]float64, k)
		for i := range centroids {
			centroids[i] = pixels[rng.Intn(len(pixels))]
		}

		assignments := make([]int, len(pixels))
		for iter := 0; iter < maxIterations; iter++ {
			select {
			case <-ctx.Done():
				return kmeansResult{}, ErrComputeTimeout
			default:
			}

			moved := false
			for i, p := range pixels {
				nearest := 0
				nearestDist := math.Inf(1)
				for c, centroid := range centroids {
					d := squaredDistance(p, centroid)
					if d < nearestDist {
						nearestDist = d
						nearest = c
					}
				}
				if assignments[i] != nearest {
					assignments[i] = nearest
					moved = true
				}
			}
			if !moved && iter > 0 {
				break
			}

			sums := make([][3]float64, k)
			counts := make([]int, k)
			for i, p := range pixels {
				c := assignments[i]
				sums[c][0] += p[0]
				sums[c][1] += p[1]
				sums[c][2] += p[2]
				counts[c]++
			}
			for c := range centroids {
				if counts[c] == 0 {
					// Reseed empty clusters to keep k stable.
					centroids[c] = pixels[rng.Intn(len(pixels))]
					continue
				}
				n := float64(counts[c])
				centroids[c] = [3]float64{sums[c][0] / n, sums[c][1] / n, sums[c][2] / n}
			}
		}

		inertia := 0.0
		for i, p := range pixels {
			inertia += squaredDistance(p, centroids[assignments[i]])
		}
		if inertia < bestInertia {
			bestInertia = inertia
			best = kmeansResult{centroids: centroids, assignments: assignments}
		}
	}

	return best, nil
}

func squaredDistance(a, b [3]float64) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return d0*d0 + d1*d1 + d2*d2
}
