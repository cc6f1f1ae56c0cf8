package face

import (
	"fmt"
	"math"
)

// euclidean distance between two embeddings of equal length
func euclideanDistance(a, b Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: expected %d got %d", len(a), len(b))
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Distances returns the distance from probe to every gallery embedding, in gallery order.
func Distances(gallery []Embedding, probe Embedding) ([]float64, error) {
	out := make([]float64, len(gallery))
	for i, g := range gallery {
		d, err := euclideanDistance(probe, g)
		if err != nil {
			return nil, fmt.Errorf("gallery[%d]: %w", i, err)
		}
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("gallery[%d]: distance is not finite", i)
		}
		out[i] = d
	}
	return out, nil
}

// Compare matches a probe against a gallery. similarity is 1 - min distance
// and is not clamped, so it goes negative once the distance exceeds 1.
func Compare(probe Embedding, gallery []Embedding, threshold float64) (CompareResult, error) {
	if len(probe) == 0 || len(gallery) == 0 {
		return CompareResult{}, newError(ErrInvalidRequest, MsgMissingEmbedding)
	}

	distances, err := Distances(gallery, probe)
	if err != nil {
		return CompareResult{}, wrapError(ErrComparisonFailure, err)
	}

	minDistance := distances[0]
	for _, d := range distances[1:] {
		if d < minDistance {
			minDistance = d
		}
	}

	return CompareResult{
		Match:      minDistance <= threshold,
		Distance:   minDistance,
		Similarity: 1 - minDistance,
	}, nil
}
