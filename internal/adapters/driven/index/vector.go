// Package index provides similarity index adapters and the shared
// vector math they rely on.
package index

import "math"

// CosineDistance returns 1 - cosine similarity between a and b, so
// smaller values mean more similar. Either vector having zero magnitude
// yields the maximum distance of 1.
func CosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
