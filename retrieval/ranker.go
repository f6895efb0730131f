package retrieval

import (
	"math"
	"sort"
)

// Result pairs a chunk index with its similarity score against the query.
type Result struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero vectors score 0 rather than erroring: a
// degenerate vector is simply never relevant.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Rank scores every chunk vector against the query vector and returns the
// topK highest, best first. The sort is stable so equal scores keep
// document order. Fewer chunks than topK returns all of them; no chunks
// returns an empty result, which is not an error.
func Rank(query []float32, chunkVectors [][]float32, topK int) []Result {
	if topK <= 0 || len(chunkVectors) == 0 {
		return nil
	}

	results := make([]Result, len(chunkVectors))
	for i, vec := range chunkVectors {
		results[i] = Result{
			Index: i,
			Score: CosineSimilarity(query, vec),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}
