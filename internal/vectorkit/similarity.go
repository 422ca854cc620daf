// Package vectorkit implements the cosine-similarity kernels the query
// executor's semantic rerank path uses. It carries the teacher lineage's
// cpuid-driven dispatch shape: detect hardware capability once at package
// init and pick the faster kernel shape for it. Unlike the teacher's
// package, there is no compiled SIMD kernel to bind to here, so both paths
// dispatched to are pure Go -- cpuid only chooses whether the accumulation
// loop is unrolled. The unrolled loop sums in a different order, so its
// result can differ from the scalar loop's in the last float32 bits.
package vectorkit

import (
	"math"
	"sort"

	"github.com/klauspost/cpuid/v2"
)

// wideDot controls whether dotProduct uses the 4-wide unrolled accumulator.
// Detected once at package init from the host's advertised feature set.
var wideDot = cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3)

// dotProduct computes the dot product of two equal-length float32 slices.
func dotProduct(a, b []float32) float32 {
	if wideDot {
		return dotProductUnrolled(a, b)
	}
	return dotProductScalar(a, b)
}

func dotProductScalar(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// dotProductUnrolled accumulates across four lanes to shorten the
// dependency chain on hardware wide enough to pipeline them.
func dotProductUnrolled(a, b []float32) float32 {
	n := len(a)
	var s0, s1, s2, s3 float32
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// CosineSimilarity assumes both vectors are already L2-normalized and
// returns their dot product -- equivalent to cosine similarity for unit
// vectors. Returns 0 on length mismatch or empty input.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return dotProduct(a, b)
}

// CosineSimilarityUnnormalized computes dot(a,b) / (‖a‖·‖b‖), returning 0
// when the denominator is 0 or the inputs are mismatched.
func CosineSimilarityUnnormalized(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denominator := float32(math.Sqrt(float64(normA * normB)))
	if denominator > 0 {
		return dot / denominator
	}
	return 0
}

// Candidate pairs an opaque identifier with its embedding vector.
type Candidate struct {
	ID        int
	Embedding []float32
}

// Ranked pairs an identifier with a similarity score.
type Ranked struct {
	ID         int
	Similarity float32
}

// BatchCosineSimilarity scores query against every candidate and returns
// the results sorted by similarity descending. Ties (including NaN
// comparisons, which never compare greater in either direction) preserve
// input order via a stable sort.
func BatchCosineSimilarity(query []float32, candidates []Candidate) []Ranked {
	results := make([]Ranked, len(candidates))
	for i, c := range candidates {
		results[i] = Ranked{ID: c.ID, Similarity: CosineSimilarity(query, c.Embedding)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	return results
}

// TopKSimilar returns the k most similar candidates to query. If there are
// fewer than k candidates, all of them are returned. A negative k returns
// no results.
func TopKSimilar(query []float32, candidates []Candidate, k int) []Ranked {
	if k < 0 {
		k = 0
	}
	results := BatchCosineSimilarity(query, candidates)
	if k < len(results) {
		results = results[:k]
	}
	return results
}

// NormalizeEmbedding scales v in place to unit L2 norm. No-op if ‖v‖ is 0.
func NormalizeEmbedding(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	norm := float32(math.Sqrt(float64(sum)))
	if norm > 0 {
		for i := range v {
			v[i] /= norm
		}
	}
}

// IsNormalized reports whether v's L2 norm is within 0.001 of 1.0.
func IsNormalized(v []float32) bool {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	norm := float64(math.Sqrt(float64(sum)))
	return math.Abs(norm-1.0) < 0.001
}
