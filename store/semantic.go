package store

import (
	"github.com/Muvels/ui-ground-sdk/internal/vectorkit"
	"github.com/Muvels/ui-ground-sdk/types"
)

// SemanticRerank scores candidateIDs against queryEmbedding using whatever
// embedding is cached for each candidate's fingerprint, and returns the top
// k by cosine similarity. Candidates with no cached embedding are silently
// skipped rather than erroring, matching the reference implementation's
// best-effort rerank (a candidate with an uncached embedding simply cannot
// be reranked semantically and falls out of the result).
func (db *Database) SemanticRerank(queryEmbedding []float32, candidateIDs []uint32, k int) []types.SemanticMatch {
	candidates := make([]vectorkit.Candidate, 0, len(candidateIDs))

	for _, id := range candidateIDs {
		record, ok := db.GetRecord(id)
		if !ok {
			continue
		}
		vec, ok := db.cache.Peek(record.Fingerprint)
		if !ok {
			continue
		}
		candidates = append(candidates, vectorkit.Candidate{ID: int(id), Embedding: vec})
	}

	ranked := vectorkit.TopKSimilar(queryEmbedding, candidates, k)

	matches := make([]types.SemanticMatch, len(ranked))
	for i, r := range ranked {
		matches[i] = types.SemanticMatch{ID: uint32(r.ID), Similarity: r.Similarity}
	}
	return matches
}

// ComputeCosineSimilarity is the standalone, corpus-independent cosine
// similarity operation exposed alongside the database's other query
// primitives.
func ComputeCosineSimilarity(a, b []float32) float32 {
	return vectorkit.CosineSimilarity(a, b)
}
