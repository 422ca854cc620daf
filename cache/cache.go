// Package cache implements the bounded-LRU embedding cache: a
// fingerprint -> vector map that the host populates incrementally and the
// semantic rerank path reads without disturbing recency.
//
// This is grounded on the teacher lineage's embed.CachedEmbedder, which
// wraps github.com/hashicorp/golang-lru/v2 to memoize a single embedder's
// output. That cache only ever needed Get; this one generalizes it into a
// general-purpose cache with the get/peek asymmetry and bulk
// membership queries the query engine's caller-driven embedding workflow
// needs, and tracks an explicit per-entry access count the teacher's cache
// had no use for.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// entry is what the LRU ring stores per fingerprint.
type entry struct {
	embedding   []float32
	accessCount uint32
}

// EmbeddingCache is a bounded LRU cache mapping a fingerprint string to an
// embedding vector. It is not safe for concurrent use without external
// synchronization -- the core offers no internal locking (see the store
// package's doc comment for the same policy).
type EmbeddingCache struct {
	entries  *lru.Cache[string, *entry]
	capacity int
}

// New creates a cache bounded to capacity entries. Capacity below 1 is
// clamped to 1.
func New(capacity int) *EmbeddingCache {
	if capacity < 1 {
		capacity = 1
	}
	entries, _ := lru.New[string, *entry](capacity)
	return &EmbeddingCache{entries: entries, capacity: capacity}
}

// Get returns the cached embedding for fingerprint, updating its recency
// and incrementing its access count. Returns (nil, false) on a miss.
func (c *EmbeddingCache) Get(fingerprint string) ([]float32, bool) {
	e, ok := c.entries.Get(fingerprint)
	if !ok {
		return nil, false
	}
	e.accessCount++
	return e.embedding, true
}

// Peek returns the cached embedding for fingerprint without updating
// recency or the access count. Used by readers -- like semantic rerank --
// that must not perturb LRU state.
func (c *EmbeddingCache) Peek(fingerprint string) ([]float32, bool) {
	e, ok := c.entries.Peek(fingerprint)
	if !ok {
		return nil, false
	}
	return e.embedding, true
}

// Put stores embedding under fingerprint. If the key already exists its
// vector is overwritten and it becomes most-recently-used, but its access
// count is left untouched. If the cache is at capacity and the key is new,
// the least-recently-used entry is evicted first.
func (c *EmbeddingCache) Put(fingerprint string, embedding []float32) {
	if e, ok := c.entries.Peek(fingerprint); ok {
		e.embedding = embedding
		c.entries.Get(fingerprint) // touch recency without bumping access_count
		return
	}
	c.entries.Add(fingerprint, &entry{embedding: embedding, accessCount: 1})
}

// GetMissing returns the subsequence of fingerprints not currently present
// in the cache, preserving input order.
func (c *EmbeddingCache) GetMissing(fingerprints []string) []string {
	missing := make([]string, 0, len(fingerprints))
	for _, fp := range fingerprints {
		if _, ok := c.entries.Peek(fp); !ok {
			missing = append(missing, fp)
		}
	}
	return missing
}

// CachedPair is a fingerprint paired with its cached embedding.
type CachedPair struct {
	Fingerprint string
	Embedding   []float32
}

// GetCached returns the subsequence of fingerprints that are present,
// paired with their embeddings, preserving input order. Non-mutating.
func (c *EmbeddingCache) GetCached(fingerprints []string) []CachedPair {
	cached := make([]CachedPair, 0, len(fingerprints))
	for _, fp := range fingerprints {
		if e, ok := c.entries.Peek(fp); ok {
			cached = append(cached, CachedPair{Fingerprint: fp, Embedding: e.embedding})
		}
	}
	return cached
}

// Size returns the number of entries currently cached.
func (c *EmbeddingCache) Size() int {
	return c.entries.Len()
}

// Capacity returns the configured maximum entry count.
func (c *EmbeddingCache) Capacity() int {
	return c.capacity
}

// Clear empties the cache.
func (c *EmbeddingCache) Clear() {
	c.entries.Purge()
}
