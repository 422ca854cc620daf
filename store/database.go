// Package store implements the in-memory record database: the columnar
// record slice, the three secondary indices built at ingest time, the
// query executor, and the semantic rerank path. It is grounded on the
// reference implementation's UiDatabase/QueryExecutor (db.rs, query.rs),
// generalized from a wasm-bindgen surface into a plain Go API.
//
// The database performs no internal locking (spec §5): one goroutine must
// own ingest/reset/cache-mutating calls while they run, and callers that
// need concurrent readers and writers must serialize externally.
package store

import (
	"encoding/json"

	"github.com/Muvels/ui-ground-sdk/cache"
	"github.com/Muvels/ui-ground-sdk/config"
	"github.com/Muvels/ui-ground-sdk/internal/text"
	"github.com/Muvels/ui-ground-sdk/qerr"
	"github.com/Muvels/ui-ground-sdk/types"
)

const testIDAttr = "data-testid"

// Database owns a corpus of NodeRecords, the three secondary indices
// derived from it, and the embedding cache used for optional semantic
// reranking. The zero value is not usable; construct with New.
type Database struct {
	cfg config.Config

	records []types.NodeRecord

	roleIndex  map[types.ElementRole][]int
	tokenIndex map[string][]int
	testIndex  map[string]int

	cache *cache.EmbeddingCache
}

// New constructs an empty Database using cfg's tunables.
func New(cfg config.Config) *Database {
	return &Database{
		cfg:        cfg,
		roleIndex:  make(map[types.ElementRole][]int),
		tokenIndex: make(map[string][]int),
		testIndex:  make(map[string]int),
		cache:      cache.New(cfg.EmbeddingCacheCapacity),
	}
}

// Ingest atomically replaces the corpus with records and rebuilds all
// three secondary indices from scratch. The synonym table and embedding
// cache are untouched. Indices are built into fresh maps and swapped in at
// the end so a reader observing the database mid-call (under the host's
// own synchronization discipline) never sees a half-built index.
func (db *Database) Ingest(records []types.NodeRecord) {
	roleIndex := make(map[types.ElementRole][]int, len(db.roleIndex))
	tokenIndex := make(map[string][]int, len(db.tokenIndex))
	testIndex := make(map[string]int, len(db.testIndex))

	for idx, record := range records {
		roleIndex[record.Role] = append(roleIndex[record.Role], idx)

		tokens := text.Tokenize(record.Name)
		for _, ctx := range record.Context {
			tokens = append(tokens, text.Tokenize(ctx)...)
		}
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			tokenIndex[tok] = append(tokenIndex[tok], idx)
		}

		if testID, ok := record.Attrs[testIDAttr]; ok {
			testIndex[testID] = idx
		}
	}

	db.records = records
	db.roleIndex = roleIndex
	db.tokenIndex = tokenIndex
	db.testIndex = testIndex
}

// IngestJSON decodes a JSON array of NodeRecords and ingests it. On a
// decode failure the database is left untouched and a CodeParse error is
// returned.
func (db *Database) IngestJSON(data []byte) *qerr.Error {
	var records []types.NodeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return qerr.Parse("failed to parse records", err)
	}
	db.Ingest(records)
	return nil
}

// Reset empties the corpus, all three indices, and the embedding cache.
// Synonyms are left intact -- they are process-wide, not corpus-scoped.
func (db *Database) Reset() {
	db.records = nil
	db.roleIndex = make(map[types.ElementRole][]int)
	db.tokenIndex = make(map[string][]int)
	db.testIndex = make(map[string]int)
	db.cache.Clear()
}

// Size returns the number of records currently ingested.
func (db *Database) Size() int {
	return len(db.records)
}

// GetRecord finds the record with the given id by linear scan. Acceptable
// because callers fetch by id sparingly (spec §4.4).
func (db *Database) GetRecord(id uint32) (types.NodeRecord, bool) {
	for _, r := range db.records {
		if r.ID == id {
			return r, true
		}
	}
	return types.NodeRecord{}, false
}

// Records exposes the underlying record slice read-only. Index positions
// returned by the three index accessors refer into this slice.
func (db *Database) Records() []types.NodeRecord {
	return db.records
}

// RoleIndex, TokenIndex and TestIDIndex expose the three secondary
// indices for inspection (e.g. by tests asserting index fidelity). They
// are valid only between Ingest and the next Ingest/Reset.
func (db *Database) RoleIndex() map[types.ElementRole][]int { return db.roleIndex }
func (db *Database) TokenIndex() map[string][]int           { return db.tokenIndex }
func (db *Database) TestIDIndex() map[string]int            { return db.testIndex }

// Query parses astJSON and executes it. Returns a CodeParse error for
// malformed JSON.
func (db *Database) Query(astJSON []byte) (types.QueryResult, *qerr.Error) {
	var ast types.QueryAST
	if err := json.Unmarshal(astJSON, &ast); err != nil {
		return types.QueryResult{}, qerr.Parse("failed to parse query", err)
	}
	return db.Execute(ast), nil
}

// CacheEmbedding stores an embedding for fingerprint in the LRU cache.
func (db *Database) CacheEmbedding(fingerprint string, embedding []float32) {
	db.cache.Put(fingerprint, embedding)
}

// GetEmbedding returns the cached embedding for fingerprint without
// disturbing recency.
func (db *Database) GetEmbedding(fingerprint string) ([]float32, bool) {
	return db.cache.Peek(fingerprint)
}

// GetMissingEmbeddings returns the subsequence of fingerprints not present
// in the embedding cache, preserving order.
func (db *Database) GetMissingEmbeddings(fingerprints []string) []string {
	return db.cache.GetMissing(fingerprints)
}

// CacheSize returns the number of embeddings currently cached.
func (db *Database) CacheSize() int {
	return db.cache.Size()
}

// ClearCache empties the embedding cache without touching the corpus.
func (db *Database) ClearCache() {
	db.cache.Clear()
}
