package store

import (
	"testing"

	"github.com/Muvels/ui-ground-sdk/config"
	"github.com/Muvels/ui-ground-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticRerankRanksByCosineSimilarity(t *testing.T) {
	db := New(config.Default())
	db.Ingest([]types.NodeRecord{
		{ID: 1, Role: types.RoleButton, Name: "Submit", Fingerprint: "fp1"},
		{ID: 2, Role: types.RoleButton, Name: "Cancel", Fingerprint: "fp2"},
		{ID: 3, Role: types.RoleButton, Name: "NoEmbedding", Fingerprint: "fp3"},
	})

	db.CacheEmbedding("fp1", []float32{1, 0})
	db.CacheEmbedding("fp2", []float32{0, 1})
	// fp3 intentionally left uncached.

	matches := db.SemanticRerank([]float32{1, 0}, []uint32{1, 2, 3}, 2)

	require.Len(t, matches, 2)
	assert.Equal(t, uint32(1), matches[0].ID)
	assert.InDelta(t, float32(1.0), matches[0].Similarity, 0.001)
}

func TestSemanticRerankSkipsUnknownID(t *testing.T) {
	db := New(config.Default())
	db.Ingest([]types.NodeRecord{{ID: 1, Role: types.RoleButton, Fingerprint: "fp1"}})
	db.CacheEmbedding("fp1", []float32{1, 0})

	matches := db.SemanticRerank([]float32{1, 0}, []uint32{1, 999}, 5)
	assert.Len(t, matches, 1)
}

func TestComputeCosineSimilarityStatic(t *testing.T) {
	assert.InDelta(t, 1.0, ComputeCosineSimilarity([]float32{1, 0}, []float32{1, 0}), 0.001)
}

func TestQueryParsesJSONAndExecutes(t *testing.T) {
	db := New(config.Default())
	db.Ingest([]types.NodeRecord{
		{ID: 1, Role: types.RoleButton, Name: "Submit",
			StateBits: uint32(types.StateVisible) | uint32(types.StateEnabled)},
	})

	result, err := db.Query([]byte(`{"where":[{"role":"button"}]}`))
	require.Nil(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestQueryRejectsMalformedJSON(t *testing.T) {
	db := New(config.Default())
	_, err := db.Query([]byte(`{not json`))
	require.NotNil(t, err)
	assert.Equal(t, "parse", string(err.Code))
}
