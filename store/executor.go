package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Muvels/ui-ground-sdk/internal/synonyms"
	"github.com/Muvels/ui-ground-sdk/internal/text"
	"github.com/Muvels/ui-ground-sdk/types"
)

// scored pairs a record index with its computed score, carried through
// sorting and pagination before materialization into a MatchResult.
type scored struct {
	idx   int
	score float64
}

// Execute runs ast against the database's current corpus: each where
// clause is resolved to a candidate set (the first clause seeds it, every
// clause after intersects), candidates are scored, ordered, paginated and
// materialized into MatchResults.
func (db *Database) Execute(ast types.QueryAST) types.QueryResult {
	start := time.Now()

	var filtersApplied []string
	candidates := make(map[int]struct{})
	first := true

	for _, clause := range ast.Where {
		filtered := db.applyFilter(clause, &filtersApplied)
		if first {
			candidates = filtered
			first = false
			continue
		}
		for idx := range candidates {
			if _, ok := filtered[idx]; !ok {
				delete(candidates, idx)
			}
		}
	}

	if first {
		// No where clauses at all: every record is a candidate.
		for idx := range db.records {
			candidates[idx] = struct{}{}
		}
	}

	// Walk candidates in record order rather than map iteration order: map
	// iteration is randomized per-run in Go, and ties must preserve the
	// order produced by filtering (record order) for query determinism.
	results := make([]scored, 0, len(candidates))
	for idx := range db.records {
		if _, ok := candidates[idx]; ok {
			results = append(results, scored{idx: idx, score: db.scoreCandidate(idx, ast)})
		}
	}

	db.order(results, ast.OrderBy)

	total := len(results)

	offset := 0
	if ast.Offset != nil {
		offset = *ast.Offset
	}
	limit := db.cfg.DefaultLimit
	if ast.Limit != nil {
		limit = *ast.Limit
	}

	page := paginate(results, offset, limit)

	matches := make([]types.MatchResult, 0, len(page))
	for _, s := range page {
		matches = append(matches, db.recordToMatch(db.records[s.idx], s.score))
	}

	return types.QueryResult{
		Matches: matches,
		Total:   total,
		Explain: types.QueryExplain{
			CandidatesConsidered: total,
			FiltersApplied:       filtersApplied,
			ExecutionTimeMs:      float64(time.Since(start)) / float64(time.Millisecond),
		},
	}
}

func paginate(results []scored, offset, limit int) []scored {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return nil
	}
	end := offset + limit
	if end > len(results) || limit < 0 {
		end = len(results)
	}
	return results[offset:end]
}

// order sorts results in place according to the first order-by entry, or
// by score descending when none is given. Unknown fields fall back to
// score descending too. Ties preserve input order (stable sort), which
// also makes NaN-valued comparisons well-behaved.
func (db *Database) order(results []scored, orderBy []types.OrderBy) {
	field := "score"
	desc := true
	if len(orderBy) > 0 {
		ob := orderBy[0]
		if ob.Field != nil {
			field = *ob.Field
		}
		desc = ob.Direction == nil || *ob.Direction != "asc"
	}

	records := db.records

	switch field {
	case "y":
		sort.SliceStable(results, func(i, j int) bool {
			yi, yj := records[results[i].idx].Rect.Y, records[results[j].idx].Rect.Y
			if desc {
				return yi > yj
			}
			return yi < yj
		})
	case "x":
		sort.SliceStable(results, func(i, j int) bool {
			xi, xj := records[results[i].idx].Rect.X, records[results[j].idx].Rect.X
			if desc {
				return xi > xj
			}
			return xi < xj
		})
	case "score":
		fallthrough
	default:
		sort.SliceStable(results, func(i, j int) bool {
			if desc {
				return results[i].score > results[j].score
			}
			return results[i].score < results[j].score
		})
	}
}

// applyFilter resolves a single where clause into the set of matching
// record indices and appends a human-readable description of the filter
// to filtersApplied.
func (db *Database) applyFilter(clause types.WhereClause, filtersApplied *[]string) map[int]struct{} {
	result := make(map[int]struct{})

	switch {
	case clause.Role != nil:
		roleNames := make([]string, len(clause.Role.Roles))
		for i, r := range clause.Role.Roles {
			roleNames[i] = string(r)
		}
		*filtersApplied = append(*filtersApplied, fmt.Sprintf("role=%s", strings.Join(roleNames, "|")))

		for _, r := range clause.Role.Roles {
			for _, idx := range db.roleIndex[r] {
				result[idx] = struct{}{}
			}
		}

	case clause.State != nil:
		result = db.applyStateFilter(clause.State, filtersApplied)

	case clause.Name != nil:
		result = db.applyTextFilter(clause.Name, "name", filtersApplied, func(r types.NodeRecord) string {
			return r.Name
		})

	case clause.InContext != nil:
		result = db.applyTextFilter(clause.InContext, "context", filtersApplied, func(r types.NodeRecord) string {
			return strings.Join(r.Context, " ")
		})

	case clause.Attr != nil:
		result = db.applyAttrFilter(clause.Attr, filtersApplied)

	case clause.Near != nil:
		result = db.applyNearFilter(clause.Near, filtersApplied)

	case clause.Nth != nil:
		// Position-at-filter-time only: nth is recorded for the explain
		// trace but not applied here. See the design notes for why this
		// matches the reference engine's own (non-)behavior.
		*filtersApplied = append(*filtersApplied, "nth")
		for idx := range db.records {
			result[idx] = struct{}{}
		}
	}

	return result
}

func (db *Database) applyStateFilter(f *types.StateFilter, filtersApplied *[]string) map[int]struct{} {
	result := make(map[int]struct{})
	var names []string

	check := func(name string, want *bool, bit types.StateBit) func(bits uint32) bool {
		if want != nil {
			names = append(names, fmt.Sprintf("%s=%t", name, *want))
		}
		return func(bits uint32) bool {
			if want == nil {
				return true
			}
			return types.Has(bits, bit) == *want
		}
	}

	checks := []func(uint32) bool{
		check("visible", f.Visible, types.StateVisible),
		check("enabled", f.Enabled, types.StateEnabled),
		check("checked", f.Checked, types.StateChecked),
		check("expanded", f.Expanded, types.StateExpanded),
		check("focused", f.Focused, types.StateFocused),
		check("selected", f.Selected, types.StateSelected),
	}

	for idx, record := range db.records {
		ok := true
		for _, c := range checks {
			if !c(record.StateBits) {
				ok = false
				break
			}
		}
		if ok {
			result[idx] = struct{}{}
		}
	}

	*filtersApplied = append(*filtersApplied, fmt.Sprintf("state(%s)", strings.Join(names, ",")))
	return result
}

func (db *Database) applyTextFilter(f *types.TextFilter, label string, filtersApplied *[]string, extract func(types.NodeRecord) string) map[int]struct{} {
	result := make(map[int]struct{})
	*filtersApplied = append(*filtersApplied, fmt.Sprintf("%s(%s:%s)", label, f.Match, f.Value))

	patterns := splitPatterns(f.Value)
	if label == "name" {
		patterns = expandSynonyms(patterns)
	}
	mode := toMatchMode(f.Match)

	for idx, record := range db.records {
		if text.MatchText(extract(record), patterns, mode) {
			result[idx] = struct{}{}
		}
	}
	return result
}

func (db *Database) applyAttrFilter(f *types.AttrFilter, filtersApplied *[]string) map[int]struct{} {
	result := make(map[int]struct{})
	*filtersApplied = append(*filtersApplied, fmt.Sprintf("attr(%s=%s)", f.Name, f.Value))

	mode := toMatchMode(f.MatchOrDefault())
	for idx, record := range db.records {
		value, ok := record.Attrs[f.Name]
		if !ok {
			continue
		}
		if text.MatchText(value, []string{f.Value}, mode) {
			result[idx] = struct{}{}
		}
	}
	return result
}

func (db *Database) applyNearFilter(f *types.NearFilter, filtersApplied *[]string) map[int]struct{} {
	result := make(map[int]struct{})
	radius := f.RadiusOrDefault(db.cfg.DefaultNearRadius)

	switch {
	case f.TargetID != nil:
		*filtersApplied = append(*filtersApplied, fmt.Sprintf("near(target=%d, r=%g)", *f.TargetID, radius))
	case f.Text != nil:
		*filtersApplied = append(*filtersApplied, fmt.Sprintf("near(text=%q, r=%g)", *f.Text, radius))
	default:
		*filtersApplied = append(*filtersApplied, fmt.Sprintf("near(r=%g)", radius))
	}

	tx, ty, ok := db.nearTargetCenter(f)
	if !ok {
		return result
	}

	for idx, record := range db.records {
		cx, cy := record.Rect.CenterX(), record.Rect.CenterY()
		dx, dy := cx-tx, cy-ty
		// Compare squared distances to skip a sqrt per record; equivalent
		// to the reference implementation's euclidean-distance <= radius.
		distSq := dx*dx + dy*dy
		if distSq <= radius*radius {
			result[idx] = struct{}{}
		}
	}
	return result
}

func (db *Database) nearTargetCenter(f *types.NearFilter) (x, y float64, ok bool) {
	if f.TargetID != nil {
		for _, r := range db.records {
			if r.ID == *f.TargetID {
				return r.Rect.CenterX(), r.Rect.CenterY(), true
			}
		}
		return 0, 0, false
	}
	if f.Text != nil {
		needle := text.Normalize(*f.Text)
		for _, r := range db.records {
			if strings.Contains(text.Normalize(r.Name), needle) {
				return r.Rect.CenterX(), r.Rect.CenterY(), true
			}
		}
	}
	return 0, 0, false
}

// splitPatterns splits a pipe-delimited alternatives string into
// normalized patterns.
func splitPatterns(value string) []string {
	parts := strings.Split(value, "|")
	patterns := make([]string, len(parts))
	for i, p := range parts {
		patterns[i] = text.Normalize(p)
	}
	return patterns
}

// expandSynonyms appends every synonym group member for each pattern,
// matching the reference engine's name-filter synonym expansion.
func expandSynonyms(patterns []string) []string {
	expanded := make([]string, 0, len(patterns))
	expanded = append(expanded, patterns...)
	for _, p := range patterns {
		expanded = append(expanded, synonyms.Get(p)...)
	}
	return expanded
}

func toMatchMode(m types.MatchType) text.MatchMode {
	switch m {
	case types.MatchExact:
		return text.MatchExact
	case types.MatchFuzzy:
		return text.MatchFuzzy
	case types.MatchRegex:
		return text.MatchRegex
	default:
		return text.MatchContains
	}
}

// scoreCandidate computes a 0.0-1.0 relevance score for a candidate record
// against every where clause, plus a data-testid presence bonus and an
// upper-viewport position bonus. The total is capped at 1.0 once at the
// end, never per-term.
func (db *Database) scoreCandidate(idx int, ast types.QueryAST) float64 {
	record := db.records[idx]
	score := 0.5

	for _, clause := range ast.Where {
		switch {
		case clause.Name != nil:
			score += text.FuzzyScore(clause.Name.Value, record.Name) * 0.3
		case clause.InContext != nil:
			score += text.FuzzyScore(clause.InContext.Value, strings.Join(record.Context, " ")) * 0.2
		case clause.Role != nil:
			for _, r := range clause.Role.Roles {
				if r == record.Role {
					score += 0.1
					break
				}
			}
		case clause.State != nil:
			score += 0.05
		}
	}

	if _, ok := record.Attrs[testIDAttr]; ok {
		score += 0.1
	}
	if record.Rect.Y < 300 {
		score += 0.05
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// recordToMatch derives a MatchResult's actionability and state flags from
// a record's role and state bits.
func (db *Database) recordToMatch(record types.NodeRecord, score float64) types.MatchResult {
	visible := types.Has(record.StateBits, types.StateVisible)
	enabled := types.Has(record.StateBits, types.StateEnabled)
	actionable := visible && enabled

	return types.MatchResult{
		ID:      record.ID,
		Score:   roundScore(score),
		Role:    record.Role,
		Name:    record.Name,
		States:  types.NewMatchStates(record.StateBits),
		Context: record.Context,
		Actionability: types.Actionability{
			Click:  actionable && record.Role.IsClickable(),
			Type:   actionable && record.Role.IsTypeable(),
			Check:  actionable && record.Role.IsCheckable(),
			Select: actionable && record.Role.IsSelectable(),
			Scroll: visible,
		},
		Rect: record.Rect,
	}
}

// roundScore matches the reference implementation's rounding of a score to
// two decimal places.
func roundScore(score float64) float64 {
	return float64(int(score*100+0.5)) / 100
}
