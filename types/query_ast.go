package types

import (
	"encoding/json"
	"fmt"
)

// MatchType selects how a text filter compares its pattern against a
// record's text. "regex" degrades to substring matching -- the engine
// carries no regex dependency, which is a documented limitation, not a bug.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchContains MatchType = "contains"
	MatchFuzzy    MatchType = "fuzzy"
	MatchRegex    MatchType = "regex"
)

// RoleValue accepts either a single role or an array of roles on the wire,
// mirroring the reference schema's untagged single-or-multiple shape.
type RoleValue struct {
	Roles []ElementRole
}

// UnmarshalJSON accepts either `"button"` or `["button","link"]`.
func (v *RoleValue) UnmarshalJSON(data []byte) error {
	var single ElementRole
	if err := json.Unmarshal(data, &single); err == nil {
		v.Roles = []ElementRole{single}
		return nil
	}

	var multiple []ElementRole
	if err := json.Unmarshal(data, &multiple); err == nil {
		v.Roles = multiple
		return nil
	}

	return fmt.Errorf("role must be a string or an array of strings")
}

// MarshalJSON round-trips a single role as a bare string, matching how it
// would typically have been written on the wire.
func (v RoleValue) MarshalJSON() ([]byte, error) {
	if len(v.Roles) == 1 {
		return json.Marshal(v.Roles[0])
	}
	return json.Marshal(v.Roles)
}

// StateFilter constrains records by their boolean state flags. A nil
// pointer means the flag is unconstrained by this filter.
type StateFilter struct {
	Visible  *bool `json:"visible,omitempty"`
	Enabled  *bool `json:"enabled,omitempty"`
	Checked  *bool `json:"checked,omitempty"`
	Expanded *bool `json:"expanded,omitempty"`
	Focused  *bool `json:"focused,omitempty"`
	Selected *bool `json:"selected,omitempty"`
}

// TextFilter is a pattern/mode pair used by the name and inContext clauses.
type TextFilter struct {
	Match MatchType `json:"match"`
	Value string    `json:"value"`
}

// AttrFilter matches a single named attribute's value. Match defaults to
// "exact" when omitted.
type AttrFilter struct {
	Name  string     `json:"name"`
	Value string     `json:"value"`
	Match *MatchType `json:"match,omitempty"`
}

// MatchOrDefault returns Match if set, else "exact".
func (f AttrFilter) MatchOrDefault() MatchType {
	if f.Match != nil {
		return *f.Match
	}
	return MatchExact
}

// NearFilter selects records within radius of a target's rectangle center.
// The target is resolved from TargetID if present, else from the first
// record whose name contains Text.
type NearFilter struct {
	TargetID *uint32  `json:"targetId,omitempty"`
	Text     *string  `json:"text,omitempty"`
	Radius   *float64 `json:"radius,omitempty"`
}

// RadiusOrDefault returns Radius if set, else fallback (the host-configured
// default near-filter radius).
func (f NearFilter) RadiusOrDefault(fallback float64) float64 {
	if f.Radius != nil {
		return *f.Radius
	}
	return fallback
}

// WhereClause is one filter clause in a QueryAST's where list. Exactly one
// of its fields is populated per instance, mirroring the reference
// schema's untagged enum: the JSON key present in the object determines
// which variant this is.
type WhereClause struct {
	Role      *RoleValue   `json:"role,omitempty"`
	State     *StateFilter `json:"state,omitempty"`
	Name      *TextFilter  `json:"name,omitempty"`
	InContext *TextFilter  `json:"inContext,omitempty"`
	Attr      *AttrFilter  `json:"attr,omitempty"`
	Near      *NearFilter  `json:"near,omitempty"`
	Nth       *int         `json:"nth,omitempty"`
}

// OrderBy specifies a single sort key and direction.
type OrderBy struct {
	Field     *string `json:"field,omitempty"`
	Direction *string `json:"direction,omitempty"`
}

// QueryAST is the parsed form of a query JSON document.
type QueryAST struct {
	Select  *string       `json:"select,omitempty"`
	Where   []WhereClause `json:"where"`
	OrderBy []OrderBy     `json:"orderBy,omitempty"`
	Limit   *int          `json:"limit,omitempty"`
	Offset  *int          `json:"offset,omitempty"`
}
