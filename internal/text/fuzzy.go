package text

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Levenshtein computes the classical rune-wise edit distance between a and
// b: insertions, deletions and substitutions each cost 1, identical
// characters cost 0. Delegated to agnivade/levenshtein, a focused
// implementation of exactly this algorithm that already operates over code
// points rather than bytes.
func Levenshtein(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// FuzzyScore scores how well query matches target on a 0.0-1.0 scale.
// Operates on normalized forms:
//   - equal -> 1.0
//   - target contains query -> 0.9
//   - otherwise max(tokenOverlap*0.7, levenshteinSimilarity*0.5)
func FuzzyScore(query, target string) float64 {
	q := Normalize(query)
	t := Normalize(target)

	if t == q {
		return 1.0
	}
	if strings.Contains(t, q) {
		return 0.9
	}

	qTokens := Tokenize(q)
	tTokens := Tokenize(t)

	if len(qTokens) == 0 {
		return 0.0
	}

	overlap := 0
	for _, qt := range qTokens {
		for _, tt := range tTokens {
			if strings.Contains(tt, qt) || strings.Contains(qt, tt) {
				overlap++
				break
			}
		}
	}
	tokenScore := float64(overlap) / float64(len(qTokens))

	// Levenshtein similarity over a target truncated to query length + 10
	// runes, matching the reference implementation's bound on comparison
	// cost for very long targets.
	tRunes := []rune(t)
	truncLen := len([]rune(q)) + 10
	if truncLen > len(tRunes) {
		truncLen = len(tRunes)
	}
	tTruncated := string(tRunes[:truncLen])

	distance := Levenshtein(q, tTruncated)
	maxLen := len([]rune(q))
	if len([]rune(tTruncated)) > maxLen {
		maxLen = len([]rune(tTruncated))
	}

	levScore := 0.0
	if maxLen > 0 {
		levScore = 1.0 - float64(distance)/float64(maxLen)
	}

	best := tokenScore * 0.7
	if alt := levScore * 0.5; alt > best {
		best = alt
	}
	return best
}

// MatchMode selects how MatchText compares a pattern against text.
type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchContains MatchMode = "contains"
	MatchFuzzy    MatchMode = "fuzzy"
	MatchRegex    MatchMode = "regex"
)

// MatchText reports whether any of patterns matches text under mode.
// "regex" and any unrecognized mode degrade to "contains" -- the engine
// carries no regex dependency, matching the documented limitation that the
// "regex" tag never errors but never compiles a pattern either.
func MatchText(text string, patterns []string, mode MatchMode) bool {
	textLower := Normalize(text)

	for _, pattern := range patterns {
		patternLower := Normalize(pattern)

		switch mode {
		case MatchExact:
			if textLower == patternLower {
				return true
			}
		case MatchFuzzy:
			if FuzzyScore(patternLower, textLower) > 0.5 {
				return true
			}
		case MatchContains, MatchRegex:
			if strings.Contains(textLower, patternLower) {
				return true
			}
		default:
			if strings.Contains(textLower, patternLower) {
				return true
			}
		}
	}

	return false
}
