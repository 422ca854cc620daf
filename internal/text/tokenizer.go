// Package text implements the tokenization, normalization and fuzzy-matching
// primitives the query executor scores and filters with. None of this
// package has a host-facing contract of its own; store.Database is the only
// importer.
package text

import (
	"bytes"
	"strings"

	"github.com/blevesearch/segment"
)

// Tokenize splits text on Unicode word boundaries, drops tokens of length
// <=1, and lowercases the rest. It is grounded on the same word segmenter
// bleve's own unicode analyzer tokenizes with, rather than a hand-rolled
// rune scanner, so multi-script corpora split the way a real search stack
// would split them.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	tokens := make([]string, 0, len(text)/5+1)
	seg := segment.NewWordSegmenter(bytes.NewReader([]byte(text)))
	for seg.Segment() {
		if seg.Type() == segment.None {
			continue // punctuation, whitespace, symbols: not a word
		}
		word := seg.Bytes()
		if len(word) <= 1 {
			continue // byte length, not rune count -- matches the reference tokenizer's own str::len() filter
		}
		tokens = append(tokens, strings.ToLower(string(word)))
	}
	return tokens
}

// Normalize trims surrounding whitespace and lowercases text.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
