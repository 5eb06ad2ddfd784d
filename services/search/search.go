// Package search ranks already-scoped documents with a simple token-count
// score. Ranking quality is explicitly out of scope; scoping happens before
// documents ever reach this package.
package search

import (
	"sort"
	"strings"

	"github.com/upb/retrieval-gateway/models"
)

// MaxResults caps how many ranked documents a query returns.
const MaxResults = 10

// Tokenize lowercases and splits a query on whitespace, dropping empties.
func Tokenize(query string) []string {
	var tokens []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Score counts token occurrences across the document title and body.
func Score(doc models.Document, tokens []string) int {
	text := strings.ToLower(doc.Title + " " + doc.Body)
	score := 0
	for _, t := range tokens {
		score += strings.Count(text, t)
	}
	return score
}

// Rank orders documents by descending score, drops zero-score documents and
// returns at most MaxResults. The input slice is not modified.
func Rank(docs []models.Document, query string) []models.Document {
	tokens := Tokenize(query)

	type scored struct {
		doc   models.Document
		score int
	}
	ranked := make([]scored, 0, len(docs))
	for _, d := range docs {
		if s := Score(d, tokens); s > 0 {
			ranked = append(ranked, scored{doc: d, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	out := make([]models.Document, len(ranked))
	for i, r := range ranked {
		out[i] = r.doc
	}
	return out
}
