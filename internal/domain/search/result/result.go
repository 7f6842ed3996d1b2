package result

import "github.com/Build24-Tech/discovery-engine/internal/domain/content"

// MatchedField names a field category the query matched.
type MatchedField string

// Matched field constants.
const (
	FieldTitle   MatchedField = "title"
	FieldSummary MatchedField = "summary"
	FieldTags    MatchedField = "tags"
	FieldContent MatchedField = "content"
)

// Result is a single search hit: the item, its relevance score, and the
// set of field categories the query matched.
type Result struct {
	item    content.Item
	score   float64
	matched []MatchedField
}

// New creates a search result.
func New(item content.Item, score float64, matched []MatchedField) Result {
	return Result{item: item, score: score, matched: matched}
}

// Item returns the matched content item.
func (r *Result) Item() *content.Item { return &r.item }

// Score returns the relevance score (0 for structural-only matches).
func (r *Result) Score() float64 { return r.score }

// Matched returns the matched field categories.
func (r *Result) Matched() []MatchedField { return r.matched }

// MatchedField reports whether the given field category matched.
func (r *Result) MatchedField(f MatchedField) bool {
	for _, m := range r.matched {
		if m == f {
			return true
		}
	}
	return false
}
