package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Build24-Tech/discovery-engine/internal/domain"
	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
)

// MaxQueryLength is the maximum allowed search query length.
const MaxQueryLength = 256

// Filter is a normalized search filter. The query is trimmed and lower-cased
// and every set is deduplicated and sorted, so two filters describing the
// same search share one canonical CacheKey.
type Filter struct {
	query         string
	categories    []content.Category
	difficulties  []content.Difficulty
	relevanceTags []content.RelevanceTag
}

// New validates and normalizes a search filter.
func New(
	query string,
	categories []content.Category,
	difficulties []content.Difficulty,
	relevanceTags []content.RelevanceTag,
) (Filter, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) > MaxQueryLength {
		return Filter{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidFilter, MaxQueryLength)
	}
	for _, c := range categories {
		if !c.IsValid() {
			return Filter{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidFilter, c)
		}
	}
	for _, d := range difficulties {
		if !d.IsValid() {
			return Filter{}, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidFilter, d)
		}
	}
	for _, t := range relevanceTags {
		if !t.IsValid() {
			return Filter{}, fmt.Errorf("%w: unknown relevance tag %q", domain.ErrInvalidFilter, t)
		}
	}

	return Filter{
		query:         query,
		categories:    normalize(categories),
		difficulties:  normalize(difficulties),
		relevanceTags: normalize(relevanceTags),
	}, nil
}

// normalize deduplicates and sorts a set of string-like values.
func normalize[T ~string](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Query returns the normalized query text ("" when absent).
func (f *Filter) Query() string { return f.query }

// Categories returns the category set (sorted, may be empty).
func (f *Filter) Categories() []content.Category { return f.categories }

// Difficulties returns the difficulty set (sorted, may be empty).
func (f *Filter) Difficulties() []content.Difficulty { return f.difficulties }

// RelevanceTags returns the relevance tag set (sorted, may be empty).
func (f *Filter) RelevanceTags() []content.RelevanceTag { return f.relevanceTags }

// HasQuery reports whether the filter carries a non-empty query.
func (f *Filter) HasQuery() bool { return f.query != "" }

// SingleCategory returns the category when the filter names exactly one,
// letting the store narrow the corpus before loading.
func (f *Filter) SingleCategory() (content.Category, bool) {
	if len(f.categories) == 1 {
		return f.categories[0], true
	}
	return "", false
}

// AllowsCategory reports whether the item category passes the filter.
// An empty category set allows everything.
func (f *Filter) AllowsCategory(c content.Category) bool {
	if len(f.categories) == 0 {
		return true
	}
	for _, fc := range f.categories {
		if fc == c {
			return true
		}
	}
	return false
}

// AllowsDifficulty reports whether the item difficulty passes the filter.
func (f *Filter) AllowsDifficulty(d content.Difficulty) bool {
	if len(f.difficulties) == 0 {
		return true
	}
	for _, fd := range f.difficulties {
		if fd == d {
			return true
		}
	}
	return false
}

// AllowsRelevanceTags reports whether any of the item tags is in the filter
// set (union semantics). An empty filter set allows everything.
func (f *Filter) AllowsRelevanceTags(tags []content.RelevanceTag) bool {
	if len(f.relevanceTags) == 0 {
		return true
	}
	for _, ft := range f.relevanceTags {
		for _, it := range tags {
			if ft == it {
				return true
			}
		}
	}
	return false
}

// CacheKey returns the canonical serialized form of the filter.
// Two filters are equal for caching purposes iff their keys are equal.
func (f *Filter) CacheKey() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(f.query)
	b.WriteString("|cat=")
	writeSet(&b, f.categories)
	b.WriteString("|diff=")
	writeSet(&b, f.difficulties)
	b.WriteString("|tag=")
	writeSet(&b, f.relevanceTags)
	return b.String()
}

func writeSet[T ~string](b *strings.Builder, set []T) {
	for i, v := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(v))
	}
}
