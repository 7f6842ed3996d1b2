package search

import (
	"strings"

	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/result"
)

// Relevance weights. These are part of the observable scoring contract:
// a title hit outranks any combination of tag and body hits, and an exact
// title match outranks everything else.
const (
	titleContainsWeight = 10.0
	titleExactBonus     = 20.0
	titlePrefixBonus    = 5.0
	summaryWeight       = 5.0
	tagContainsWeight   = 3.0
	tagExactBonus       = 5.0
	categoryWeight      = 4.0
	descriptionWeight   = 2.0
	applicationWeight   = 1.0
)

// Score rates how well an item matches a free-text query and reports which
// field categories matched. Matching is case-insensitive on the trimmed
// query. An empty query scores 0 with no matches: such an item is not a
// query-driven hit, though it may still pass structural filters.
func Score(item *content.Item, query string) (float64, []result.MatchedField) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0, nil
	}

	var score float64
	var matched []result.MatchedField

	title := strings.ToLower(item.Title())
	if strings.Contains(title, query) {
		score += titleContainsWeight
		if title == query {
			score += titleExactBonus
		}
		if strings.HasPrefix(title, query) {
			score += titlePrefixBonus
		}
		matched = append(matched, result.FieldTitle)
	}

	if strings.Contains(strings.ToLower(item.Summary()), query) {
		score += summaryWeight
		matched = append(matched, result.FieldSummary)
	}

	tagHit := false
	for _, tag := range item.Tags() {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, query) {
			score += tagContainsWeight
			tagHit = true
		}
		if lower == query {
			score += tagExactBonus
		}
	}
	if tagHit {
		matched = append(matched, result.FieldTags)
	}

	if strings.Contains(strings.ToLower(item.Category().DisplayName()), query) {
		score += categoryWeight
	}

	contentHit := false
	if strings.Contains(strings.ToLower(item.Description()), query) {
		score += descriptionWeight
		contentHit = true
	}
	if strings.Contains(strings.ToLower(item.Application()), query) {
		score += applicationWeight
		contentHit = true
	}
	if contentHit {
		matched = append(matched, result.FieldContent)
	}

	return score, matched
}
