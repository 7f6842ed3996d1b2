package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Build24-Tech/discovery-engine/internal/domain"
	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/filter"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/result"
)

// Suggestion limits.
const (
	MinSuggestQueryLen  = 2
	DefaultSuggestLimit = 5
)

// Service filters and ranks the content corpus. Scoring is pure and
// stateless; the service is safe for concurrent use.
type Service struct {
	source ContentSource
	logger *zap.Logger
}

// New creates a search service.
func New(source ContentSource, logger *zap.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// Search loads candidate items, applies the filter pipeline, and returns
// ordered results. A corpus load failure surfaces as ErrDiscoveryUnavailable
// wrapping the cause; there are no partial results.
func (s *Service) Search(ctx context.Context, f filter.Filter) ([]result.Result, error) {
	items, err := s.loadCandidates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDiscoveryUnavailable, err)
	}

	results := make([]result.Result, 0, len(items))
	for i := range items {
		item := items[i]
		if !f.AllowsCategory(item.Category()) {
			continue
		}

		var score float64
		var matched []result.MatchedField
		if f.HasQuery() {
			score, matched = Score(&item, f.Query())
			if len(matched) == 0 {
				continue
			}
		}

		if !f.AllowsDifficulty(item.Difficulty()) {
			continue
		}
		if !f.AllowsRelevanceTags(item.RelevanceTags()) {
			continue
		}

		results = append(results, result.New(item, score, matched))
	}

	orderResults(results, f.HasQuery())
	return results, nil
}

// loadCandidates narrows at the store when the filter names exactly one
// category; otherwise the full corpus is loaded and filtered in memory.
func (s *Service) loadCandidates(ctx context.Context, f filter.Filter) ([]content.Item, error) {
	if c, ok := f.SingleCategory(); ok {
		items, err := s.source.LoadByCategory(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("load category %s: %w", c, err)
		}
		return items, nil
	}

	items, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return items, nil
}

// orderResults sorts query searches by descending relevance (stable, so
// equal scores keep corpus order) and browse listings by title.
func orderResults(results []result.Result, byScore bool) {
	if byScore {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score() > results[j].Score()
		})
		return
	}
	sort.SliceStable(results, func(i, j int) bool {
		return strings.ToLower(results[i].Item().Title()) < strings.ToLower(results[j].Item().Title())
	})
}

// Suggest returns up to limit titles, tags, and category names matching the
// partial query. Queries shorter than two characters return nothing, and any
// underlying failure is logged and swallowed: autocompletion is best-effort
// and never fails the caller.
func (s *Service) Suggest(ctx context.Context, partial string, limit int) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if len(partial) < MinSuggestQueryLen {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	items, err := s.source.LoadAll(ctx)
	if err != nil {
		s.logger.Warn("Suggest corpus load failed", zap.Error(err))
		return []string{}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(candidate string) bool {
		if !strings.Contains(strings.ToLower(candidate), partial) {
			return len(out) < limit
		}
		if _, dup := seen[candidate]; dup {
			return len(out) < limit
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
		return len(out) < limit
	}

	for i := range items {
		if !add(items[i].Title()) {
			return out
		}
	}
	for i := range items {
		for _, tag := range items[i].Tags() {
			if !add(tag) {
				return out
			}
		}
	}
	for _, c := range []content.Category{
		content.CognitiveBias, content.SocialInfluence, content.PricingPsychology,
		content.DecisionMaking, content.ConsumerBehavior, content.GrowthStrategy,
	} {
		if !add(c.DisplayName()) {
			return out
		}
	}

	return out
}
