package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Build24-Tech/discovery-engine/internal/domain"
	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/history"
	domrec "github.com/Build24-Tech/discovery-engine/internal/domain/recommend"
)

// Defaults and pool allocation. Each pool is gathered independently with a
// ceil share of the limit, so the merged set can exceed it; the final
// truncation takes the first N after the merge sort.
const (
	DefaultRelatedLimit   = 5
	DefaultRecommendLimit = 10

	primaryShare   = 0.4
	templateShare  = 0.4
	caseStudyShare = 0.2
	primaryBase    = 0.8
	templateScore  = 0.6
	caseStudyScore = 0.5
)

// Service ranks related content and aggregates cross-type recommendations.
type Service struct {
	contents ContentSource
	hists    HistorySource
	refs     ReferenceSource
}

// New creates a recommendation service.
func New(contents ContentSource, hists HistorySource, refs ReferenceSource) *Service {
	return &Service{contents: contents, hists: hists, refs: refs}
}

// Related returns the top-limit items most similar to the given item,
// never including the item itself.
func (s *Service) Related(ctx context.Context, itemID string, limit int) ([]content.Item, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	corpus, err := s.contents.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load corpus: %w", domain.ErrDiscoveryUnavailable, err)
	}

	var source *content.Item
	for i := range corpus {
		if corpus[i].ID() == itemID {
			source = &corpus[i]
			break
		}
	}
	if source == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrContentNotFound, itemID)
	}

	type scored struct {
		item  content.Item
		score float64
	}
	candidates := make([]scored, 0, len(corpus)-1)
	for i := range corpus {
		if corpus[i].ID() == itemID {
			continue
		}
		candidates = append(candidates, scored{
			item:  corpus[i],
			score: Similarity(source, &corpus[i], nil),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	items := make([]content.Item, len(candidates))
	for i, c := range candidates {
		items[i] = c.item
	}
	return items, nil
}

// Recommendations merges primary content with the two secondary reference
// pools into one ranked list of at most limit entries. Items the user has
// already read are excluded before scoring. Any store failure fails the
// whole request; there are no partial recommendation lists.
func (s *Service) Recommendations(
	ctx context.Context, categories []content.Category, userID string, limit int,
) ([]domrec.Score, error) {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	var hist *history.UserHistory
	if userID != "" && s.hists != nil {
		h, ok, err := s.hists.LoadHistory(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: load history %s: %w", domain.ErrDiscoveryUnavailable, userID, err)
		}
		if ok {
			hist = &h
		}
	}

	primary, err := s.primaryPool(ctx, categories, hist, share(limit, primaryShare))
	if err != nil {
		return nil, err
	}

	templates, err := s.referencePool(ctx, domrec.PoolTemplates, categories,
		share(limit, templateShare), templateScore)
	if err != nil {
		return nil, err
	}

	caseStudies, err := s.referencePool(ctx, domrec.PoolCaseStudies, categories,
		share(limit, caseStudyShare), caseStudyScore)
	if err != nil {
		return nil, err
	}

	merged := make([]domrec.Score, 0, len(primary)+len(templates)+len(caseStudies))
	merged = append(merged, primary...)
	merged = append(merged, templates...)
	merged = append(merged, caseStudies...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Value() > merged[j].Value()
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// primaryPool gathers content items in the target categories, read items
// excluded, scored pairwise against the user's read set when history is
// present and at the flat base score otherwise.
func (s *Service) primaryPool(
	ctx context.Context, categories []content.Category,
	hist *history.UserHistory, quota int,
) ([]domrec.Score, error) {
	corpus, err := s.contents.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load corpus: %w", domain.ErrDiscoveryUnavailable, err)
	}

	var read []content.Item
	if hist != nil {
		for i := range corpus {
			if hist.HasRead(corpus[i].ID()) {
				read = append(read, corpus[i])
			}
		}
	}

	scores := make([]domrec.Score, 0, len(corpus))
	for i := range corpus {
		item := corpus[i]
		if !inCategories(item.Category(), categories) {
			continue
		}
		if hist != nil && hist.HasRead(item.ID()) {
			continue
		}

		score := primaryBase
		if len(read) > 0 {
			score = 0
			for j := range read {
				if sim := Similarity(&read[j], &item, hist); sim > score {
					score = sim
				}
			}
		}
		scores = append(scores, domrec.NewItemScore(item, score))
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Value() > scores[j].Value() })
	if len(scores) > quota {
		scores = scores[:quota]
	}
	return scores, nil
}

func (s *Service) referencePool(
	ctx context.Context, pool domrec.Pool, categories []content.Category,
	quota int, score float64,
) ([]domrec.Score, error) {
	if s.refs == nil {
		return nil, nil
	}
	refs, err := s.refs.LoadReferences(ctx, pool, categories)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", domain.ErrDiscoveryUnavailable, pool, err)
	}
	if len(refs) > quota {
		refs = refs[:quota]
	}
	out := make([]domrec.Score, len(refs))
	for i, r := range refs {
		out[i] = domrec.NewRefScore(r, pool.RefType(), score)
	}
	return out, nil
}

func share(limit int, fraction float64) int {
	return int(math.Ceil(float64(limit) * fraction))
}

func inCategories(c content.Category, set []content.Category) bool {
	if len(set) == 0 {
		return true
	}
	for _, sc := range set {
		if sc == c {
			return true
		}
	}
	return false
}
