package recommend

import (
	"strings"

	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/history"
)

// Similarity component weights. Each component is computed independently in
// [0,1], combined as a weighted sum, and the total is capped at 1.0.
const (
	categorySimWeight   = 0.30
	tagSimWeight        = 0.25
	historySimWeight    = 0.20
	difficultySimWeight = 0.10
)

// History affinity levels for the candidate item.
const (
	affinityExplored = 0.7
	affinityNeutral  = 0.5
)

// Similarity scores how related a candidate item is to a source item, in
// [0,1]. hist may be nil; the history term is then zero. Pure and stateless.
// Self-comparisons are excluded by callers, not here.
func Similarity(source, candidate *content.Item, hist *history.UserHistory) float64 {
	score := tagJaccard(source.Tags(), candidate.Tags()) * tagSimWeight

	if source.Category() == candidate.Category() {
		score += categorySimWeight
	}

	if hist != nil {
		score += historyAffinity(candidate, hist) * historySimWeight
	}

	score += difficultyProgression(source.Difficulty(), candidate.Difficulty()) * difficultySimWeight

	if score > 1 {
		return 1
	}
	return score
}

// tagJaccard is the Jaccard index of the two tag sets (case-insensitive).
// Zero when either set is empty.
func tagJaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[strings.ToLower(t)] = struct{}{}
	}
	union := make(map[string]struct{}, len(a)+len(b))
	for t := range set {
		union[t] = struct{}{}
	}
	var intersection int
	for _, t := range b {
		lower := strings.ToLower(t)
		if _, ok := set[lower]; ok {
			intersection++
			delete(set, lower) // count duplicates once
		}
		union[lower] = struct{}{}
	}
	return float64(intersection) / float64(len(union))
}

// historyAffinity rates the candidate against the user's reading pattern:
// already read is worthless, an explored category beats unexplored territory.
func historyAffinity(candidate *content.Item, hist *history.UserHistory) float64 {
	if hist.HasRead(candidate.ID()) {
		return 0
	}
	if hist.HasExplored(candidate.Category()) {
		return affinityExplored
	}
	return affinityNeutral
}

// difficultyProgression rewards same-level and one-step-up reading paths.
func difficultyProgression(source, candidate content.Difficulty) float64 {
	switch candidate.Ordinal() - source.Ordinal() {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case -1:
		return 0.6
	default:
		return 0.3
	}
}
