package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/filter"
)

// mockSource implements ContentSource for tests and counts adapter calls.
type mockSource struct {
	items          []content.Item
	err            error
	loadAllCalls   int
	loadByCatCalls int
	lastCategory   content.Category
}

func (m *mockSource) LoadAll(_ context.Context) ([]content.Item, error) {
	m.loadAllCalls++
	return m.items, m.err
}

func (m *mockSource) LoadByCategory(_ context.Context, c content.Category) ([]content.Item, error) {
	m.loadByCatCalls++
	m.lastCategory = c
	if m.err != nil {
		return nil, m.err
	}
	var out []content.Item
	for i := range m.items {
		if m.items[i].Category() == c {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *mockSource) calls() int { return m.loadAllCalls + m.loadByCatCalls }

func mustItem(t *testing.T, p content.Params) content.Item {
	t.Helper()
	if p.Difficulty == "" {
		p.Difficulty = content.Beginner
	}
	item, err := content.New(p)
	if err != nil {
		t.Fatalf("content.New(%s): %v", p.ID, err)
	}
	return item
}

// theoryCorpus is the three-item fixture used across search tests.
func theoryCorpus(t *testing.T) []content.Item {
	t.Helper()
	return []content.Item{
		mustItem(t, content.Params{
			ID:       "anchoring-bias",
			Title:    "Anchoring Bias",
			Category: content.CognitiveBias,
			Summary:  "The first number a buyer sees anchors every later judgment.",
			Tags:     []string{"anchoring", "pricing", "negotiation"},
		}),
		mustItem(t, content.Params{
			ID:       "social-proof",
			Title:    "Social Proof",
			Category: content.SocialInfluence,
			Summary:  "People copy the choices they see others make.",
			Tags:     []string{"testimonials", "trust"},
		}),
		mustItem(t, content.Params{
			ID:         "loss-aversion",
			Title:      "Loss Aversion",
			Category:   content.CognitiveBias,
			Summary:    "Losses loom larger than equivalent gains.",
			Difficulty: content.Intermediate,
			Tags:       []string{"retention", "framing"},
		}),
	}
}

func mustFilter(
	t *testing.T, query string,
	cats []content.Category, diffs []content.Difficulty, tags []content.RelevanceTag,
) filter.Filter {
	t.Helper()
	f, err := filter.New(query, cats, diffs, tags)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	return f
}

func newTestService(items []content.Item) (*Service, *mockSource) {
	src := &mockSource{items: items}
	return New(src, zap.NewNop()), src
}
