package recommend

import (
	"context"
	"testing"

	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/history"
	domrec "github.com/Build24-Tech/discovery-engine/internal/domain/recommend"
)

type mockContents struct {
	items []content.Item
	err   error
	calls int
}

func (m *mockContents) LoadAll(_ context.Context) ([]content.Item, error) {
	m.calls++
	return m.items, m.err
}

func (m *mockContents) LoadByCategory(_ context.Context, c content.Category) ([]content.Item, error) {
	m.calls++
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

type mockHistories struct {
	hist  history.UserHistory
	found bool
	err   error
}

func (m *mockHistories) LoadHistory(_ context.Context, _ string) (history.UserHistory, bool, error) {
	return m.hist, m.found, m.err
}

type mockRefs struct {
	byPool map[domrec.Pool][]domrec.Reference
	err    error
}

func (m *mockRefs) LoadReferences(
	_ context.Context, pool domrec.Pool, _ []content.Category,
) ([]domrec.Reference, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byPool[pool], nil
}

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

func biasCorpus(t *testing.T) []content.Item {
	t.Helper()
	return []content.Item{
		mustItem(t, content.Params{
			ID: "anchoring-bias", Title: "Anchoring Bias", Category: content.CognitiveBias,
			Tags: []string{"pricing", "negotiation"},
		}),
		mustItem(t, content.Params{
			ID: "decoy-effect", Title: "Decoy Effect", Category: content.CognitiveBias,
			Tags: []string{"pricing", "choice"},
		}),
		mustItem(t, content.Params{
			ID: "social-proof", Title: "Social Proof", Category: content.SocialInfluence,
			Tags: []string{"testimonials", "trust"},
		}),
		mustItem(t, content.Params{
			ID: "funnel-math", Title: "Funnel Math", Category: content.GrowthStrategy,
			Difficulty: content.Advanced, Tags: []string{"metrics"},
		}),
	}
}
