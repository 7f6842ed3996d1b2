package content

import (
	"context"
	"testing"

	domcontent "github.com/Build24-Tech/discovery-engine/internal/domain/content"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn      func(ctx context.Context, key string) ([]byte, error)
	getMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	setFn      func(ctx context.Context, key string, value []byte) error
	delFn      func(ctx context.Context, key string) error
	scanFn     func(ctx context.Context, pattern string) ([]string, error)
	saddFn     func(ctx context.Context, key string, members ...string) error
	sremFn     func(ctx context.Context, key string, members ...string) error
	smembersFn func(ctx context.Context, key string) ([]string, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) error {
	if m.sremFn != nil {
		return m.sremFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

func testItem(t *testing.T, id string) domcontent.Item {
	t.Helper()
	item, err := domcontent.New(domcontent.Params{
		ID:            id,
		Title:         "Anchoring Bias",
		Category:      domcontent.PricingPsychology,
		Summary:       "First numbers set the frame",
		Difficulty:    domcontent.Beginner,
		RelevanceTags: []domcontent.RelevanceTag{domcontent.TagPricing},
		ReadTime:      4,
		Tags:          []string{"anchoring", "pricing"},
	})
	if err != nil {
		t.Fatalf("testItem: %v", err)
	}
	return item
}
