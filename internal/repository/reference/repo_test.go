package reference

import (
	"context"
	"errors"
	"testing"

	"github.com/Build24-Tech/discovery-engine/internal/db"
	"github.com/Build24-Tech/discovery-engine/internal/domain"
	domcontent "github.com/Build24-Tech/discovery-engine/internal/domain/content"
	domrec "github.com/Build24-Tech/discovery-engine/internal/domain/recommend"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

const poolBlob = `[
	{"id":"tpl-1","title":"Pricing Page Teardown","url":"https://example.com/tpl-1","category":"pricing-psychology"},
	{"id":"tpl-2","title":"Launch Checklist","category":"growth-strategy"}
]`

func TestLoadReferences_UnknownPool(t *testing.T) {
	repo := New(&mockStore{})

	_, err := repo.LoadReferences(context.Background(), domrec.Pool("newsletter"), nil)
	if !errors.Is(err, domain.ErrUnknownPool) {
		t.Fatalf("expected ErrUnknownPool, got %v", err)
	}
}

func TestLoadReferences_AbsentPoolIsEmpty(t *testing.T) {
	repo := New(&mockStore{})

	refs, err := repo.LoadReferences(context.Background(), domrec.PoolTemplates, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected empty pool, got %d refs", len(refs))
	}
}

func TestLoadReferences_All(t *testing.T) {
	repo := New(&mockStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if key != "build24:refs:templates" {
				t.Errorf("unexpected key %q", key)
			}
			return []byte(poolBlob), nil
		},
	})

	refs, err := repo.LoadReferences(context.Background(), domrec.PoolTemplates, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].ID() != "tpl-1" || refs[0].Category() != domcontent.PricingPsychology {
		t.Errorf("unexpected ref: %+v", refs[0])
	}
}

func TestLoadReferences_CategoryNarrowing(t *testing.T) {
	repo := New(&mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte(poolBlob), nil
		},
	})

	refs, err := repo.LoadReferences(context.Background(), domrec.PoolTemplates,
		[]domcontent.Category{domcontent.GrowthStrategy})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 1 || refs[0].ID() != "tpl-2" {
		t.Errorf("unexpected refs: %d", len(refs))
	}
}

func TestSave_RoundTrip(t *testing.T) {
	var saved []byte
	ms := &mockStore{
		setFn: func(_ context.Context, key string, value []byte) error {
			if key != "build24:refs:case-studies" {
				t.Errorf("unexpected key %q", key)
			}
			saved = value
			return nil
		},
	}
	repo := New(ms)

	in := []domrec.Reference{
		domrec.NewReference("cs-1", "Freemium Conversion Study", "", domcontent.ConsumerBehavior),
	}
	if err := repo.Save(context.Background(), domrec.PoolCaseStudies, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) { return saved, nil }
	refs, err := repo.LoadReferences(context.Background(), domrec.PoolCaseStudies, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 1 || refs[0].Title() != "Freemium Conversion Study" {
		t.Errorf("round trip mismatch: %+v", refs)
	}
}
