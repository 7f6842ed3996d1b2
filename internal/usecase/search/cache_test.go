package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newCachedService(t *testing.T) (*CachedService, *mockSource) {
	t.Helper()
	src := &mockSource{items: theoryCorpus(t)}
	return NewCached(New(src, zap.NewNop()), DefaultTTL, nil), src
}

func TestCachedSearch_SecondCallHitsCache(t *testing.T) {
	cached, src := newCachedService(t)
	ctx := context.Background()
	f := mustFilter(t, "anchoring", nil, nil, nil)

	first, err := cached.Search(ctx, f)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	second, err := cached.Search(ctx, f)
	if err != nil {
		t.Fatalf("Search (cached): %v", err)
	}

	if src.calls() != 1 {
		t.Errorf("adapter calls = %d, want 1", src.calls())
	}
	if len(first) != len(second) {
		t.Errorf("cached result diverged: %d vs %d", len(first), len(second))
	}
}

func TestCachedSearch_EquivalentFiltersShareEntry(t *testing.T) {
	cached, src := newCachedService(t)
	ctx := context.Background()

	if _, err := cached.Search(ctx, mustFilter(t, "  Anchoring ", nil, nil, nil)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, err := cached.Search(ctx, mustFilter(t, "anchoring", nil, nil, nil)); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if src.calls() != 1 {
		t.Errorf("adapter calls = %d, want 1 (normalized filters share a key)", src.calls())
	}
}

func TestCachedSearch_ExpiredEntryRecomputes(t *testing.T) {
	cached, src := newCachedService(t)
	ctx := context.Background()
	f := mustFilter(t, "anchoring", nil, nil, nil)

	if _, err := cached.Search(ctx, f); err != nil {
		t.Fatalf("Search: %v", err)
	}

	// Backdate the entry beyond the TTL; lazy expiry happens at read time.
	cached.mu.Lock()
	for k, e := range cached.entries {
		e.insertedAt = time.Now().Add(-DefaultTTL - time.Second)
		cached.entries[k] = e
	}
	cached.mu.Unlock()

	if _, err := cached.Search(ctx, f); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if src.calls() != 2 {
		t.Errorf("adapter calls = %d, want 2 after expiry", src.calls())
	}
}

func TestCachedSearch_ClearCache(t *testing.T) {
	cached, src := newCachedService(t)
	ctx := context.Background()
	f := mustFilter(t, "anchoring", nil, nil, nil)

	if _, err := cached.Search(ctx, f); err != nil {
		t.Fatalf("Search: %v", err)
	}
	cached.ClearCache()
	if cached.Len() != 0 {
		t.Errorf("Len() = %d after clear", cached.Len())
	}
	if _, err := cached.Search(ctx, f); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if src.calls() != 2 {
		t.Errorf("adapter calls = %d, want 2 after clear", src.calls())
	}
}

func TestCachedSearch_FailureNotCached(t *testing.T) {
	src := &mockSource{err: errors.New("down")}
	cached := NewCached(New(src, zap.NewNop()), DefaultTTL, nil)
	ctx := context.Background()
	f := mustFilter(t, "anchoring", nil, nil, nil)

	if _, err := cached.Search(ctx, f); err == nil {
		t.Fatal("expected error")
	}
	if cached.Len() != 0 {
		t.Errorf("Len() = %d, failed lookup must not be cached", cached.Len())
	}

	// source recovers; next call recomputes
	src.err = nil
	src.items = theoryCorpus(t)
	results, err := cached.Search(ctx, f)
	if err != nil {
		t.Fatalf("Search after recovery: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results after recovery, want 1", len(results))
	}
}
