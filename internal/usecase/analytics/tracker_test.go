package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

var t0 = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// mockStore implements Store and records every increment.
type mockStore struct {
	mu       sync.Mutex
	incrs    map[string]map[string]int64
	loaded   map[string]map[string]string
	incrErr  error
	loadErr  error
	getCalls int
}

func newMockStore() *mockStore {
	return &mockStore{
		incrs:  make(map[string]map[string]int64),
		loaded: make(map[string]map[string]string),
	}
}

func (m *mockStore) HIncrBy(_ context.Context, key, field string, val int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.incrErr != nil {
		return m.incrErr
	}
	if m.incrs[key] == nil {
		m.incrs[key] = make(map[string]int64)
	}
	m.incrs[key][field] += val
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loaded[key], nil
}

func newTestTracker(store Store) *Tracker {
	tr := NewTracker(store, zap.NewNop())
	tr.now = func() time.Time { return t0 }
	return tr
}

func TestRecordView(t *testing.T) {
	tr := newTestTracker(nil)
	ctx := context.Background()

	tr.RecordView(ctx, "anchoring-bias", 90)
	tr.RecordView(ctx, "anchoring-bias", 0)

	rec, ok := tr.Record("anchoring-bias")
	if !ok {
		t.Fatal("record not created")
	}
	if rec.ViewCount() != 2 {
		t.Errorf("ViewCount() = %d, want 2", rec.ViewCount())
	}
	if rec.TotalReadTime() != 90 {
		t.Errorf("TotalReadTime() = %d, want 90", rec.TotalReadTime())
	}
	if rec.DailyViews("2026-03-10") != 2 {
		t.Errorf("DailyViews(today) = %d, want 2", rec.DailyViews("2026-03-10"))
	}
}

func TestRecordBookmark_NeverNegative(t *testing.T) {
	tr := newTestTracker(nil)
	ctx := context.Background()

	tr.RecordBookmark(ctx, "x", false)
	tr.RecordBookmark(ctx, "x", false)

	rec, _ := tr.Record("x")
	if rec.BookmarkCount() != 0 {
		t.Errorf("BookmarkCount() = %d, want 0", rec.BookmarkCount())
	}
}

func TestRecordBookmark_NoOpRemoveNotPersisted(t *testing.T) {
	store := newMockStore()
	tr := newTestTracker(store)

	tr.RecordBookmark(context.Background(), "x", false)

	if fields := store.incrs[recordKey("x")]; len(fields) != 0 {
		t.Errorf("clamped removal wrote deltas: %v", fields)
	}
}

func TestRecordView_Persists(t *testing.T) {
	store := newMockStore()
	tr := newTestTracker(store)

	tr.RecordView(context.Background(), "x", 60)

	fields := store.incrs[recordKey("x")]
	if fields[fieldViews] != 1 {
		t.Errorf("persisted views = %d, want 1", fields[fieldViews])
	}
	if fields[fieldReadTime] != 60 {
		t.Errorf("persisted read_time = %d, want 60", fields[fieldReadTime])
	}
	if fields[dayFieldPrefix+"2026-03-10"] != 1 {
		t.Errorf("persisted day bucket = %d, want 1", fields[dayFieldPrefix+"2026-03-10"])
	}
}

func TestTracker_StoreFailuresSwallowed(t *testing.T) {
	store := newMockStore()
	store.incrErr = errors.New("store down")
	store.loadErr = errors.New("store down")
	tr := newTestTracker(store)
	ctx := context.Background()

	// none of these may panic or surface the error
	tr.RecordView(ctx, "x", 10)
	tr.RecordBookmark(ctx, "x", true)
	tr.RecordCompletion(ctx, "x", 30)

	rec, ok := tr.Record("x")
	if !ok {
		t.Fatal("in-memory record missing despite store failure")
	}
	if rec.ViewCount() != 1 || rec.BookmarkCount() != 1 {
		t.Errorf("counters = %d/%d, want 1/1", rec.ViewCount(), rec.BookmarkCount())
	}
}

func TestTracker_HydratesFromStore(t *testing.T) {
	store := newMockStore()
	store.loaded[recordKey("x")] = map[string]string{
		fieldViews:     "7",
		fieldBookmarks: "2",
		fieldReadTime:  "420",

		dayFieldPrefix + "2026-03-09": "3",
	}
	tr := newTestTracker(store)

	tr.RecordView(context.Background(), "x", 0)

	rec, _ := tr.Record("x")
	if rec.ViewCount() != 8 {
		t.Errorf("ViewCount() = %d, want 8 (7 hydrated + 1)", rec.ViewCount())
	}
	if rec.BookmarkCount() != 2 {
		t.Errorf("BookmarkCount() = %d, want 2", rec.BookmarkCount())
	}
	if rec.DailyViews("2026-03-09") != 3 {
		t.Errorf("DailyViews(yesterday) = %d, want 3", rec.DailyViews("2026-03-09"))
	}
	if store.getCalls != 1 {
		t.Errorf("HGetAll calls = %d, want 1 (hydrate once)", store.getCalls)
	}
}

func TestTrending(t *testing.T) {
	tr := newTestTracker(nil)
	ctx := context.Background()

	yesterday := t0.AddDate(0, 0, -1)
	tr.now = func() time.Time { return yesterday }
	tr.RecordView(ctx, "steady", 0)
	tr.RecordView(ctx, "steady", 0)
	tr.RecordView(ctx, "fading", 0)
	tr.RecordView(ctx, "fading", 0)
	tr.RecordView(ctx, "fading", 0)

	tr.now = func() time.Time { return t0 }
	tr.RecordView(ctx, "steady", 0)
	tr.RecordView(ctx, "steady", 0)
	for i := 0; i < 5; i++ {
		tr.RecordView(ctx, "rising", 0)
	}

	trending := tr.Trending(2)
	if len(trending) != 2 {
		t.Fatalf("got %d entries, want 2", len(trending))
	}
	// rising: 5 + 5*0.5 = 7.5; steady: 2 + 0 = 2; fading: 0 - 1.5 = -1.5
	if trending[0].ItemID != "rising" || trending[0].Score != 7.5 {
		t.Errorf("trending[0] = %+v, want rising/7.5", trending[0])
	}
	if trending[1].ItemID != "steady" || trending[1].Score != 2 {
		t.Errorf("trending[1] = %+v, want steady/2", trending[1])
	}
}

func TestTracker_ConcurrentViews(t *testing.T) {
	tr := newTestTracker(nil)
	ctx := context.Background()

	const goroutines = 32
	const viewsEach = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < viewsEach; i++ {
				tr.RecordView(ctx, "hot", 1)
			}
		}()
	}
	wg.Wait()

	rec, _ := tr.Record("hot")
	if rec.ViewCount() != goroutines*viewsEach {
		t.Errorf("ViewCount() = %d, want %d (no dropped increments)",
			rec.ViewCount(), goroutines*viewsEach)
	}
}

func TestRecordCompletion_IgnoresNonPositive(t *testing.T) {
	tr := newTestTracker(nil)
	ctx := context.Background()

	tr.RecordCompletion(ctx, "x", 0)
	tr.RecordCompletion(ctx, "x", -5)

	if _, ok := tr.Record("x"); ok {
		t.Error("non-positive completion created a record")
	}
}

// blockingStore stalls HGetAll for one key until released.
type blockingStore struct {
	blockKey string
	entered  chan struct{}
	release  chan struct{}
}

func (s *blockingStore) HIncrBy(context.Context, string, string, int64) error { return nil }

func (s *blockingStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if key == s.blockKey {
		close(s.entered)
		<-s.release
	}
	return nil, nil
}

func TestTracker_SlowLoadDoesNotBlockOtherItems(t *testing.T) {
	store := &blockingStore{
		blockKey: recordKey("cold"),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	tr := newTestTracker(store)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		tr.RecordView(ctx, "cold", 0)
		close(done)
	}()
	<-store.entered // cold hydration is now stuck inside the store

	tr.RecordView(ctx, "hot", 0)
	tr.RecordView(ctx, "hot", 0)
	rec, ok := tr.Record("hot")
	if !ok || rec.ViewCount() != 2 {
		t.Fatalf("hot views while cold load stalled: rec=%v ok=%v, want 2", rec, ok)
	}

	close(store.release)
	<-done
	if rec, ok := tr.Record("cold"); !ok || rec.ViewCount() != 1 {
		t.Errorf("cold record after load: ok=%v, want 1 view", ok)
	}
}
