package analytics

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Build24-Tech/discovery-engine/internal/domain"
	domana "github.com/Build24-Tech/discovery-engine/internal/domain/analytics"
)

// Persisted hash field names. Day buckets use the "day:<date>" prefix.
const (
	fieldViews     = "views"
	fieldBookmarks = "bookmarks"
	fieldReadTime  = "read_time"
	dayFieldPrefix = "day:"
)

const storeTimeout = 2 * time.Second

// Tracker maintains per-item engagement counters and derives popularity and
// trending scores. Mutations are serialized per tracker with a mutex, so two
// concurrent view events for the same item never lose an increment. Every
// failure on the persistence path is logged and swallowed: tracking must
// never fail the user-facing action that triggered it.
type Tracker struct {
	mu      sync.Mutex
	records map[string]*domana.Record
	store   Store
	logger  *zap.Logger
	now     func() time.Time
}

// NewTracker creates a tracker. store may be nil (in-memory only).
func NewTracker(store Store, logger *zap.Logger) *Tracker {
	return &Tracker{
		records: make(map[string]*domana.Record),
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// RecordView registers one view with an optional session duration in seconds.
func (t *Tracker) RecordView(ctx context.Context, itemID string, sessionSeconds int64) {
	if itemID == "" {
		return
	}
	now := t.now().UTC()

	rec := t.getOrLoad(ctx, itemID, now)
	t.mu.Lock()
	rec.ApplyView(now, sessionSeconds)
	t.mu.Unlock()

	deltas := map[string]int64{
		fieldViews: 1,
		dayFieldPrefix + now.Format(domana.DayFormat): 1,
	}
	if sessionSeconds > 0 {
		deltas[fieldReadTime] = sessionSeconds
	}
	t.persist(itemID, deltas)
}

// RecordBookmark moves the bookmark counter up or down by one.
// Removal on an item with no bookmarks is a no-op, never a negative count.
func (t *Tracker) RecordBookmark(ctx context.Context, itemID string, add bool) {
	if itemID == "" {
		return
	}
	now := t.now().UTC()

	rec := t.getOrLoad(ctx, itemID, now)
	t.mu.Lock()
	before := rec.BookmarkCount()
	rec.ApplyBookmark(now, add)
	delta := rec.BookmarkCount() - before
	t.mu.Unlock()

	if delta != 0 {
		t.persist(itemID, map[string]int64{fieldBookmarks: delta})
	}
}

// RecordCompletion adds the reported read time in seconds.
func (t *Tracker) RecordCompletion(ctx context.Context, itemID string, readSeconds int64) {
	if itemID == "" || readSeconds <= 0 {
		return
	}
	now := t.now().UTC()

	rec := t.getOrLoad(ctx, itemID, now)
	t.mu.Lock()
	rec.ApplyCompletion(now, readSeconds)
	t.mu.Unlock()

	t.persist(itemID, map[string]int64{fieldReadTime: readSeconds})
}

// Record returns a snapshot copy of the analytics record, ok=false when the
// item has never been tracked.
func (t *Tracker) Record(itemID string) (domana.Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[itemID]
	if !ok {
		return domana.Record{}, false
	}
	return *rec, true
}

// Trending ranks tracked items by short-window momentum, descending.
// The score is derived at request time and never stored.
func (t *Tracker) Trending(limit int) []domana.TrendEntry {
	now := t.now().UTC()

	t.mu.Lock()
	entries := make([]domana.TrendEntry, 0, len(t.records))
	for id, rec := range t.records {
		entries = append(entries, domana.TrendEntry{ItemID: id, Score: rec.TrendScoreAt(now)})
	}
	t.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ItemID < entries[j].ItemID
	})
	if len(entries) > limit && limit > 0 {
		entries = entries[:limit]
	}
	return entries
}

// getOrLoad returns the in-memory record for an item, hydrating it from the
// store on first sight. The store read runs outside the tracker mutex so a
// slow load never stalls events for unrelated items; a concurrent first
// touch of the same item is settled by re-checking under the lock, where
// the first insert wins. Load failures fall back to a fresh record:
// counters restart rather than block the event.
func (t *Tracker) getOrLoad(ctx context.Context, itemID string, now time.Time) *domana.Record {
	t.mu.Lock()
	if rec, ok := t.records[itemID]; ok {
		t.mu.Unlock()
		return rec
	}
	t.mu.Unlock()

	rec := domana.NewRecord(itemID, now)
	if t.store != nil {
		loadCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		fields, err := t.store.HGetAll(loadCtx, recordKey(itemID))
		cancel()
		if err != nil {
			t.logger.Warn("Failed to load analytics record",
				zap.String("item_id", itemID), zap.Error(err))
		} else if len(fields) > 0 {
			rec = recordFromFields(itemID, fields, now)
		}
	}

	t.mu.Lock()
	if existing, ok := t.records[itemID]; ok {
		t.mu.Unlock()
		return existing
	}
	t.records[itemID] = rec
	t.mu.Unlock()
	return rec
}

// persist applies counter deltas to the store, write-behind.
// Uses a background context so store writes never block or outlive-cancel
// the triggering request.
func (t *Tracker) persist(itemID string, deltas map[string]int64) {
	if t.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	key := recordKey(itemID)
	for field, delta := range deltas {
		if err := t.store.HIncrBy(ctx, key, field, delta); err != nil {
			t.logger.Warn("Failed to persist analytics counter",
				zap.String("key", key), zap.String("field", field), zap.Error(err))
		}
	}
}

func recordKey(itemID string) string {
	return domain.KeyPrefix + "analytics:" + itemID
}

// recordFromFields rebuilds a record from its persisted hash.
func recordFromFields(itemID string, fields map[string]string, now time.Time) *domana.Record {
	daily := make(map[string]int64)
	var views, bookmarks, readTime int64
	for field, raw := range fields {
		val, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch {
		case field == fieldViews:
			views = val
		case field == fieldBookmarks:
			bookmarks = val
		case field == fieldReadTime:
			readTime = val
		case strings.HasPrefix(field, dayFieldPrefix):
			daily[strings.TrimPrefix(field, dayFieldPrefix)] = val
		}
	}
	if bookmarks < 0 {
		bookmarks = 0
	}
	return domana.Reconstruct(itemID, views, bookmarks, readTime, daily, now)
}
