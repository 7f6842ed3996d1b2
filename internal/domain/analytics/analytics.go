package analytics

import (
	"math"
	"time"
)

// DayFormat keys the daily view histogram by UTC calendar date.
const DayFormat = "2006-01-02"

// Popularity weights and decay. popularity = round((views + bookmarks*3) * recency),
// recency = max(0.1, 1 - daysSinceLastUpdate*0.1).
const (
	viewWeight     = 1.0
	bookmarkWeight = 3.0
	decayPerDay    = 0.1
	decayFloor     = 0.1
	trendMomentum  = 0.5
)

// Record accumulates engagement counters for one content item.
// The popularity score is always a deterministic function of the other
// fields and the clock; it is recomputed on every mutation, never set
// independently. Records are created lazily on the first view event and
// are not safe for concurrent use; the tracker serializes access.
type Record struct {
	itemID        string
	viewCount     int64
	bookmarkCount int64
	totalReadTime int64 // seconds
	dailyViews    map[string]int64
	popularity    int64
	lastUpdated   time.Time
}

// NewRecord creates an empty record for an item.
func NewRecord(itemID string, now time.Time) *Record {
	return &Record{
		itemID:      itemID,
		dailyViews:  make(map[string]int64),
		lastUpdated: now,
	}
}

// Reconstruct rebuilds a record from persisted counters (storage hydration).
func Reconstruct(
	itemID string,
	viewCount, bookmarkCount, totalReadTime int64,
	dailyViews map[string]int64,
	lastUpdated time.Time,
) *Record {
	if dailyViews == nil {
		dailyViews = make(map[string]int64)
	}
	r := &Record{
		itemID:        itemID,
		viewCount:     viewCount,
		bookmarkCount: bookmarkCount,
		totalReadTime: totalReadTime,
		dailyViews:    dailyViews,
		lastUpdated:   lastUpdated,
	}
	r.popularity = r.PopularityAt(lastUpdated)
	return r
}

// ApplyView records one view with an optional session duration in seconds.
func (r *Record) ApplyView(now time.Time, sessionSeconds int64) {
	r.viewCount++
	if sessionSeconds > 0 {
		r.totalReadTime += sessionSeconds
	}
	r.dailyViews[now.UTC().Format(DayFormat)]++
	r.touch(now)
}

// ApplyBookmark moves the bookmark counter by one in either direction.
// Removal never drives the counter below zero.
func (r *Record) ApplyBookmark(now time.Time, add bool) {
	if add {
		r.bookmarkCount++
	} else if r.bookmarkCount > 0 {
		r.bookmarkCount--
	}
	r.touch(now)
}

// ApplyCompletion adds the reported read time in seconds.
func (r *Record) ApplyCompletion(now time.Time, readSeconds int64) {
	if readSeconds > 0 {
		r.totalReadTime += readSeconds
	}
	r.touch(now)
}

// touch recomputes popularity against the pre-mutation lastUpdated, then
// advances lastUpdated to the event time.
func (r *Record) touch(now time.Time) {
	r.popularity = r.PopularityAt(now)
	r.lastUpdated = now
}

// PopularityAt computes the time-decayed popularity score at the given time
// without mutating the record.
func (r *Record) PopularityAt(now time.Time) int64 {
	raw := float64(r.viewCount)*viewWeight + float64(r.bookmarkCount)*bookmarkWeight
	return int64(math.Round(raw * r.recencyFactor(now)))
}

func (r *Record) recencyFactor(now time.Time) float64 {
	days := now.Sub(r.lastUpdated).Hours() / 24
	if days < 0 {
		days = 0
	}
	factor := 1 - days*decayPerDay
	if factor < decayFloor {
		return decayFloor
	}
	return factor
}

// TrendScoreAt computes the short-window momentum score:
// today + (today - yesterday) * 0.5. It is derived on demand and never stored.
func (r *Record) TrendScoreAt(now time.Time) float64 {
	today := r.dailyViews[now.UTC().Format(DayFormat)]
	yesterday := r.dailyViews[now.UTC().AddDate(0, 0, -1).Format(DayFormat)]
	return float64(today) + float64(today-yesterday)*trendMomentum
}

// ItemID returns the item identifier.
func (r *Record) ItemID() string { return r.itemID }

// ViewCount returns the monotonic view counter.
func (r *Record) ViewCount() int64 { return r.viewCount }

// BookmarkCount returns the bookmark counter (never negative).
func (r *Record) BookmarkCount() int64 { return r.bookmarkCount }

// TotalReadTime returns accumulated read time in seconds.
func (r *Record) TotalReadTime() int64 { return r.totalReadTime }

// DailyViews returns the view count for a UTC calendar date.
func (r *Record) DailyViews(day string) int64 { return r.dailyViews[day] }

// PopularityScore returns the stored popularity score as of the last mutation.
func (r *Record) PopularityScore() int64 { return r.popularity }

// AverageReadTime returns round(totalReadTime / viewCount), 0 when unviewed.
func (r *Record) AverageReadTime() int64 {
	if r.viewCount == 0 {
		return 0
	}
	return int64(math.Round(float64(r.totalReadTime) / float64(r.viewCount)))
}

// LastUpdated returns the time of the last applied event.
func (r *Record) LastUpdated() time.Time { return r.lastUpdated }

// TrendEntry is one row of the trending ranking.
type TrendEntry struct {
	ItemID string
	Score  float64
}
