package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Build24-Tech/discovery-engine/internal/db"
	dbRedis "github.com/Build24-Tech/discovery-engine/internal/db/redis"
	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/filter"
	contentrepo "github.com/Build24-Tech/discovery-engine/internal/repository/content"
	historyrepo "github.com/Build24-Tech/discovery-engine/internal/repository/history"
	referencerepo "github.com/Build24-Tech/discovery-engine/internal/repository/reference"
	analyticsuc "github.com/Build24-Tech/discovery-engine/internal/usecase/analytics"
	recommenduc "github.com/Build24-Tech/discovery-engine/internal/usecase/recommend"
	searchuc "github.com/Build24-Tech/discovery-engine/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Engine is the embeddable discovery entry point.
type Engine struct {
	store     db.Store
	searchSvc *searchuc.Service
	cached    *searchuc.CachedService
	recSvc    *recommenduc.Service
	tracker   *analyticsuc.Tracker
}

// New creates an Engine. Configure exactly one content backend: WithRedis /
// WithRedisCluster for a database-backed engine, or WithSources for a static
// in-memory corpus.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 && len(cfg.corpus) == 0 {
		return nil, errors.New("discovery: content backend required (use WithRedis or WithSources)")
	}
	if len(cfg.addrs) > 0 && len(cfg.corpus) > 0 {
		return nil, errors.New("discovery: WithRedis and WithSources are mutually exclusive")
	}

	var (
		store     db.Store
		source    searchuc.ContentSource
		histories recommenduc.HistorySource
		refs      recommenduc.ReferenceSource
		analytics analyticsuc.Store
	)
	if len(cfg.addrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("discovery: create redis store: %w", err)
		}
		ctx := context.Background()
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("discovery: database not ready: %w", err)
		}
		store = s
		source = contentrepo.New(s)
		histories = historyrepo.New(s)
		refs = referencerepo.New(s)
		analytics = s
	} else {
		mem, err := newMemorySource(cfg.corpus)
		if err != nil {
			return nil, fmt.Errorf("discovery: %w", err)
		}
		source = mem
	}

	searchSvc := searchuc.New(source, logger)
	return &Engine{
		store:     store,
		searchSvc: searchSvc,
		cached:    searchuc.NewCached(searchSvc, cfg.cacheTTL, nil),
		recSvc:    recommenduc.New(source, histories, refs),
		tracker:   analyticsuc.NewTracker(analytics, logger),
	}, nil
}

// Close releases the database connection, if any.
func (e *Engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// Ping checks database connectivity. In-memory engines always report healthy.
func (e *Engine) Ping(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a relevance-scored search, served from cache when a result set
// for an equivalent request is still fresh.
func (e *Engine) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	f, err := toInternalFilter(req)
	if err != nil {
		return nil, err
	}
	results, err := e.cached.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromSearchResults(results), nil
}

// Suggest returns up to limit autocompletion candidates for a partial query.
// Best-effort: failures yield an empty slice.
func (e *Engine) Suggest(ctx context.Context, partial string, limit int) []string {
	return e.searchSvc.Suggest(ctx, partial, limit)
}

// Related returns the items most similar to the given one.
func (e *Engine) Related(ctx context.Context, itemID string, limit int) ([]Item, error) {
	items, err := e.recSvc.Related(ctx, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("related: %w", err)
	}
	out := make([]Item, len(items))
	for i := range items {
		out[i] = fromInternalItem(&items[i])
	}
	return out, nil
}

// Recommendations returns a ranked mix of content and secondary references,
// personalized by the user's history when userID is set.
func (e *Engine) Recommendations(
	ctx context.Context, userID string, categories []Category, limit int,
) ([]Recommendation, error) {
	internal := make([]content.Category, len(categories))
	for i, c := range categories {
		parsed, err := content.ParseCategory(string(c))
		if err != nil {
			return nil, fmt.Errorf("recommendations: %w", err)
		}
		internal[i] = parsed
	}

	scores, err := e.recSvc.Recommendations(ctx, internal, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	out := make([]Recommendation, len(scores))
	for i := range scores {
		out[i] = fromScore(&scores[i])
	}
	return out, nil
}

// RecordView registers one view of an item.
func (e *Engine) RecordView(ctx context.Context, itemID string, sessionSeconds int64) {
	e.tracker.RecordView(ctx, itemID, sessionSeconds)
}

// RecordBookmark registers a bookmark add (bookmarked=true) or removal.
func (e *Engine) RecordBookmark(ctx context.Context, itemID string, bookmarked bool) {
	e.tracker.RecordBookmark(ctx, itemID, bookmarked)
}

// RecordCompletion registers a completed read of an item.
func (e *Engine) RecordCompletion(ctx context.Context, itemID string, readSeconds int64) {
	e.tracker.RecordCompletion(ctx, itemID, readSeconds)
}

// Trending returns the top-limit items by recency-weighted engagement.
func (e *Engine) Trending(limit int) []TrendEntry {
	entries := e.tracker.Trending(limit)
	out := make([]TrendEntry, len(entries))
	for i, entry := range entries {
		out[i] = TrendEntry{ItemID: entry.ItemID, Score: entry.Score}
	}
	return out
}

// ClearCache drops all cached search results.
func (e *Engine) ClearCache() {
	e.cached.ClearCache()
}

func toInternalFilter(req SearchRequest) (filter.Filter, error) {
	categories := make([]content.Category, len(req.Categories))
	for i, c := range req.Categories {
		parsed, err := content.ParseCategory(string(c))
		if err != nil {
			return filter.Filter{}, fmt.Errorf("search: %w", err)
		}
		categories[i] = parsed
	}
	difficulties := make([]content.Difficulty, len(req.Difficulties))
	for i, d := range req.Difficulties {
		difficulties[i] = content.Difficulty(d)
	}
	tags := make([]content.RelevanceTag, len(req.RelevanceTags))
	for i, t := range req.RelevanceTags {
		tags[i] = content.RelevanceTag(t)
	}
	f, err := filter.New(req.Query, categories, difficulties, tags)
	if err != nil {
		return filter.Filter{}, fmt.Errorf("search: %w", err)
	}
	return f, nil
}

// memorySource serves a validated static corpus.
type memorySource struct {
	items []content.Item
}

func newMemorySource(corpus []Item) (*memorySource, error) {
	items := make([]content.Item, len(corpus))
	for i, it := range corpus {
		item, err := toInternalItem(it)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return &memorySource{items: items}, nil
}

func (m *memorySource) LoadAll(_ context.Context) ([]content.Item, error) {
	return m.items, nil
}

func (m *memorySource) LoadByCategory(_ context.Context, c content.Category) ([]content.Item, error) {
	var out []content.Item
	for i := range m.items {
		if m.items[i].Category() == c {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}
