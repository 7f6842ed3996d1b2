package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Build24-Tech/discovery-engine/internal/domain"
	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/filter"
	"github.com/Build24-Tech/discovery-engine/internal/metrics"
	analyticsuc "github.com/Build24-Tech/discovery-engine/internal/usecase/analytics"
	healthuc "github.com/Build24-Tech/discovery-engine/internal/usecase/health"
	recommenduc "github.com/Build24-Tech/discovery-engine/internal/usecase/recommend"
	searchuc "github.com/Build24-Tech/discovery-engine/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Limits holds per-endpoint default result limits.
type Limits struct {
	Related   int
	Recommend int
	Trending  int
	Suggest   int
}

// Server is the hand-written chi HTTP API.
type Server struct {
	searcher      searchuc.Searcher
	suggester     *searchuc.Service
	recs          *recommenduc.Service
	tracker       *analyticsuc.Tracker
	health        *healthuc.Service
	cache         *searchuc.CachedService
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. searcher is normally the caching
// decorator over suggester's service; cache may be nil when caching is off.
func NewServer(
	searcher searchuc.Searcher,
	suggester *searchuc.Service,
	recs *recommenduc.Service,
	tracker *analyticsuc.Tracker,
	health *healthuc.Service,
	cache *searchuc.CachedService,
	limits Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		searcher:  searcher,
		suggester: suggester,
		recs:      recs,
		tracker:   tracker,
		health:    health,
		cache:     cache,
		limits:    limits,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrContentNotFound, http.StatusNotFound, codeContentNotFound),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnknownPool, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrDiscoveryUnavailable, http.StatusServiceUnavailable, codeDiscoveryUnavailable),
	}
	return s
}

// Routes mounts all API endpoints on a fresh router. Middlewares are the
// caller's concern.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Get("/suggest", s.Suggest)
		r.Get("/content/{id}/related", s.Related)
		r.Get("/recommendations", s.Recommendations)
		r.Get("/trending", s.Trending)
		r.Post("/events/view", s.RecordView)
		r.Post("/events/bookmark", s.RecordBookmark)
		r.Post("/events/completion", s.RecordCompletion)
		r.Post("/cache/clear", s.ClearCache)
	})

	return r
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	categories, difficulties, tags, err := parseFilterInputs(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	f, err := filter.New(req.Query, categories, difficulties, tags)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	results, err := s.searcher.Search(r.Context(), f)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := searchResponse{
		Results: make([]searchResultDTO, len(results)),
		Total:   len(results),
	}
	for i := range results {
		resp.Results[i] = resultToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Suggest handles GET /v1/suggest. Best-effort: always 200.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", s.limits.Suggest)

	suggestions := s.suggester.Suggest(r.Context(), q, limit)
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

// Related handles GET /v1/content/{id}/related.
func (s *Server) Related(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := queryInt(r, "limit", s.limits.Related)

	items, err := s.recs.Related(r.Context(), id, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := relatedResponse{Items: make([]itemDTO, len(items))}
	for i := range items {
		resp.Items[i] = itemToDTO(&items[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Recommendations handles GET /v1/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	limit := queryInt(r, "limit", s.limits.Recommend)

	var categories []content.Category
	for _, raw := range r.URL.Query()["category"] {
		c, err := content.ParseCategory(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		categories = append(categories, c)
	}

	scores, err := s.recs.Recommendations(r.Context(), categories, userID, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := recommendationsResponse{Recommendations: make([]recommendationDTO, len(scores))}
	for i := range scores {
		resp.Recommendations[i] = scoreToDTO(&scores[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Trending handles GET /v1/trending.
func (s *Server) Trending(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", s.limits.Trending)

	entries := s.tracker.Trending(limit)
	resp := trendingResponse{Entries: make([]trendingEntryDTO, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = trendingEntryDTO{ItemID: e.ItemID, Score: e.Score}
	}
	writeJSON(w, http.StatusOK, resp)
}

// RecordView handles POST /v1/events/view. Events are accepted as long as
// the body parses; tracking failures never surface to the caller.
func (s *Server) RecordView(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEvent(w, r)
	if !ok {
		return
	}
	s.tracker.RecordView(r.Context(), req.ItemID, req.SessionSeconds)
	metrics.EngagementEventsTotal.WithLabelValues("view").Inc()
	w.WriteHeader(http.StatusAccepted)
}

// RecordBookmark handles POST /v1/events/bookmark.
func (s *Server) RecordBookmark(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEvent(w, r)
	if !ok {
		return
	}
	s.tracker.RecordBookmark(r.Context(), req.ItemID, !req.Remove)
	metrics.EngagementEventsTotal.WithLabelValues("bookmark").Inc()
	w.WriteHeader(http.StatusAccepted)
}

// RecordCompletion handles POST /v1/events/completion.
func (s *Server) RecordCompletion(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEvent(w, r)
	if !ok {
		return
	}
	s.tracker.RecordCompletion(r.Context(), req.ItemID, req.ReadSeconds)
	metrics.EngagementEventsTotal.WithLabelValues("completion").Inc()
	w.WriteHeader(http.StatusAccepted)
}

// ClearCache handles POST /v1/cache/clear.
func (s *Server) ClearCache(w http.ResponseWriter, r *http.Request) {
	if s.cache != nil {
		s.cache.ClearCache()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthToDTO(report))
}

func (s *Server) decodeEvent(w http.ResponseWriter, r *http.Request) (eventRequest, bool) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return eventRequest{}, false
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "item_id is required")
		return eventRequest{}, false
	}
	return req, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrContentNotFound,
		domain.ErrInvalidFilter,
		domain.ErrUnknownPool,
		domain.ErrDiscoveryUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
