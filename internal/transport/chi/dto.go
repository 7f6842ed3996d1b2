package chi

import (
	"fmt"

	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/recommend"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/result"
	"github.com/Build24-Tech/discovery-engine/internal/usecase/health"
)

// Error codes returned to clients.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeContentNotFound      = "content_not_found"
	codeDiscoveryUnavailable = "discovery_unavailable"
	codeInternalError        = "internal_error"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// searchRequest is the POST /v1/search body.
type searchRequest struct {
	Query         string   `json:"query,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Difficulties  []string `json:"difficulties,omitempty"`
	RelevanceTags []string `json:"relevance_tags,omitempty"`
}

// itemDTO is the wire shape of one content item.
type itemDTO struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Category      string                  `json:"category"`
	CategoryName  string                  `json:"category_name"`
	Summary       string                  `json:"summary,omitempty"`
	Description   string                  `json:"description,omitempty"`
	Application   string                  `json:"application,omitempty"`
	Examples      []string                `json:"examples,omitempty"`
	RelatedIDs    []string                `json:"related_ids,omitempty"`
	Difficulty    string                  `json:"difficulty"`
	RelevanceTags []string                `json:"relevance_tags,omitempty"`
	ReadTimeMin   int                     `json:"read_time_min,omitempty"`
	Tags          []string                `json:"tags,omitempty"`
	Premium       *content.PremiumContent `json:"premium,omitempty"`
}

// searchResultDTO is one scored search hit.
type searchResultDTO struct {
	Item          itemDTO  `json:"item"`
	Score         float64  `json:"score"`
	MatchedFields []string `json:"matched_fields,omitempty"`
}

// searchResponse is the POST /v1/search response.
type searchResponse struct {
	Results []searchResultDTO `json:"results"`
	Total   int               `json:"total"`
}

// suggestResponse is the GET /v1/suggest response.
type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// relatedResponse is the GET /v1/content/{id}/related response.
type relatedResponse struct {
	Items []itemDTO `json:"items"`
}

// recommendationDTO is one ranked recommendation entry.
type recommendationDTO struct {
	Type      string   `json:"type"`
	Score     float64  `json:"score"`
	Item      *itemDTO `json:"item,omitempty"`
	Reference *refDTO  `json:"reference,omitempty"`
}

// refDTO is the wire shape of one secondary reference.
type refDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	Category string `json:"category"`
}

// recommendationsResponse is the GET /v1/recommendations response.
type recommendationsResponse struct {
	Recommendations []recommendationDTO `json:"recommendations"`
}

// eventRequest is the POST /v1/events/{view,bookmark,completion} body.
type eventRequest struct {
	ItemID         string `json:"item_id"`
	SessionSeconds int64  `json:"session_seconds,omitempty"` // view
	ReadSeconds    int64  `json:"read_seconds,omitempty"`    // completion
	Remove         bool   `json:"remove,omitempty"`          // bookmark
}

// trendingEntryDTO is one trending ranking row.
type trendingEntryDTO struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

// trendingResponse is the GET /v1/trending response.
type trendingResponse struct {
	Entries []trendingEntryDTO `json:"entries"`
}

// healthResponse is the GET /healthz response.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func itemToDTO(item *content.Item) itemDTO {
	tags := item.RelevanceTags()
	relevance := make([]string, len(tags))
	for i, t := range tags {
		relevance[i] = string(t)
	}
	return itemDTO{
		ID:            item.ID(),
		Title:         item.Title(),
		Category:      string(item.Category()),
		CategoryName:  item.Category().DisplayName(),
		Summary:       item.Summary(),
		Description:   item.Description(),
		Application:   item.Application(),
		Examples:      item.Examples(),
		RelatedIDs:    item.RelatedIDs(),
		Difficulty:    string(item.Difficulty()),
		RelevanceTags: relevance,
		ReadTimeMin:   item.ReadTime(),
		Tags:          item.Tags(),
		Premium:       item.Premium(),
	}
}

func resultToDTO(r *result.Result) searchResultDTO {
	matched := r.Matched()
	fields := make([]string, len(matched))
	for i, f := range matched {
		fields[i] = string(f)
	}
	return searchResultDTO{
		Item:          itemToDTO(r.Item()),
		Score:         r.Score(),
		MatchedFields: fields,
	}
}

func scoreToDTO(s *recommend.Score) recommendationDTO {
	dto := recommendationDTO{
		Type:  string(s.Type()),
		Score: s.Value(),
	}
	if item := s.Item(); item != nil {
		d := itemToDTO(item)
		dto.Item = &d
	}
	if ref := s.Ref(); ref != nil {
		dto.Reference = &refDTO{
			ID:       ref.ID(),
			Title:    ref.Title(),
			URL:      ref.URL(),
			Category: string(ref.Category()),
		}
	}
	return dto
}

func healthToDTO(r health.Report) healthResponse {
	checks := make(map[string]string, len(r.Checks))
	for name, res := range r.Checks {
		checks[name] = string(res)
	}
	return healthResponse{Status: string(r.Status), Checks: checks}
}

// parseFilterInputs converts raw request enums into domain types.
func parseFilterInputs(req searchRequest) (
	[]content.Category, []content.Difficulty, []content.RelevanceTag, error,
) {
	categories := make([]content.Category, 0, len(req.Categories))
	for _, raw := range req.Categories {
		c, err := content.ParseCategory(raw)
		if err != nil {
			return nil, nil, nil, err
		}
		categories = append(categories, c)
	}
	difficulties := make([]content.Difficulty, 0, len(req.Difficulties))
	for _, raw := range req.Difficulties {
		d := content.Difficulty(raw)
		if !d.IsValid() {
			return nil, nil, nil, fmt.Errorf("unknown difficulty %q", raw)
		}
		difficulties = append(difficulties, d)
	}
	tags := make([]content.RelevanceTag, 0, len(req.RelevanceTags))
	for _, raw := range req.RelevanceTags {
		t := content.RelevanceTag(raw)
		if !t.IsValid() {
			return nil, nil, nil, fmt.Errorf("unknown relevance tag %q", raw)
		}
		tags = append(tags, t)
	}
	return categories, difficulties, tags, nil
}
