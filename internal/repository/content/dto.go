package content

import (
	domcontent "github.com/Build24-Tech/discovery-engine/internal/domain/content"
)

// itemDTO is the storage representation of a content item.
type itemDTO struct {
	ID            string                     `json:"id"`
	Title         string                     `json:"title"`
	Category      string                     `json:"category"`
	Summary       string                     `json:"summary,omitempty"`
	Description   string                     `json:"description,omitempty"`
	Application   string                     `json:"application,omitempty"`
	Examples      []string                   `json:"examples,omitempty"`
	RelatedIDs    []string                   `json:"related_ids,omitempty"`
	Difficulty    string                     `json:"difficulty"`
	RelevanceTags []string                   `json:"relevance_tags,omitempty"`
	ReadTime      int                        `json:"read_time,omitempty"`
	Tags          []string                   `json:"tags,omitempty"`
	Premium       *domcontent.PremiumContent `json:"premium,omitempty"`
}

// buildDTO converts a domain Item into its storage representation.
func buildDTO(item *domcontent.Item) itemDTO {
	tags := item.RelevanceTags()
	relevance := make([]string, len(tags))
	for i, t := range tags {
		relevance[i] = string(t)
	}
	return itemDTO{
		ID:            item.ID(),
		Title:         item.Title(),
		Category:      string(item.Category()),
		Summary:       item.Summary(),
		Description:   item.Description(),
		Application:   item.Application(),
		Examples:      item.Examples(),
		RelatedIDs:    item.RelatedIDs(),
		Difficulty:    string(item.Difficulty()),
		RelevanceTags: relevance,
		ReadTime:      item.ReadTime(),
		Tags:          item.Tags(),
		Premium:       item.Premium(),
	}
}

// toDomain rebuilds a domain Item from its storage representation.
// Stored data is trusted, so validation is skipped on the way out.
func (d itemDTO) toDomain() domcontent.Item {
	relevance := make([]domcontent.RelevanceTag, len(d.RelevanceTags))
	for i, t := range d.RelevanceTags {
		relevance[i] = domcontent.RelevanceTag(t)
	}
	return domcontent.Reconstruct(domcontent.Params{
		ID:            d.ID,
		Title:         d.Title,
		Category:      domcontent.Category(d.Category),
		Summary:       d.Summary,
		Description:   d.Description,
		Application:   d.Application,
		Examples:      d.Examples,
		RelatedIDs:    d.RelatedIDs,
		Difficulty:    domcontent.Difficulty(d.Difficulty),
		RelevanceTags: relevance,
		ReadTime:      d.ReadTime,
		Tags:          d.Tags,
		Premium:       d.Premium,
	})
}
