package discovery

import (
	"fmt"

	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/recommend"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/result"
)

func toInternalItem(it Item) (content.Item, error) {
	tags := make([]content.RelevanceTag, len(it.RelevanceTags))
	for i, t := range it.RelevanceTags {
		tags[i] = content.RelevanceTag(t)
	}
	item, err := content.New(content.Params{
		ID:            it.ID,
		Title:         it.Title,
		Category:      content.Category(it.Category),
		Summary:       it.Summary,
		Description:   it.Description,
		Application:   it.Application,
		Examples:      it.Examples,
		RelatedIDs:    it.RelatedIDs,
		Difficulty:    content.Difficulty(it.Difficulty),
		RelevanceTags: tags,
		ReadTime:      it.ReadTimeMin,
		Tags:          it.Tags,
		Premium:       toInternalPremium(it.Premium),
	})
	if err != nil {
		return content.Item{}, fmt.Errorf("item %q: %w", it.ID, err)
	}
	return item, nil
}

func toInternalPremium(p *Premium) *content.PremiumContent {
	if p == nil {
		return nil
	}
	out := &content.PremiumContent{Kind: content.PremiumKind(p.Kind)}
	if p.Worksheet != nil {
		out.Worksheet = &content.Worksheet{
			Title:    p.Worksheet.Title,
			Steps:    p.Worksheet.Steps,
			FileURL:  p.Worksheet.FileURL,
			Duration: p.Worksheet.DurationMin,
		}
	}
	if p.Video != nil {
		out.Video = &content.Video{
			Title:    p.Video.Title,
			URL:      p.Video.URL,
			Duration: p.Video.DurationMin,
		}
	}
	return out
}

func fromInternalItem(item *content.Item) Item {
	internalTags := item.RelevanceTags()
	tags := make([]RelevanceTag, len(internalTags))
	for i, t := range internalTags {
		tags[i] = RelevanceTag(t)
	}
	return Item{
		ID:            item.ID(),
		Title:         item.Title(),
		Category:      Category(item.Category()),
		Summary:       item.Summary(),
		Description:   item.Description(),
		Application:   item.Application(),
		Examples:      item.Examples(),
		RelatedIDs:    item.RelatedIDs(),
		Difficulty:    Difficulty(item.Difficulty()),
		RelevanceTags: tags,
		ReadTimeMin:   item.ReadTime(),
		Tags:          item.Tags(),
		Premium:       fromInternalPremium(item.Premium()),
	}
}

func fromInternalPremium(p *content.PremiumContent) *Premium {
	if p == nil {
		return nil
	}
	out := &Premium{Kind: string(p.Kind)}
	if p.Worksheet != nil {
		out.Worksheet = &Worksheet{
			Title:       p.Worksheet.Title,
			Steps:       p.Worksheet.Steps,
			FileURL:     p.Worksheet.FileURL,
			DurationMin: p.Worksheet.Duration,
		}
	}
	if p.Video != nil {
		out.Video = &Video{
			Title:       p.Video.Title,
			URL:         p.Video.URL,
			DurationMin: p.Video.Duration,
		}
	}
	return out
}

func fromSearchResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		matched := r.Matched()
		fields := make([]string, len(matched))
		for j, f := range matched {
			fields[j] = string(f)
		}
		out[i] = SearchResult{
			Item:          fromInternalItem(r.Item()),
			Score:         r.Score(),
			MatchedFields: fields,
		}
	}
	return out
}

func fromScore(s *recommend.Score) Recommendation {
	rec := Recommendation{
		Type:  string(s.Type()),
		Score: s.Value(),
	}
	if item := s.Item(); item != nil {
		converted := fromInternalItem(item)
		rec.Item = &converted
	}
	if ref := s.Ref(); ref != nil {
		rec.Reference = &Reference{
			ID:       ref.ID(),
			Title:    ref.Title(),
			URL:      ref.URL(),
			Category: Category(ref.Category()),
		}
	}
	return rec
}
