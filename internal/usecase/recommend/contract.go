package recommend

import (
	"context"

	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/history"
	"github.com/Build24-Tech/discovery-engine/internal/domain/recommend"
)

// ContentSource supplies primary content items.
type ContentSource interface {
	LoadAll(ctx context.Context) ([]content.Item, error)
	LoadByCategory(ctx context.Context, c content.Category) ([]content.Item, error)
}

// HistorySource supplies per-user read/bookmark projections.
// A missing history is reported via ok=false, not an error.
type HistorySource interface {
	LoadHistory(ctx context.Context, userID string) (history.UserHistory, bool, error)
}

// ReferenceSource supplies secondary reference pools (templates,
// case studies) optionally narrowed by category.
type ReferenceSource interface {
	LoadReferences(ctx context.Context, pool recommend.Pool, categories []content.Category) ([]recommend.Reference, error)
}
