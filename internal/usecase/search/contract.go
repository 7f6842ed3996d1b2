package search

import (
	"context"

	"github.com/Build24-Tech/discovery-engine/internal/domain/content"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/filter"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/result"
)

// ContentSource supplies the content corpus. Implemented by the store
// adapter at the boundary; retry policy belongs to the implementation.
type ContentSource interface {
	LoadAll(ctx context.Context) ([]content.Item, error)
	LoadByCategory(ctx context.Context, c content.Category) ([]content.Item, error)
}

// Searcher is the discovery entry point. The cached service and the plain
// service both satisfy it, so callers can take either.
type Searcher interface {
	Search(ctx context.Context, f filter.Filter) ([]result.Result, error)
}
