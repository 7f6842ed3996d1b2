package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Build24-Tech/discovery-engine/internal/db"
	"github.com/Build24-Tech/discovery-engine/internal/domain"
	domcontent "github.com/Build24-Tech/discovery-engine/internal/domain/content"
	domrec "github.com/Build24-Tech/discovery-engine/internal/domain/recommend"
)

// store is the consumer interface for reference pools (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// refDTO is the storage representation of one curated reference.
type refDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	Category string `json:"category"`
}

// Repo implements the usecase ReferenceSource contract. Each pool is one
// JSON array blob; pools are small curated lists, so category narrowing
// happens after the load.
type Repo struct {
	store store
}

// New creates a reference repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// LoadReferences returns a pool's references, optionally narrowed to the
// given categories. An absent pool key is an empty pool, not an error.
func (r *Repo) LoadReferences(
	ctx context.Context, pool domrec.Pool, categories []domcontent.Category,
) ([]domrec.Reference, error) {
	if !pool.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPool, pool)
	}

	data, err := r.store.Get(ctx, poolKey(pool))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load pool %s: %w", pool, err)
	}

	var dtos []refDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal pool %s: %w", pool, err)
	}

	allowed := make(map[domcontent.Category]struct{}, len(categories))
	for _, c := range categories {
		allowed[c] = struct{}{}
	}

	refs := make([]domrec.Reference, 0, len(dtos))
	for _, d := range dtos {
		c := domcontent.Category(d.Category)
		if len(allowed) > 0 {
			if _, ok := allowed[c]; !ok {
				continue
			}
		}
		refs = append(refs, domrec.NewReference(d.ID, d.Title, d.URL, c))
	}
	return refs, nil
}

// Save replaces a pool's curated reference list.
func (r *Repo) Save(ctx context.Context, pool domrec.Pool, refs []domrec.Reference) error {
	if !pool.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPool, pool)
	}

	dtos := make([]refDTO, len(refs))
	for i := range refs {
		dtos[i] = refDTO{
			ID:       refs[i].ID(),
			Title:    refs[i].Title(),
			URL:      refs[i].URL(),
			Category: string(refs[i].Category()),
		}
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return fmt.Errorf("marshal pool %s: %w", pool, err)
	}
	if err := r.store.Set(ctx, poolKey(pool), data); err != nil {
		return fmt.Errorf("save pool %s: %w", pool, err)
	}
	return nil
}

func poolKey(pool domrec.Pool) string {
	return domain.KeyPrefix + "refs:" + string(pool)
}
