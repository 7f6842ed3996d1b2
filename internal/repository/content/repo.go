package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Build24-Tech/discovery-engine/internal/db"
	"github.com/Build24-Tech/discovery-engine/internal/domain"
	domcontent "github.com/Build24-Tech/discovery-engine/internal/domain/content"
)

// store is the consumer interface for content items (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the usecase ContentSource contracts over the store.
// Items live as JSON blobs keyed by id, with a per-category index set so
// single-category loads skip the full keyspace scan.
type Repo struct {
	store store
}

// New creates a content repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save creates or updates a content item and its category index entry.
func (r *Repo) Save(ctx context.Context, item *domcontent.Item) error {
	data, err := json.Marshal(buildDTO(item))
	if err != nil {
		return fmt.Errorf("marshal item %s: %w", item.ID(), err)
	}
	if err := r.store.Set(ctx, itemKey(item.ID()), data); err != nil {
		return fmt.Errorf("set item %s: %w", item.ID(), err)
	}
	if err := r.store.SAdd(ctx, categoryKey(item.Category()), item.ID()); err != nil {
		return fmt.Errorf("index item %s: %w", item.ID(), err)
	}
	return nil
}

// Get returns a content item by id.
func (r *Repo) Get(ctx context.Context, id string) (domcontent.Item, error) {
	data, err := r.store.Get(ctx, itemKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcontent.Item{}, domain.ErrContentNotFound
		}
		return domcontent.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	var dto itemDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domcontent.Item{}, fmt.Errorf("unmarshal item %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

// Delete removes a content item and its category index entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	item, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, itemKey(id)); err != nil {
		return fmt.Errorf("del item %s: %w", id, err)
	}
	if err := r.store.SRem(ctx, categoryKey(item.Category()), id); err != nil {
		return fmt.Errorf("unindex item %s: %w", id, err)
	}
	return nil
}

// LoadAll returns the full content corpus.
func (r *Repo) LoadAll(ctx context.Context) ([]domcontent.Item, error) {
	keys, err := r.store.Scan(ctx, itemKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	return r.loadKeys(ctx, keys)
}

// LoadByCategory returns the items indexed under one category.
func (r *Repo) LoadByCategory(ctx context.Context, c domcontent.Category) ([]domcontent.Item, error) {
	ids, err := r.store.SMembers(ctx, categoryKey(c))
	if err != nil {
		return nil, fmt.Errorf("load category %s: %w", c, err)
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(id)
	}
	return r.loadKeys(ctx, keys)
}

// loadKeys fetches and decodes item blobs, skipping entries that fail to
// decode so one corrupt blob does not take the whole corpus down.
func (r *Repo) loadKeys(ctx context.Context, keys []string) ([]domcontent.Item, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	blobs, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	items := make([]domcontent.Item, 0, len(blobs))
	for _, data := range blobs {
		var dto itemDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			continue
		}
		items = append(items, dto.toDomain())
	}
	return items, nil
}

func itemKey(id string) string {
	return domain.KeyPrefix + "content:item:" + id
}

func categoryKey(c domcontent.Category) string {
	return domain.KeyPrefix + "content:category:" + string(c)
}
