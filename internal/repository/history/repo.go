package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Build24-Tech/discovery-engine/internal/domain"
	domcontent "github.com/Build24-Tech/discovery-engine/internal/domain/content"
	domhistory "github.com/Build24-Tech/discovery-engine/internal/domain/history"
)

// Hash field names for a persisted user history.
const (
	fieldReadIDs       = "read_ids"
	fieldBookmarkedIDs = "bookmarked_ids"
	fieldCategories    = "categories"
	fieldTotalReadTime = "total_read_time"
	fieldItemsRead     = "items_read"
)

// store is the consumer interface for user histories (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements the usecase HistorySource contract. Each user history is
// one hash; id sets are stored as JSON arrays inside the hash fields.
type Repo struct {
	store store
}

// New creates a history repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// LoadHistory returns the history projection for a user.
// A user with no history yet is ok=false, not an error.
func (r *Repo) LoadHistory(ctx context.Context, userID string) (domhistory.UserHistory, bool, error) {
	fields, err := r.store.HGetAll(ctx, historyKey(userID))
	if err != nil {
		return domhistory.UserHistory{}, false, fmt.Errorf("load history %s: %w", userID, err)
	}
	if len(fields) == 0 {
		return domhistory.UserHistory{}, false, nil
	}

	readIDs, err := parseIDs(fields[fieldReadIDs])
	if err != nil {
		return domhistory.UserHistory{}, false, fmt.Errorf("history %s read ids: %w", userID, err)
	}
	bookmarkedIDs, err := parseIDs(fields[fieldBookmarkedIDs])
	if err != nil {
		return domhistory.UserHistory{}, false, fmt.Errorf("history %s bookmarked ids: %w", userID, err)
	}
	rawCategories, err := parseIDs(fields[fieldCategories])
	if err != nil {
		return domhistory.UserHistory{}, false, fmt.Errorf("history %s categories: %w", userID, err)
	}
	categories := make([]domcontent.Category, 0, len(rawCategories))
	for _, c := range rawCategories {
		categories = append(categories, domcontent.Category(c))
	}

	totalReadTime, _ := strconv.Atoi(fields[fieldTotalReadTime])
	itemsRead, _ := strconv.Atoi(fields[fieldItemsRead])

	return domhistory.Reconstruct(userID, readIDs, bookmarkedIDs, categories, totalReadTime, itemsRead), true, nil
}

// Save persists a history projection.
func (r *Repo) Save(ctx context.Context, h *domhistory.UserHistory) error {
	readIDs, err := json.Marshal(h.ReadIDs())
	if err != nil {
		return fmt.Errorf("marshal history %s: %w", h.UserID(), err)
	}
	bookmarkedIDs, err := json.Marshal(h.BookmarkedIDs())
	if err != nil {
		return fmt.Errorf("marshal history %s: %w", h.UserID(), err)
	}
	categories, err := json.Marshal(h.Categories())
	if err != nil {
		return fmt.Errorf("marshal history %s: %w", h.UserID(), err)
	}

	fields := map[string]string{
		fieldReadIDs:       string(readIDs),
		fieldBookmarkedIDs: string(bookmarkedIDs),
		fieldCategories:    string(categories),
		fieldTotalReadTime: strconv.Itoa(h.TotalReadTime()),
		fieldItemsRead:     strconv.Itoa(h.ItemsRead()),
	}
	if err := r.store.HSet(ctx, historyKey(h.UserID()), fields); err != nil {
		return fmt.Errorf("save history %s: %w", h.UserID(), err)
	}
	return nil
}

func parseIDs(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func historyKey(userID string) string {
	return domain.KeyPrefix + "history:" + userID
}
