package history

import "github.com/Build24-Tech/discovery-engine/internal/domain/content"

// UserHistory is a per-user read/bookmark projection supplied by the content
// store. It is a read-only input to scoring; the engine never mutates it.
type UserHistory struct {
	userID        string
	readIDs       map[string]struct{}
	bookmarkedIDs map[string]struct{}
	categories    map[content.Category]struct{}
	totalReadTime int
	itemsRead     int
}

// Reconstruct creates a UserHistory from stored sets (storage hydration).
func Reconstruct(
	userID string,
	readIDs, bookmarkedIDs []string,
	categories []content.Category,
	totalReadTime, itemsRead int,
) UserHistory {
	h := UserHistory{
		userID:        userID,
		readIDs:       make(map[string]struct{}, len(readIDs)),
		bookmarkedIDs: make(map[string]struct{}, len(bookmarkedIDs)),
		categories:    make(map[content.Category]struct{}, len(categories)),
		totalReadTime: totalReadTime,
		itemsRead:     itemsRead,
	}
	for _, id := range readIDs {
		h.readIDs[id] = struct{}{}
	}
	for _, id := range bookmarkedIDs {
		h.bookmarkedIDs[id] = struct{}{}
	}
	for _, c := range categories {
		h.categories[c] = struct{}{}
	}
	return h
}

// UserID returns the owning user id.
func (h *UserHistory) UserID() string { return h.userID }

// HasRead reports whether the user has read the item.
func (h *UserHistory) HasRead(itemID string) bool {
	_, ok := h.readIDs[itemID]
	return ok
}

// HasBookmarked reports whether the user has bookmarked the item.
func (h *UserHistory) HasBookmarked(itemID string) bool {
	_, ok := h.bookmarkedIDs[itemID]
	return ok
}

// HasExplored reports whether the user has read anything in the category.
func (h *UserHistory) HasExplored(c content.Category) bool {
	_, ok := h.categories[c]
	return ok
}

// ReadIDs returns the read item ids (order unspecified).
func (h *UserHistory) ReadIDs() []string {
	ids := make([]string, 0, len(h.readIDs))
	for id := range h.readIDs {
		ids = append(ids, id)
	}
	return ids
}

// BookmarkedIDs returns the bookmarked item ids (order unspecified).
func (h *UserHistory) BookmarkedIDs() []string {
	ids := make([]string, 0, len(h.bookmarkedIDs))
	for id := range h.bookmarkedIDs {
		ids = append(ids, id)
	}
	return ids
}

// Categories returns the explored categories (order unspecified).
func (h *UserHistory) Categories() []content.Category {
	cats := make([]content.Category, 0, len(h.categories))
	for c := range h.categories {
		cats = append(cats, c)
	}
	return cats
}

// TotalReadTime returns accumulated read time in seconds.
func (h *UserHistory) TotalReadTime() int { return h.totalReadTime }

// ItemsRead returns the items-read count.
func (h *UserHistory) ItemsRead() int { return h.itemsRead }
