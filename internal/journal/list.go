package journal

import (
	"context"

	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/query"
	"github.com/solacejournal/solace-backend/internal/store"
)

// EntriesPage is one page of filtered entries plus the overall match count.
type EntriesPage struct {
	Entries    []models.JournalEntry `json:"entries"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"totalPages"`
}

// sortField maps an API sort key to its store field name.
func sortField(sortBy string) string {
	switch sortBy {
	case SortByUpdatedAt:
		return query.FieldUpdatedAt
	case SortByMoodRating:
		return query.FieldMoodRating
	case SortByTitle:
		return query.FieldTitle
	default:
		return query.FieldCreatedAt
	}
}

// List returns the page of entries matching q for userID. Total counts every
// match, not just the current page; a page past the end yields an empty
// entry list with the total still accurate. The count and the page fetch are
// separate store reads and are not guaranteed mutually consistent under
// concurrent writes.
func (s *Service) List(ctx context.Context, userID string, q ListQuery) (*EntriesPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	pred := compileFilter(userID, q)
	order := store.Sort{
		Field: sortField(q.SortBy),
		Desc:  q.SortOrder != "asc",
	}

	total, err := s.store.Count(ctx, pred)
	if err != nil {
		return nil, err
	}

	skip := int64(page-1) * int64(limit)
	entries, err := s.store.FindMany(ctx, pred, order, skip, int64(limit))
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &EntriesPage{
		Entries:    entries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
