package journal

import (
	"time"

	"github.com/solacejournal/solace-backend/internal/query"
)

// Sort keys accepted by ListQuery.SortBy. These are the API-facing names;
// the compiler maps them to store field names.
const (
	SortByCreatedAt  = "createdAt"
	SortByUpdatedAt  = "updatedAt"
	SortByMoodRating = "mood.rating"
	SortByTitle      = "title"
)

// ListQuery is the query specification for listing entries. Zero values mean
// "not provided"; the boundary validator rejects malformed values before a
// query reaches the compiler.
type ListQuery struct {
	Page          int
	Limit         int
	Search        string
	Tags          []string
	MoodRatingMin int
	MoodRatingMax int
	Privacy       string
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// compileFilter translates a list query into a predicate. The owner scope
// and the archived-entry exclusion are always applied; every provided field
// ANDs onto that. Search alone is an OR across title, content and tags.
func compileFilter(userID string, q ListQuery) query.Predicate {
	preds := []query.Predicate{
		query.Eq(query.FieldUserID, userID),
		query.Eq(query.FieldIsArchived, false),
	}

	if q.Search != "" {
		preds = append(preds, query.Any(
			query.ContainsFold(query.FieldTitle, q.Search),
			query.ContainsFold(query.FieldContent, q.Search),
			query.ContainsFold(query.FieldTags, q.Search),
		))
	}

	if len(q.Tags) > 0 {
		values := make([]interface{}, len(q.Tags))
		for i, tag := range q.Tags {
			values[i] = tag
		}
		preds = append(preds, query.In(query.FieldTags, values...))
	}

	if q.MoodRatingMin > 0 || q.MoodRatingMax > 0 {
		var min, max interface{}
		if q.MoodRatingMin > 0 {
			min = q.MoodRatingMin
		}
		if q.MoodRatingMax > 0 {
			max = q.MoodRatingMax
		}
		preds = append(preds, query.Between(query.FieldMoodRating, min, max))
	}

	if q.Privacy != "" {
		preds = append(preds, query.Eq(query.FieldPrivacy, q.Privacy))
	}

	if q.StartDate != nil || q.EndDate != nil {
		var min, max interface{}
		if q.StartDate != nil {
			min = *q.StartDate
		}
		if q.EndDate != nil {
			max = *q.EndDate
		}
		preds = append(preds, query.Between(query.FieldCreatedAt, min, max))
	}

	return query.All(preds...)
}
