package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/query"
)

// MemoryStore is an in-memory EntryStore. It evaluates predicates directly
// against entries and mirrors MongoStore behavior, including stable sorts and
// deterministic tag tie-breaking. Used by tests and when the server runs
// without a MONGODB_URI.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []models.JournalEntry
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(_ context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	s.entries = append(s.entries, *entry)
	return entry, nil
}

func (s *MemoryStore) FindOne(_ context.Context, pred query.Predicate) (*models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.entries {
		ok, err := matches(&s.entries[i], pred)
		if err != nil {
			return nil, err
		}
		if ok {
			entry := s.entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindMany(_ context.Context, pred query.Predicate, order Sort, skip, limit int64) ([]models.JournalEntry, error) {
	s.mu.RLock()
	matched := make([]models.JournalEntry, 0)
	for i := range s.entries {
		ok, err := matches(&s.entries[i], pred)
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		if ok {
			matched = append(matched, s.entries[i])
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		c := compareValues(sortKey(&matched[i], order.Field), sortKey(&matched[j], order.Field))
		if order.Desc {
			return c > 0
		}
		return c < 0
	})

	if skip >= int64(len(matched)) {
		return []models.JournalEntry{}, nil
	}
	matched = matched[skip:]
	if limit > 0 && limit < int64(len(matched)) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryStore) Count(_ context.Context, pred query.Predicate) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for i := range s.entries {
		ok, err := matches(&s.entries[i], pred)
		if err != nil {
			return 0, err
		}
		if ok {
			total++
		}
	}
	return total, nil
}

func (s *MemoryStore) UpdateOne(_ context.Context, pred query.Predicate, patch Patch) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		ok, err := matches(&s.entries[i], pred)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := applyPatch(&s.entries[i], patch); err != nil {
			return nil, err
		}
		s.entries[i].UpdatedAt = time.Now().UTC()
		entry := s.entries[i]
		return &entry, nil
	}
	return nil, nil
}

func (s *MemoryStore) DeleteOne(_ context.Context, pred query.Predicate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		ok, err := matches(&s.entries[i], pred)
		if err != nil {
			return false, err
		}
		if ok {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) AggregateTagCounts(ctx context.Context, pred query.Predicate, limit int64) ([]TagCount, error) {
	entries, err := s.FindMany(ctx, pred, Sort{Field: query.FieldCreatedAt}, 0, 0)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range entries {
		for _, tag := range entries[i].Tags {
			counts[tag]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})

	if limit > 0 && limit < int64(len(result)) {
		result = result[:limit]
	}
	return result, nil
}

// matches evaluates a predicate tree against a single entry.
func matches(e *models.JournalEntry, pred query.Predicate) (bool, error) {
	switch p := pred.(type) {
	case query.Equals:
		return equalsField(e, p.Field, p.Value), nil
	case query.Range:
		v := fieldValue(e, p.Field)
		if p.Min != nil && compareValues(v, p.Min) < 0 {
			return false, nil
		}
		if p.Max != nil && compareValues(v, p.Max) > 0 {
			return false, nil
		}
		return true, nil
	case query.InSet:
		return inSetField(e, p.Field, p.Values), nil
	case query.Contains:
		return containsField(e, p.Field, p.Substr), nil
	case query.And:
		for _, child := range p.Preds {
			ok, err := matches(e, child)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case query.Or:
		for _, child := range p.Preds {
			ok, err := matches(e, child)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("store: unknown predicate type %T", pred)
	}
}

func fieldValue(e *models.JournalEntry, field string) interface{} {
	switch field {
	case query.FieldID:
		return e.ID
	case query.FieldUserID:
		return e.UserID
	case query.FieldTitle:
		return e.Title
	case query.FieldContent:
		return e.Content
	case query.FieldTags:
		return e.Tags
	case query.FieldMoodRating:
		return e.Mood.Rating
	case query.FieldPrivacy:
		return e.Privacy
	case query.FieldIsArchived:
		return e.IsArchived
	case query.FieldSharedWith:
		return e.SharedWith
	case query.FieldCreatedAt:
		return e.CreatedAt
	case query.FieldUpdatedAt:
		return e.UpdatedAt
	default:
		return nil
	}
}

func sortKey(e *models.JournalEntry, field string) interface{} {
	return fieldValue(e, field)
}

func equalsField(e *models.JournalEntry, field string, value interface{}) bool {
	switch field {
	case query.FieldID:
		id, ok := value.(primitive.ObjectID)
		return ok && e.ID == id
	case query.FieldIsArchived:
		b, ok := value.(bool)
		return ok && e.IsArchived == b
	default:
		return fieldValue(e, field) == value
	}
}

func inSetField(e *models.JournalEntry, field string, values []interface{}) bool {
	switch v := fieldValue(e, field).(type) {
	case []string:
		// Array field: match when at least one element is in the set.
		for _, elem := range v {
			for _, want := range values {
				if s, ok := want.(string); ok && s == elem {
					return true
				}
			}
		}
		return false
	default:
		for _, want := range values {
			if want == v {
				return true
			}
		}
		return false
	}
}

func containsField(e *models.JournalEntry, field, substr string) bool {
	needle := strings.ToLower(substr)
	switch v := fieldValue(e, field).(type) {
	case string:
		return strings.Contains(strings.ToLower(v), needle)
	case []string:
		for _, elem := range v {
			if strings.Contains(strings.ToLower(elem), needle) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// compareValues orders two field values of the same kind. Returns <0, 0 or >0.
func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case int:
		bv, ok := toInt(b)
		if !ok {
			return 0
		}
		return av - bv
	case int64:
		bv, ok := toInt(b)
		if !ok {
			return 0
		}
		return int(av) - bv
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0
		}
		return strings.Compare(av, bv)
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0
		}
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func applyPatch(e *models.JournalEntry, patch Patch) error {
	for field, value := range patch {
		switch field {
		case "title":
			e.Title = value.(string)
		case "content":
			e.Content = value.(string)
		case "mood":
			e.Mood = value.(models.Mood)
		case "tags":
			e.Tags = value.([]string)
		case "attachments":
			e.Attachments = value.([]models.Attachment)
		case "privacy":
			e.Privacy = value.(string)
		case "is_archived":
			e.IsArchived = value.(bool)
		case "is_favorite":
			e.IsFavorite = value.(bool)
		case "therapist_notes":
			e.TherapistNotes = value.(string)
		case "shared_with":
			e.SharedWith = value.([]string)
		case "location":
			e.Location = value.(string)
		case "weather":
			e.Weather = value.(string)
		case "activities":
			e.Activities = value.([]string)
		default:
			return fmt.Errorf("store: unknown patch field %q", field)
		}
	}
	return nil
}
