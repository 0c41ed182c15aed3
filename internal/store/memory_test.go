package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/query"
)

func insertEntry(t *testing.T, st *MemoryStore, entry models.JournalEntry) models.JournalEntry {
	t.Helper()
	inserted, err := st.Insert(context.Background(), &entry)
	require.NoError(t, err)
	return *inserted
}

func TestInsert_AssignsIDAndTimestamps(t *testing.T) {
	st := NewMemoryStore()

	entry := insertEntry(t, st, models.JournalEntry{UserID: "u1", Title: "x"})

	assert.False(t, entry.ID.IsZero())
	assert.False(t, entry.CreatedAt.IsZero())
	assert.False(t, entry.UpdatedAt.IsZero())
}

func TestInsert_KeepsPresetCreatedAt(t *testing.T) {
	st := NewMemoryStore()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	entry := insertEntry(t, st, models.JournalEntry{UserID: "u1", CreatedAt: created})

	assert.Equal(t, created, entry.CreatedAt)
}

func TestFindOne_NilOnMiss(t *testing.T) {
	st := NewMemoryStore()
	insertEntry(t, st, models.JournalEntry{UserID: "u1"})

	entry, err := st.FindOne(context.Background(), query.Eq(query.FieldUserID, "nobody"))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFindOne_ByID(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	inserted := insertEntry(t, st, models.JournalEntry{UserID: "u1", Title: "target"})
	insertEntry(t, st, models.JournalEntry{UserID: "u1", Title: "other"})

	entry, err := st.FindOne(ctx, query.All(
		query.Eq(query.FieldID, inserted.ID),
		query.Eq(query.FieldUserID, "u1"),
	))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "target", entry.Title)
}

func TestFindMany_RangePredicate(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	for _, r := range []int{1, 3, 5, 7, 9} {
		insertEntry(t, st, models.JournalEntry{UserID: "u1", Mood: models.Mood{Rating: r}})
	}

	entries, err := st.FindMany(ctx,
		query.Between(query.FieldMoodRating, 3, 7),
		Sort{Field: query.FieldMoodRating}, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 3, entries[0].Mood.Rating)
	assert.Equal(t, 7, entries[2].Mood.Rating)
}

func TestFindMany_ContainsOnArrayField(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	insertEntry(t, st, models.JournalEntry{UserID: "u1", Tags: []string{"Work-Life", "health"}})
	insertEntry(t, st, models.JournalEntry{UserID: "u1", Tags: []string{"travel"}})

	entries, err := st.FindMany(ctx,
		query.ContainsFold(query.FieldTags, "work"),
		Sort{Field: query.FieldCreatedAt}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFindMany_SkipBeyondEnd(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	insertEntry(t, st, models.JournalEntry{UserID: "u1"})

	entries, err := st.FindMany(ctx, query.Eq(query.FieldUserID, "u1"),
		Sort{Field: query.FieldCreatedAt}, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFindMany_StableSortOnEqualKeys(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, title := range []string{"first", "second", "third"} {
		insertEntry(t, st, models.JournalEntry{UserID: "u1", Title: title, CreatedAt: ts})
	}

	entries, err := st.FindMany(ctx, query.Eq(query.FieldUserID, "u1"),
		Sort{Field: query.FieldCreatedAt}, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Equal sort keys keep insertion order.
	assert.Equal(t, "first", entries[0].Title)
	assert.Equal(t, "third", entries[2].Title)
}

func TestUpdateOne_RefreshesUpdatedAt(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	inserted := insertEntry(t, st, models.JournalEntry{UserID: "u1", Title: "before"})

	updated, err := st.UpdateOne(ctx, query.Eq(query.FieldID, inserted.ID), Patch{"title": "after"})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "after", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(inserted.UpdatedAt))
}

func TestUpdateOne_NilOnMiss(t *testing.T) {
	st := NewMemoryStore()

	updated, err := st.UpdateOne(context.Background(),
		query.Eq(query.FieldID, primitive.NewObjectID()), Patch{"title": "x"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateOne_UnknownPatchField(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	inserted := insertEntry(t, st, models.JournalEntry{UserID: "u1"})

	_, err := st.UpdateOne(ctx, query.Eq(query.FieldID, inserted.ID), Patch{"no_such_field": 1})
	assert.Error(t, err)
}

func TestDeleteOne(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	inserted := insertEntry(t, st, models.JournalEntry{UserID: "u1"})

	deleted, err := st.DeleteOne(ctx, query.Eq(query.FieldID, inserted.ID))
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = st.DeleteOne(ctx, query.Eq(query.FieldID, inserted.ID))
	require.NoError(t, err)
	assert.False(t, deleted)

	count, err := st.Count(ctx, query.Eq(query.FieldUserID, "u1"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestInSet_OnScalarAndArrayFields(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	insertEntry(t, st, models.JournalEntry{UserID: "u1", Privacy: models.PrivacyPublic, SharedWith: []string{"a", "b"}})
	insertEntry(t, st, models.JournalEntry{UserID: "u2", Privacy: models.PrivacyPrivate, SharedWith: []string{"c"}})

	count, err := st.Count(ctx, query.In(query.FieldPrivacy, models.PrivacyPublic, models.PrivacyTherapist))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "scalar field: membership")

	count, err = st.Count(ctx, query.In(query.FieldSharedWith, "b"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "array field: intersection")
}

func TestAggregateTagCounts(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	insertEntry(t, st, models.JournalEntry{UserID: "u1", Tags: []string{"b", "a"}})
	insertEntry(t, st, models.JournalEntry{UserID: "u1", Tags: []string{"b"}})
	insertEntry(t, st, models.JournalEntry{UserID: "u1", Tags: []string{"a"}})
	insertEntry(t, st, models.JournalEntry{UserID: "u1", Tags: []string{"c"}})

	counts, err := st.AggregateTagCounts(ctx, query.Eq(query.FieldUserID, "u1"), 10)
	require.NoError(t, err)

	require.Len(t, counts, 3)
	// Ties on count order by tag name.
	assert.Equal(t, TagCount{Tag: "a", Count: 2}, counts[0])
	assert.Equal(t, TagCount{Tag: "b", Count: 2}, counts[1])
	assert.Equal(t, TagCount{Tag: "c", Count: 1}, counts[2])

	counts, err = st.AggregateTagCounts(ctx, query.Eq(query.FieldUserID, "u1"), 1)
	require.NoError(t, err)
	assert.Len(t, counts, 1)
}
