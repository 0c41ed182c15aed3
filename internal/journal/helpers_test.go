package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/store"
)

// newTestService returns a journal service over a fresh in-memory store,
// plus the store for direct seeding.
func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewService(st), st
}

// seedEntry inserts an entry directly into the store so tests can control
// fields the service would normally own (createdAt in particular).
func seedEntry(t *testing.T, st *store.MemoryStore, entry models.JournalEntry) models.JournalEntry {
	t.Helper()
	if entry.Privacy == "" {
		entry.Privacy = models.PrivacyPrivate
	}
	if entry.Mood.Rating == 0 {
		entry.Mood = models.Mood{Rating: 5, Label: "okay"}
	}
	if entry.Title == "" {
		entry.Title = "a day"
	}
	if entry.Content == "" {
		entry.Content = "nothing much happened"
	}
	inserted, err := st.Insert(context.Background(), &entry)
	require.NoError(t, err)
	return *inserted
}

// day builds a UTC timestamp on the given date.
func day(t *testing.T, date string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return ts.UTC()
}
