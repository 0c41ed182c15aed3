package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacejournal/solace-backend/internal/models"
)

func TestShare_PrivateRejected(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	entry := seedEntry(t, st, models.JournalEntry{UserID: "user-1", Privacy: models.PrivacyPrivate})

	_, err := svc.Share(ctx, entry.ID.Hex(), "user-1", []string{"user-2"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestShare_ReplacesTargetSet(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	entry := seedEntry(t, st, models.JournalEntry{UserID: "user-1", Privacy: models.PrivacyTherapist})

	shared, err := svc.Share(ctx, entry.ID.Hex(), "user-1", []string{"user-2", "user-3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"user-2", "user-3"}, shared.SharedWith)

	// A later share replaces the list outright, it does not append.
	shared, err = svc.Share(ctx, entry.ID.Hex(), "user-1", []string{"user-4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"user-4"}, shared.SharedWith)

	// Nil clears the list.
	shared, err = svc.Share(ctx, entry.ID.Hex(), "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, shared.SharedWith)
}

func TestShare_WrongOwner(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	entry := seedEntry(t, st, models.JournalEntry{UserID: "user-1", Privacy: models.PrivacyPublic})

	_, err := svc.Share(ctx, entry.ID.Hex(), "user-2", []string{"user-3"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSharedEntries(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	seedEntry(t, st, models.JournalEntry{
		UserID: "owner", Title: "older", Privacy: models.PrivacyPublic,
		SharedWith: []string{"reader"}, CreatedAt: day(t, "2026-08-01"),
	})
	seedEntry(t, st, models.JournalEntry{
		UserID: "owner", Title: "newer", Privacy: models.PrivacyPublic,
		SharedWith: []string{"reader", "other"}, CreatedAt: day(t, "2026-08-05"),
	})
	seedEntry(t, st, models.JournalEntry{
		UserID: "owner", Title: "not shared with reader", Privacy: models.PrivacyPublic,
		SharedWith: []string{"other"},
	})
	seedEntry(t, st, models.JournalEntry{
		UserID: "owner", Title: "archived", Privacy: models.PrivacyPublic,
		SharedWith: []string{"reader"}, IsArchived: true,
	})

	entries, err := svc.SharedEntries(ctx, "reader")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "newer", entries[0].Title, "newest first")
	assert.Equal(t, "older", entries[1].Title)
}

func TestSharedEntries_DemotedPrivateStillVisible(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	entry := seedEntry(t, st, models.JournalEntry{
		UserID: "owner", Privacy: models.PrivacyTherapist, SharedWith: []string{"reader"},
	})

	// Demote to private without touching the share list. The read path does
	// not re-check privacy, so the entry stays visible.
	privacy := models.PrivacyPrivate
	_, err := svc.Update(ctx, entry.ID.Hex(), "owner", UpdateEntryInput{Privacy: &privacy})
	require.NoError(t, err)

	entries, err := svc.SharedEntries(ctx, "reader")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
