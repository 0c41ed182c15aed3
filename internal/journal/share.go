package journal

import (
	"context"

	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/query"
	"github.com/solacejournal/solace-backend/internal/store"
)

// Share replaces the entry's share list with targetUserIDs. Sharing a
// private entry is rejected here at write time, so a private entry can never
// acquire a share list in the first place.
func (s *Service) Share(ctx context.Context, entryID, userID string, targetUserIDs []string) (*models.JournalEntry, error) {
	entry, err := s.Get(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	if entry.Privacy == models.PrivacyPrivate {
		return nil, ErrForbidden
	}

	if targetUserIDs == nil {
		targetUserIDs = []string{}
	}
	return s.updateOwned(ctx, entryID, userID, store.Patch{"shared_with": targetUserIDs})
}

// SharedEntries returns the non-archived entries shared with userID, newest
// first. Entries demoted to private after sharing remain visible until their
// share list is cleared; the share operation is the enforcement point.
func (s *Service) SharedEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	pred := query.All(
		query.In(query.FieldSharedWith, userID),
		query.Eq(query.FieldIsArchived, false),
	)
	return s.store.FindMany(ctx, pred, store.Sort{Field: query.FieldCreatedAt, Desc: true}, 0, 0)
}
