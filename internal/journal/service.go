// Package journal implements the journal entry engine: owner-scoped CRUD,
// query filtering, pagination, mood analytics, tag aggregation and sharing.
// The storage backend is injected as a store.EntryStore; the HTTP layer
// validates input before it reaches this package.
package journal

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/query"
	"github.com/solacejournal/solace-backend/internal/store"
)

// Service executes journal operations against an injected entry store.
type Service struct {
	store store.EntryStore
}

// NewService returns a journal service backed by st.
func NewService(st store.EntryStore) *Service {
	return &Service{store: st}
}

// CreateEntryInput carries the caller-controlled fields of a new entry.
// The owner, id and timestamps are set by the service and store.
type CreateEntryInput struct {
	Title          string
	Content        string
	Mood           models.Mood
	Tags           []string
	Attachments    []models.Attachment
	Privacy        string
	TherapistNotes string
	Location       string
	Weather        string
	Activities     []string
}

// Create inserts a new entry owned by userID. Privacy defaults to private.
func (s *Service) Create(ctx context.Context, userID string, in CreateEntryInput) (*models.JournalEntry, error) {
	privacy := in.Privacy
	if privacy == "" {
		privacy = models.PrivacyPrivate
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	attachments := in.Attachments
	if attachments == nil {
		attachments = []models.Attachment{}
	}

	entry := &models.JournalEntry{
		UserID:         userID,
		Title:          in.Title,
		Content:        in.Content,
		Mood:           in.Mood,
		Tags:           tags,
		Attachments:    attachments,
		Privacy:        privacy,
		TherapistNotes: in.TherapistNotes,
		Location:       in.Location,
		Weather:        in.Weather,
		Activities:     in.Activities,
	}
	return s.store.Insert(ctx, entry)
}

// ownerScoped builds the id+owner predicate every single-entry operation
// uses. An unparseable id behaves like a missing entry.
func ownerScoped(id, userID string) (query.Predicate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return query.All(
		query.Eq(query.FieldID, oid),
		query.Eq(query.FieldUserID, userID),
	), nil
}

// Get returns the entry with the given id owned by userID.
func (s *Service) Get(ctx context.Context, id, userID string) (*models.JournalEntry, error) {
	pred, err := ownerScoped(id, userID)
	if err != nil {
		return nil, err
	}
	entry, err := s.store.FindOne(ctx, pred)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// UpdateEntryInput is a partial update; nil fields are left unchanged.
type UpdateEntryInput struct {
	Title          *string
	Content        *string
	Mood           *models.Mood
	Tags           []string
	Attachments    []models.Attachment
	Privacy        *string
	TherapistNotes *string
	Location       *string
	Weather        *string
	Activities     []string
}

func (in UpdateEntryInput) patch() store.Patch {
	patch := store.Patch{}
	if in.Title != nil {
		patch["title"] = *in.Title
	}
	if in.Content != nil {
		patch["content"] = *in.Content
	}
	if in.Mood != nil {
		patch["mood"] = *in.Mood
	}
	if in.Tags != nil {
		patch["tags"] = in.Tags
	}
	if in.Attachments != nil {
		patch["attachments"] = in.Attachments
	}
	if in.Privacy != nil {
		patch["privacy"] = *in.Privacy
	}
	if in.TherapistNotes != nil {
		patch["therapist_notes"] = *in.TherapistNotes
	}
	if in.Location != nil {
		patch["location"] = *in.Location
	}
	if in.Weather != nil {
		patch["weather"] = *in.Weather
	}
	if in.Activities != nil {
		patch["activities"] = in.Activities
	}
	return patch
}

// Update applies a partial update to an owned entry.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateEntryInput) (*models.JournalEntry, error) {
	return s.updateOwned(ctx, id, userID, in.patch())
}

func (s *Service) updateOwned(ctx context.Context, id, userID string, patch store.Patch) (*models.JournalEntry, error) {
	pred, err := ownerScoped(id, userID)
	if err != nil {
		return nil, err
	}
	entry, err := s.store.UpdateOne(ctx, pred, patch)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// Delete permanently removes an owned entry. Archiving is the soft,
// reversible alternative.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	pred, err := ownerScoped(id, userID)
	if err != nil {
		return err
	}
	deleted, err := s.store.DeleteOne(ctx, pred)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Archive soft-excludes an entry from default listings and analytics.
// Archiving an already archived entry is a no-op, not an error.
func (s *Service) Archive(ctx context.Context, id, userID string) (*models.JournalEntry, error) {
	return s.updateOwned(ctx, id, userID, store.Patch{"is_archived": true})
}

// Unarchive reverses Archive.
func (s *Service) Unarchive(ctx context.Context, id, userID string) (*models.JournalEntry, error) {
	return s.updateOwned(ctx, id, userID, store.Patch{"is_archived": false})
}

// ToggleFavorite flips the favorite flag on an owned entry.
func (s *Service) ToggleFavorite(ctx context.Context, id, userID string) (*models.JournalEntry, error) {
	entry, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.updateOwned(ctx, id, userID, store.Patch{"is_favorite": !entry.IsFavorite})
}
