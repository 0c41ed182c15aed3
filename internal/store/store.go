// Package store provides durable keyed storage of journal entries. The
// EntryStore interface is the single seam between the journal service and a
// backend; MongoStore is the production implementation and MemoryStore backs
// tests and Mongo-less development runs.
package store

import (
	"context"

	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/query"
)

// Sort describes result ordering for FindMany. Field uses the query package
// field names. Ties are broken by insertion order, so sorts are stable.
type Sort struct {
	Field string
	Desc  bool
}

// Patch is a partial update keyed by bson field name. Backends refresh
// updated_at on every applied patch.
type Patch map[string]interface{}

// TagCount is one row of a tag frequency aggregation.
type TagCount struct {
	Tag   string `bson:"tag" json:"tag"`
	Count int    `bson:"count" json:"count"`
}

// EntryStore is the storage contract the journal service is built against.
// FindOne and UpdateOne return (nil, nil) when no entry matches; DeleteOne
// returns false. Storage failures propagate unwrapped.
type EntryStore interface {
	Insert(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error)
	FindOne(ctx context.Context, pred query.Predicate) (*models.JournalEntry, error)
	FindMany(ctx context.Context, pred query.Predicate, sort Sort, skip, limit int64) ([]models.JournalEntry, error)
	Count(ctx context.Context, pred query.Predicate) (int64, error)
	UpdateOne(ctx context.Context, pred query.Predicate, patch Patch) (*models.JournalEntry, error)
	DeleteOne(ctx context.Context, pred query.Predicate) (bool, error)
	AggregateTagCounts(ctx context.Context, pred query.Predicate, limit int64) ([]TagCount, error)
}
