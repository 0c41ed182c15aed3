package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/query"
)

const entriesCollection = "journal_entries"

// MongoStore stores journal entries in a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a store backed by the journal_entries collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(entriesCollection)}
}

// EnsureIndexes creates the per-user indexes used by listing, mood filtering,
// tag filtering and the archived default. Safe to call on every startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "mood.rating", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_archived", Value: 1}}},
		{Keys: bson.D{{Key: "shared_with", Value: 1}, {Key: "is_archived", Value: 1}}},
	})
	return err
}

// compileFilter translates a predicate tree into a bson filter document.
func compileFilter(pred query.Predicate) (bson.M, error) {
	switch p := pred.(type) {
	case query.Equals:
		return bson.M{p.Field: p.Value}, nil
	case query.Range:
		bounds := bson.M{}
		if p.Min != nil {
			bounds["$gte"] = p.Min
		}
		if p.Max != nil {
			bounds["$lte"] = p.Max
		}
		return bson.M{p.Field: bounds}, nil
	case query.InSet:
		return bson.M{p.Field: bson.M{"$in": p.Values}}, nil
	case query.Contains:
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(p.Substr), Options: "i"}
		return bson.M{p.Field: bson.M{"$regex": rx}}, nil
	case query.And:
		if len(p.Preds) == 0 {
			return bson.M{}, nil
		}
		parts := make([]bson.M, 0, len(p.Preds))
		for _, child := range p.Preds {
			f, err := compileFilter(child)
			if err != nil {
				return nil, err
			}
			parts = append(parts, f)
		}
		return bson.M{"$and": parts}, nil
	case query.Or:
		parts := make([]bson.M, 0, len(p.Preds))
		for _, child := range p.Preds {
			f, err := compileFilter(child)
			if err != nil {
				return nil, err
			}
			parts = append(parts, f)
		}
		return bson.M{"$or": parts}, nil
	default:
		return nil, fmt.Errorf("store: unknown predicate type %T", pred)
	}
}

func (s *MongoStore) Insert(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	now := time.Now().UTC()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	// CreatedAt survives when pre-set (imports, backfills); API-created
	// entries arrive with zero timestamps and get stamped here.
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *MongoStore) FindOne(ctx context.Context, pred query.Predicate) (*models.JournalEntry, error) {
	filter, err := compileFilter(pred)
	if err != nil {
		return nil, err
	}

	var entry models.JournalEntry
	err = s.coll.FindOne(ctx, filter).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MongoStore) FindMany(ctx context.Context, pred query.Predicate, sort Sort, skip, limit int64) ([]models.JournalEntry, error) {
	filter, err := compileFilter(pred)
	if err != nil {
		return nil, err
	}

	dir := 1
	if sort.Desc {
		dir = -1
	}
	findOptions := options.Find()
	// Secondary _id key keeps ordering stable across equal sort values.
	findOptions.SetSort(bson.D{{Key: sort.Field, Value: dir}, {Key: "_id", Value: 1}})
	if skip > 0 {
		findOptions.SetSkip(skip)
	}
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := s.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.JournalEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *MongoStore) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	filter, err := compileFilter(pred)
	if err != nil {
		return 0, err
	}
	return s.coll.CountDocuments(ctx, filter)
}

func (s *MongoStore) UpdateOne(ctx context.Context, pred query.Predicate, patch Patch) (*models.JournalEntry, error) {
	filter, err := compileFilter(pred)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for field, value := range patch {
		set[field] = value
	}

	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var entry models.JournalEntry
	err = s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, updateOptions).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, pred query.Predicate) (bool, error) {
	filter, err := compileFilter(pred)
	if err != nil {
		return false, err
	}
	result, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *MongoStore) AggregateTagCounts(ctx context.Context, pred query.Predicate, limit int64) ([]TagCount, error) {
	filter, err := compileFilter(pred)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		// Ties break on ascending tag name so output is deterministic.
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{"tag": "$_id", "count": 1, "_id": 0}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make([]TagCount, 0)
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
