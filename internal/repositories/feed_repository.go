package repositories

import (
	"context"

	"github.com/rdmitry/openforum/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedRepository defines the interface for feed entry operations
type FeedRepository interface {
	InsertEntries(ctx context.Context, entries []models.FeedEntry) error
	GetFeedByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.FeedEntry, error)
}

// MongoFeedRepository implements FeedRepository for MongoDB
type MongoFeedRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedRepository creates a new MongoFeedRepository
func NewMongoFeedRepository(db *mongo.Database) *MongoFeedRepository {
	return &MongoFeedRepository{collection: db.Collection("feeds")}
}

// InsertEntries writes a batch of feed entries, one per recipient
func (r *MongoFeedRepository) InsertEntries(ctx context.Context, entries []models.FeedEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i := range entries {
		docs[i] = entries[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetFeedByUserID retrieves a user's feed entries, newest first
func (r *MongoFeedRepository) GetFeedByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.FeedEntry, error) {
	var entries []models.FeedEntry
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
