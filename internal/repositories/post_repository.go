package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rdmitry/openforum/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound means the referenced post does not exist in the store
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsBySiteID(ctx context.Context, siteID uint, skip, limit int64) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error)
	IncrementCommentsCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB and assigns its identity
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrPostNotFound, id)
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsBySiteID retrieves posts of a site from MongoDB with pagination
func (r *MongoPostRepository) GetPostsBySiteID(ctx context.Context, siteID uint, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"site_id": siteID}, skip, limit)
}

// GetPostsByUserID retrieves posts by a specific author from MongoDB
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"user_id": userID}, skip, limit)
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// IncrementCommentsCount increments the comments count of a post
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": 1}})
	return err
}
