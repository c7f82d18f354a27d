package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedEntryKind distinguishes what kind of content produced a feed entry
type FeedEntryKind string

const (
	FeedEntryPost    FeedEntryKind = "post"
	FeedEntryComment FeedEntryKind = "comment"
)

// FeedEntry is one item in a user's feed, written by fan-out when new
// content is created (MongoDB "feeds" collection)
type FeedEntry struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"` // feed owner
	Kind      FeedEntryKind      `json:"kind" bson:"kind"`
	PostID    string             `json:"post_id" bson:"post_id"`
	CommentID *uint              `json:"comment_id,omitempty" bson:"comment_id,omitempty"`
	SiteID    uint               `json:"site_id" bson:"site_id"`
	ActorID   uint               `json:"actor_id" bson:"actor_id"` // who created the content
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
