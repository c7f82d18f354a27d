package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentFormat selects which rendition of a content item a caller wants back
type ContentFormat string

const (
	FormatHTML   ContentFormat = "html"   // rendered markup
	FormatSource ContentFormat = "source" // raw text as submitted
)

// Post represents a discussion post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SiteID        uint               `json:"site_id" bson:"site_id"`
	UserID        uint               `json:"user_id" bson:"user_id"`
	Title         string             `json:"title" bson:"title"`
	Source        string             `json:"source" bson:"source"`   // raw markup as submitted
	Content       string             `json:"content" bson:"content"` // rendered HTML
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	SiteName string        `json:"site_name" validate:"required"`
	Title    string        `json:"title" validate:"required,min=1,max=200"`
	Content  string        `json:"content" validate:"required,min=1,max=20000"`
	Format   ContentFormat `json:"format,omitempty" validate:"omitempty,oneof=html source"`
}

// PreviewRequest defines the request body for previewing markup without persisting it
type PreviewRequest struct {
	Content string `json:"content" validate:"required,max=20000"`
}
