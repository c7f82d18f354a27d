package models

import "time"

// Comment represents a comment on a post. A nil ParentID means the comment
// replies to the post itself; otherwise it replies to another comment,
// forming a tree per post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"` // MongoDB ObjectID of the owning post, as hex
	UserID    uint      `json:"user_id" gorm:"index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	Source    string    `json:"source"`  // raw markup as submitted
	Content   string    `json:"content"` // rendered HTML
	Deleted   bool      `json:"deleted" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentWithVote is a comment row joined with its vote aggregate and the
// viewing user's own vote, produced by the repository in one query.
type CommentWithVote struct {
	Comment
	Rating     int  `json:"rating"`
	ViewerVote *int `json:"viewer_vote,omitempty"` // +1 / -1, nil when the viewer has not voted
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	ParentID *uint         `json:"parent_id,omitempty"`
	Content  string        `json:"content" validate:"required,min=1,max=10000"`
	Format   ContentFormat `json:"format,omitempty" validate:"omitempty,oneof=html source"`
}
