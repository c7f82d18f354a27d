package models

import "time"

// Watch is the per-(post, user) flag record: bookmark state, watch state
// (notify on new comments) and the last-read watermark. The author of a post
// or comment is always watching the post it belongs to.
type Watch struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	PostID            string    `json:"post_id" gorm:"index;uniqueIndex:idx_watch_post_user"`
	UserID            uint      `json:"user_id" gorm:"index;uniqueIndex:idx_watch_post_user"`
	Bookmarked        bool      `json:"bookmarked" gorm:"default:false"`
	Watching          bool      `json:"watching" gorm:"default:false"`
	LastReadCount     int       `json:"last_read_count" gorm:"default:0"`
	LastReadCommentID *uint     `json:"last_read_comment_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SetFlagRequest defines the request body for toggling a bookmark or watch flag
type SetFlagRequest struct {
	Value bool `json:"value"`
}

// SetReadRequest defines the request body for advancing the read watermark of a post
type SetReadRequest struct {
	ReadCommentsCount int   `json:"read_comments_count" validate:"min=0"`
	LastCommentID     *uint `json:"last_comment_id,omitempty"`
}
