package models

import "time"

// CommentVote represents a single user's up/down vote on a comment
type CommentVote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_vote"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_vote"`
	Value     int       `json:"value"` // +1 or -1
	CreatedAt time.Time `json:"created_at"`
}
