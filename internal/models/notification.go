package models

import "time"

// NotificationType is the cause of a notification
type NotificationType string

const (
	NotificationMentioned NotificationType = "mentioned"  // actor mentioned the recipient in a post or comment
	NotificationRepliedTo NotificationType = "replied_to" // actor replied to the recipient's comment
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Type        NotificationType `json:"type" gorm:"size:30;index"`
	ActorID     uint             `json:"actor_id" gorm:"index"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	PostID      string           `json:"post_id" gorm:"index"` // owning post of the causing content
	CommentID   *uint            `json:"comment_id,omitempty"` // set when the cause is a comment
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}
