package repositories

import (
	"fmt"

	"github.com/rdmitry/openforum/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository defines the interface for comment vote operations
type VoteRepository interface {
	SetVote(commentID, userID uint, value int) error
	DeleteVote(commentID, userID uint) error
}

// PostgresVoteRepository implements VoteRepository for PostgreSQL
type PostgresVoteRepository struct {
	db *gorm.DB
}

// NewPostgresVoteRepository creates a new PostgresVoteRepository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// SetVote records or replaces the user's vote on a comment
func (r *PostgresVoteRepository) SetVote(commentID, userID uint, value int) error {
	if value != 1 && value != -1 {
		return fmt.Errorf("invalid vote value: %d", value)
	}
	vote := models.CommentVote{CommentID: commentID, UserID: userID, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&vote).Error
}

// DeleteVote removes the user's vote on a comment
func (r *PostgresVoteRepository) DeleteVote(commentID, userID uint) error {
	res := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentVote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vote not found")
	}
	return nil
}
