package repositories

import (
	"github.com/rdmitry/openforum/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// The read queries return comments pre-joined with their vote aggregate and
// the viewing user's own vote, so callers never re-query per comment.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID string, viewerID uint) ([]models.CommentWithVote, error)
	GetCommentsByUserID(userID, viewerID uint, offset, limit int) ([]models.CommentWithVote, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

const commentWithVoteSelect = `
SELECT c.*,
       COALESCE(SUM(v.value), 0)                          AS rating,
       MAX(v.value) FILTER (WHERE v.user_id = ?)          AS viewer_vote
FROM comments c
LEFT JOIN comment_votes v ON v.comment_id = c.id
`

// GetCommentsByPostID retrieves all comments of a post, oldest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string, viewerID uint) ([]models.CommentWithVote, error) {
	var rows []models.CommentWithVote
	err := r.db.Raw(
		commentWithVoteSelect+"WHERE c.post_id = ? GROUP BY c.id ORDER BY c.created_at ASC",
		viewerID, postID,
	).Scan(&rows).Error
	return rows, err
}

// GetCommentsByUserID retrieves a page of comments by a specific author, newest first
func (r *PostgresCommentRepository) GetCommentsByUserID(userID, viewerID uint, offset, limit int) ([]models.CommentWithVote, error) {
	var rows []models.CommentWithVote
	err := r.db.Raw(
		commentWithVoteSelect+"WHERE c.user_id = ? GROUP BY c.id ORDER BY c.created_at DESC OFFSET ? LIMIT ?",
		viewerID, userID, offset, limit,
	).Scan(&rows).Error
	return rows, err
}
