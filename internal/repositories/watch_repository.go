package repositories

import (
	"errors"

	"github.com/rdmitry/openforum/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchRepository defines the interface for per-(post, user) flag operations:
// bookmark state, watch state and the last-read watermark
type WatchRepository interface {
	GetWatch(postID string, userID uint) (*models.Watch, error)
	SetWatch(postID string, userID uint, watching bool) error
	SetBookmark(postID string, userID uint, bookmarked bool) error
	SetLastRead(postID string, userID uint, readCount int, lastCommentID *uint) (bool, error)
	GetWatcherIDs(postID string) ([]uint, error)
}

// PostgresWatchRepository implements WatchRepository for PostgreSQL
type PostgresWatchRepository struct {
	db *gorm.DB
}

// NewPostgresWatchRepository creates a new PostgresWatchRepository
func NewPostgresWatchRepository(db *gorm.DB) *PostgresWatchRepository {
	return &PostgresWatchRepository{db: db}
}

// GetWatch retrieves the flag record for (post, user). A missing row comes
// back as a zeroed record, since absent flags read as false.
func (r *PostgresWatchRepository) GetWatch(postID string, userID uint) (*models.Watch, error) {
	var watch models.Watch
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&watch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Watch{PostID: postID, UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

// SetWatch upserts the watching flag. Setting an already-set flag is a no-op.
func (r *PostgresWatchRepository) SetWatch(postID string, userID uint, watching bool) error {
	return r.setFlag(&models.Watch{PostID: postID, UserID: userID, Watching: watching}, "watching")
}

// SetBookmark upserts the bookmark flag
func (r *PostgresWatchRepository) SetBookmark(postID string, userID uint, bookmarked bool) error {
	return r.setFlag(&models.Watch{PostID: postID, UserID: userID, Bookmarked: bookmarked}, "bookmarked")
}

func (r *PostgresWatchRepository) setFlag(watch *models.Watch, column string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(watch).Error
}

// SetLastRead advances the read watermark for (post, user) and reports
// whether anything actually changed
func (r *PostgresWatchRepository) SetLastRead(postID string, userID uint, readCount int, lastCommentID *uint) (bool, error) {
	var watch models.Watch
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&watch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if readCount == 0 && lastCommentID == nil {
			return false, nil
		}
		watch = models.Watch{PostID: postID, UserID: userID, LastReadCount: readCount, LastReadCommentID: lastCommentID}
		if err := r.db.Create(&watch).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if watch.LastReadCount == readCount && uintPtrEqual(watch.LastReadCommentID, lastCommentID) {
		return false, nil
	}
	err = r.db.Model(&watch).Updates(map[string]interface{}{
		"last_read_count":      readCount,
		"last_read_comment_id": lastCommentID,
	}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetWatcherIDs returns the IDs of all users watching a post
func (r *PostgresWatchRepository) GetWatcherIDs(postID string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Watch{}).Where("post_id = ? AND watching = true", postID).Pluck("user_id", &ids).Error
	return ids, err
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
