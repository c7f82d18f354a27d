package repositories

import (
	"fmt"

	"github.com/rdmitry/openforum/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowerIDs(userID uint) ([]uint, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}
