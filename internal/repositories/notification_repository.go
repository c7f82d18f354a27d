package repositories

import (
	"github.com/rdmitry/openforum/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(recipientID uint) error
	MarkReadForPost(recipientID uint, postID string) (bool, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(notificationID uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Update("is_read", true).Error
}

// MarkReadForPost marks all of the recipient's unread notifications caused by
// content under the given post as read, reporting whether any row changed
func (r *postgresNotificationRepository) MarkReadForPost(recipientID uint, postID string) (bool, error) {
	res := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND post_id = ? AND is_read = false", recipientID, postID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
