package repository

import (
	"context"

	"musicbrainz/internal/http-api/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetUnreadByEditor(ctx context.Context, editorID string) ([]models.Notification, error)
	// MarkAsRead flips one unread notification owned by editorID. Returns
	// ErrNotFound when the row is missing, already read, or owned by
	// someone else.
	MarkAsRead(ctx context.Context, editorID string, notificationID int64) error
	MarkAllAsRead(ctx context.Context, editorID string) error
	// ExistsForRelease guards the sweep against re-notifying the same
	// editor about the same release.
	ExistsForRelease(ctx context.Context, editorID string, releaseID int64) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetUnreadByEditor(ctx context.Context, editorID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("editor_id = ? AND read = false", editorID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, editorID string, notificationID int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND editor_id = ? AND read = false", notificationID, editorID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, editorID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("editor_id = ?", editorID).
		Update("read", true).Error
}

func (r *notificationRepository) ExistsForRelease(ctx context.Context, editorID string, releaseID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("editor_id = ? AND release_id = ?", editorID, releaseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
