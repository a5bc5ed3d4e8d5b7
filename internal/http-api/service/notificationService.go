package service

import (
	"context"
	"errors"

	"musicbrainz/internal/http-api/models"
	"musicbrainz/internal/http-api/repository"
)

var ErrNotificationNotFound = errors.New("notification not found or already read")

type NotificationService interface {
	GetUnread(ctx context.Context, editorID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, editorID string, notificationID int64) error
	MarkAllAsRead(ctx context.Context, editorID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) GetUnread(ctx context.Context, editorID string) ([]models.Notification, error) {
	return s.repo.GetUnreadByEditor(ctx, editorID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, editorID string, notificationID int64) error {
	// Ownership is enforced inside the single UPDATE, not by a read-first
	// check, so a stranger's ID can never flip someone else's row.
	err := s.repo.MarkAsRead(ctx, editorID, notificationID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, editorID string) error {
	return s.repo.MarkAllAsRead(ctx, editorID)
}
