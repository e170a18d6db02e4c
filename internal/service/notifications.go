package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"campushub/internal/cache"
	"campushub/internal/models"
	"campushub/internal/repository"
)

// NotificationService serves the per-user notification feed. The unread
// count is cached since the frontend polls it on every page.
type NotificationService struct {
	notifications *repository.NotificationRepository
	cache         *cache.Client
}

func NewNotificationService(notifications *repository.NotificationRepository, cacheClient *cache.Client) *NotificationService {
	return &NotificationService{notifications: notifications, cache: cacheClient}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	items, err := s.notifications.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, nil
}

// MarkRead flags the notification as read, scoped to the owner
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		return err
	}
	s.dropUnreadCount(ctx, userID)
	return nil
}

// UnreadCount returns the user's unread count, cache first
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	key := cache.UnreadCountKey(userID)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err != nil {
			slog.Warn("Unread count cache read failed", "error", err)
		} else if raw != nil {
			if count, err := strconv.Atoi(string(raw)); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, []byte(strconv.Itoa(count))); err != nil {
			slog.Warn("Unread count cache write failed", "error", err)
		}
	}

	return count, nil
}

func (s *NotificationService) dropUnreadCount(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.UnreadCountKey(userID)); err != nil {
		slog.Warn("Failed to drop unread count cache", "user_id", userID, "error", err)
	}
}
