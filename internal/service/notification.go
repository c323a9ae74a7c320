package service

import (
	"context"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/logger"
	"memberfund-backend/internal/repository"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	logger.EnterMethod("notificationService.GetNotifications", "memberID", memberID, "page", page)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	notes, total, err := s.notificationRepo.List(ctx, memberID, pageSize, offset)
	if err != nil {
		logger.ExitMethodWithError("notificationService.GetNotifications", err, "memberID", memberID)
		return nil, 0, err
	}

	logger.ExitMethod("notificationService.GetNotifications", "memberID", memberID, "count", len(notes))
	return notes, total, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, memberID, notificationID int32) error {
	logger.EnterMethod("notificationService.MarkAsRead", "memberID", memberID, "notificationID", notificationID)

	if err := s.notificationRepo.MarkAsRead(ctx, notificationID, memberID); err != nil {
		logger.ExitMethodWithError("notificationService.MarkAsRead", err, "notificationID", notificationID)
		return err
	}

	logger.ExitMethod("notificationService.MarkAsRead", "notificationID", notificationID)
	return nil
}
