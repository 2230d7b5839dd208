package services

import (
	"context"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/utils"
)

type NotificationServiceInterface interface {
	MyNotifications(ctx context.Context, limit, offset uint64) ([]dto.NotificationDTO, uint64, error)
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
}

func NewNotificationService(notificationRepo repositories.NotificationRepositoryInterface) NotificationServiceInterface {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) MyNotifications(ctx context.Context, limit, offset uint64) ([]dto.NotificationDTO, uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if limit == 0 {
		limit = 20
	}

	records, total, err := s.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.NotificationDTO, 0, len(records))
	for _, rec := range records {
		result = append(result, dto.NotificationDTO{
			ID:        rec.ID,
			Message:   rec.Message,
			Category:  rec.Category,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, total, nil
}
