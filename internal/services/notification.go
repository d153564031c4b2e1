package service

import (
	"context"

	"github.com/retailcore/pos-gateway/internal/models"
	"github.com/retailcore/pos-gateway/pkg/martapi"
)

// NotificationService is a thin passthrough; notifications are generated and
// stored by the inventory API.
type NotificationService struct {
	api martapi.Client
}

func NewNotificationService(api martapi.Client) *NotificationService {
	return &NotificationService{api: api}
}

func (s *NotificationService) List(ctx context.Context, page, pageSize int) (*models.NotificationListResponse, error) {
	return s.api.ListNotifications(ctx, page, pageSize)
}

func (s *NotificationService) Update(ctx context.Context, notificationID int64, req *models.NotificationUpdateRequest) (*models.MessageResponse, error) {
	return s.api.UpdateNotification(ctx, notificationID, req)
}
