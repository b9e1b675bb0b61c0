package notification

import (
	"context"
	"net/http"
	"time"

	"go-workforce/internal/shared/apperror"

	"go.uber.org/zap"
)

var errNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"notification not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	GetInbox(ctx context.Context, recipientID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, recipientID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetInbox(ctx context.Context, recipientID string) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindAllByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, recipientID, id string) error {
	affected, err := s.repo.MarkRead(ctx, recipientID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNotificationNotFound
	}
	return nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:          n.ID.String(),
		RecipientID: n.RecipientID.String(),
		Title:       n.Title,
		Message:     n.Message,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.DeliveredAt != nil {
		v := n.DeliveredAt.Format(time.RFC3339)
		resp.DeliveredAt = &v
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
