package notification

import (
	"context"
	"encoding/json"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher is the side-effect sink the lifecycles call once per
// externally visible state transition. Delivery is best-effort: a dispatch
// failure is logged and swallowed, never propagated, so it can never roll
// back the transition that triggered it. Callers invoke it after commit.
//
//go:generate mockgen -source=notification_dispatcher.go -destination=mock/notification_dispatcher_mock.go -package=mock
type Dispatcher interface {
	Dispatch(ctx context.Context, recipientID uuid.UUID, title, message string)
}

type dispatcher struct {
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewDispatcher builds the default dispatcher: the notification row is the
// record, the outbox event is the asynchronous fan-out. outboxRepo may be nil
// when no broker is configured; the inbox row still gets written.
func NewDispatcher(repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &dispatcher{repo: repo, outbox: outboxRepo, logger: l}
}

func (d *dispatcher) Dispatch(ctx context.Context, recipientID uuid.UUID, title, message string) {
	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
	}

	if err := d.repo.Create(ctx, n); err != nil {
		d.logger.Error("notification persist failed",
			zap.String("recipient_id", recipientID.String()),
			zap.String("title", title),
			zap.Error(err),
		)
		return
	}

	if d.outbox == nil {
		return
	}

	payload, err := json.Marshal(events.NotificationDispatchedEvent{
		EventType:      "notification.dispatched",
		NotificationID: n.ID.String(),
		RecipientID:    recipientID.String(),
		Title:          title,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		d.logger.Error("notification event encode failed", zap.Error(err))
		return
	}

	if err := d.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "notification",
		AggregateID:   n.ID.String(),
		EventType:     "notification.dispatched",
		Topic:         events.NotificationDispatchedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		d.logger.Error("notification outbox persist failed",
			zap.String("notification_id", n.ID.String()),
			zap.Error(err),
		)
		return
	}

	d.logger.Debug("notification dispatched",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient_id", recipientID.String()),
		zap.String("title", title),
	)
}
