package consumer

import (
	"context"
	"encoding/json"
	"go-workforce/internal/events"
	"go-workforce/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeNotificationDispatched marks inbox rows delivered once their event
// made it through the broker. Delivery is at-most-once from the core's point
// of view; a redelivered event is a no-op because delivered_at is only set
// when still NULL.
func ConsumeNotificationDispatched(
	ctx context.Context,
	reader *kafkago.Reader,
	repo notification.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification_dispatched")
	log.Info("notification dispatched consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification dispatched consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationDispatchedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification_dispatched event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := repo.MarkDelivered(ctx, event.NotificationID); err != nil {
			log.Error("mark notification delivered failed",
				zap.String("notification_id", event.NotificationID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}

		log.Info("notification marked delivered",
			zap.String("notification_id", event.NotificationID),
			zap.String("recipient_id", event.RecipientID),
		)
	}
}
