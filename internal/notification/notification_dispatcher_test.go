package notification_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepository struct {
	createFn             func(ctx context.Context, n *notification.Notification) error
	findAllByRecipientFn func(ctx context.Context, recipientID string) ([]notification.Notification, error)
	markReadFn           func(ctx context.Context, recipientID, id string) (int64, error)
	markDeliveredFn      func(ctx context.Context, id string) error
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindAllByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	if f.findAllByRecipientFn != nil {
		return f.findAllByRecipientFn(ctx, recipientID)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, recipientID, id string) (int64, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, recipientID, id)
	}
	return 1, nil
}

func (f *fakeNotificationRepository) MarkDelivered(ctx context.Context, id string) error {
	if f.markDeliveredFn != nil {
		return f.markDeliveredFn(ctx, id)
	}
	return nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("writes the inbox row and queues the outbox event", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		outbox := &fakeOutboxRepository{}
		d := notification.NewDispatcher(repo, outbox)

		var saved *notification.Notification
		repo.createFn = func(ctx context.Context, n *notification.Notification) error {
			saved = n
			return nil
		}
		var queued *kafka.OutboxEvent
		outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = &event
			return nil
		}

		d.Dispatch(ctx, recipientID, "Leave request approved", "Your leave request was approved.")

		assert.NotNil(t, saved)
		assert.Equal(t, recipientID, saved.RecipientID)
		assert.Equal(t, "Leave request approved", saved.Title)

		assert.NotNil(t, queued)
		assert.Equal(t, events.NotificationDispatchedTopic, queued.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, queued.Status)

		var payload events.NotificationDispatchedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &payload))
		assert.Equal(t, saved.ID.String(), payload.NotificationID)
		assert.Equal(t, recipientID.String(), payload.RecipientID)
	})

	t.Run("nil outbox still writes the inbox row", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		d := notification.NewDispatcher(repo, nil)

		created := false
		repo.createFn = func(ctx context.Context, n *notification.Notification) error {
			created = true
			return nil
		}

		d.Dispatch(ctx, recipientID, "Time entry submitted", "An entry is waiting for review.")

		assert.True(t, created)
	})

	t.Run("persist failure is swallowed and skips the outbox", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		outbox := &fakeOutboxRepository{}
		d := notification.NewDispatcher(repo, outbox)

		repo.createFn = func(ctx context.Context, n *notification.Notification) error {
			return errors.New("db down")
		}
		queued := false
		outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = true
			return nil
		}

		assert.NotPanics(t, func() {
			d.Dispatch(ctx, recipientID, "Leave request rejected", "Your leave request was rejected.")
		})
		assert.False(t, queued)
	})

	t.Run("outbox failure is swallowed too", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		outbox := &fakeOutboxRepository{}
		d := notification.NewDispatcher(repo, outbox)

		outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			return errors.New("outbox table missing")
		}

		assert.NotPanics(t, func() {
			d.Dispatch(ctx, recipientID, "Leave request approved", "Your leave request was approved.")
		})
	})
}
