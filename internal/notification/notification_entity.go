package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipientID uuid.UUID `gorm:"column:recipient_id;type:uuid;not null;index:idx_notifications_recipient"`

	Title   string `gorm:"column:title;type:varchar(120);not null"`
	Message string `gorm:"column:message;type:text;not null"`

	DeliveredAt *time.Time `gorm:"column:delivered_at;type:timestamptz"`
	ReadAt      *time.Time `gorm:"column:read_at;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
