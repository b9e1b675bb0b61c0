package leavecategory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeaveCategory struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string          `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_leave_category_name"`
	Paid               bool            `gorm:"column:paid;not null;default:true"`
	ApprovalRequired   bool            `gorm:"column:approval_required;not null;default:true"`
	AttachmentRequired bool            `gorm:"column:attachment_required;not null;default:false"`
	DefaultAllocation  decimal.Decimal `gorm:"column:default_allocation_days;type:numeric(5,2);not null"`
	Active             bool            `gorm:"column:active;not null;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (LeaveCategory) TableName() string {
	return "leave_categories"
}
