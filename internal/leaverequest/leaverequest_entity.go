package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index"`

	StartDate     time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate       time.Time `gorm:"column:end_date;type:date;not null"`
	HalfDay       bool      `gorm:"column:half_day;not null;default:false"`
	HalfDayPeriod *string   `gorm:"column:half_day_period;type:varchar(2)"`

	// TotalDays is fixed at creation. 0.5 for a half day, otherwise the
	// inclusive calendar-day span, weekends included.
	TotalDays decimal.Decimal `gorm:"column:total_days;type:numeric(5,2);not null"`

	Reason           string     `gorm:"column:reason;type:text;not null"`
	BackupEmployeeID *uuid.UUID `gorm:"column:backup_employee_id;type:uuid"`
	AttachmentURL    *string    `gorm:"column:attachment_url;type:text"`

	Status          string     `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index"`
	DecidedBy       *uuid.UUID `gorm:"column:decided_by;type:uuid"`
	DecisionComment *string    `gorm:"column:decision_comment;type:text"`
	DecidedAt       *time.Time `gorm:"column:decided_at;type:timestamptz"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	Category *CategoryRef `gorm:"foreignKey:CategoryID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type EmployeeRef struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName  string     `gorm:"column:full_name"`
	ManagerID *uuid.UUID `gorm:"column:manager_id;type:uuid"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// CategoryRef exposes the configuration flags the lifecycle validates against.
type CategoryRef struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name               string          `gorm:"column:name"`
	Paid               bool            `gorm:"column:paid"`
	ApprovalRequired   bool            `gorm:"column:approval_required"`
	AttachmentRequired bool            `gorm:"column:attachment_required"`
	DefaultAllocation  decimal.Decimal `gorm:"column:default_allocation_days"`
	Active             bool            `gorm:"column:active"`
}

func (CategoryRef) TableName() string {
	return "leave_categories"
}
