package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TimeEntry struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_time_entries_employee_date"`

	EntryDate time.Time       `gorm:"column:entry_date;type:date;not null;index:idx_time_entries_employee_date"`
	ProjectID uuid.UUID       `gorm:"column:project_id;type:uuid;not null;index"`
	Task      string          `gorm:"column:task;type:varchar(200);not null"`
	Hours     decimal.Decimal `gorm:"column:hours;type:numeric(4,2);not null"`
	Billable  bool            `gorm:"column:billable;not null;default:false"`

	Status        string     `gorm:"column:status;type:varchar(20);not null;default:'DRAFT';index"`
	ReviewedBy    *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewComment *string    `gorm:"column:review_comment;type:text"`
	SubmittedAt   *time.Time `gorm:"column:submitted_at;type:timestamptz"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at;type:timestamptz"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// EmployeeRef carries the owner fields the lifecycle needs: the display name
// for notifications and the manager for approval routing.
type EmployeeRef struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName  string     `gorm:"column:full_name"`
	ManagerID *uuid.UUID `gorm:"column:manager_id;type:uuid"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
