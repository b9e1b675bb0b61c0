package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"column:name;type:varchar(150);not null"`
	Code            string    `gorm:"column:code;type:varchar(30);not null;uniqueIndex:uq_project_code"`
	BillableDefault bool      `gorm:"column:billable_default;not null;default:true"`
	Active          bool      `gorm:"column:active;not null;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Project) TableName() string {
	return "projects"
}
