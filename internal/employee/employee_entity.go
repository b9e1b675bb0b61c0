package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string     `gorm:"column:full_name;type:varchar(150);not null"`
	Email     string     `gorm:"column:email;type:varchar(255);uniqueIndex:uq_employee_email"`
	Phone     string     `gorm:"column:phone;type:varchar(30)"`
	Role      string     `gorm:"column:role;type:varchar(20);not null;default:'EMPLOYEE'"`
	ManagerID *uuid.UUID `gorm:"column:manager_id;type:uuid;index"`
	HireDate  time.Time  `gorm:"column:hire_date;type:date;not null"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Manager *Employee `gorm:"foreignKey:ManagerID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}
