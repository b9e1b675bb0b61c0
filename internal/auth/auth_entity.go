package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login account bound to exactly one employee. The role is not
// stored here; it lives on the employee row and gets resolved at login.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_employee"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	// Resolved from the employee row, never persisted here.
	FullName string `gorm:"-"`
	Role     string `gorm:"-"`
}
