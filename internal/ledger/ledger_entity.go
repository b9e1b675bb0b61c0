package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is the per (employee, year, category) ledger row.
// Invariant: balance == allocated - used after every mutation. The used and
// balance columns are mutated only by Deduct/Restore, never written directly.
type LeaveBalance struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_balances_employee_year_category"`
	Year       int       `gorm:"column:year;type:int;not null;uniqueIndex:uq_balances_employee_year_category"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;uniqueIndex:uq_balances_employee_year_category"`

	Allocated decimal.Decimal `gorm:"column:allocated;type:numeric(6,2);not null"`
	Used      decimal.Decimal `gorm:"column:used;type:numeric(6,2);not null;default:0"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric(6,2);not null"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Category *CategoryRef `gorm:"foreignKey:CategoryID;references:ID"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

type CategoryRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (CategoryRef) TableName() string {
	return "leave_categories"
}
