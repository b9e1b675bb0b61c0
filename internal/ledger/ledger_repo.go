package ledger

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	Exists(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID) (bool, error)
	Find(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID) (*LeaveBalance, error)
	FindAllByEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalance, error)
	Deduct(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (int64, error)
	Restore(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (int64, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

// Writes go through raw SQL so they participate in the caller's transaction;
// reads outside a transaction use gorm.
func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	query := `
        INSERT INTO leave_balances (
            id, employee_id, year, category_id, allocated, used, balance, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
    `

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		b.ID, b.EmployeeID, b.Year, b.CategoryID,
		b.Allocated, b.Used, b.Balance,
	)
	return err
}

func (r *repository) Exists(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID) (bool, error) {
	query := `
SELECT COUNT(1)
FROM leave_balances
WHERE employee_id = $1 AND year = $2 AND category_id = $3
`
	var count int64
	err := r.execer().QueryRowContext(ctx, query, employeeID, year, categoryID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Find(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		First(&b, "category_id = ?", categoryID).Error
	return &b, err
}

func (r *repository) FindAllByEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Order("created_at ASC").
		Find(&balances).Error
	return balances, err
}

// Deduct applies used += days, balance -= days in a single compare-and-set.
// Zero rows affected means the row is missing or the balance re-check failed;
// the caller distinguishes the two via Exists.
func (r *repository) Deduct(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (int64, error) {
	query := `
UPDATE leave_balances
SET
	used = used + $4,
	balance = balance - $4,
	updated_at = NOW()
WHERE employee_id = $1 AND year = $2 AND category_id = $3
	AND balance >= $4
`
	res, err := r.execer().ExecContext(ctx, query, employeeID, year, categoryID, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Restore is the inverse compare-and-set, guarded by used >= days so a
// reversal can never push used negative.
func (r *repository) Restore(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (int64, error) {
	query := `
UPDATE leave_balances
SET
	used = used - $4,
	balance = balance + $4,
	updated_at = NOW()
WHERE employee_id = $1 AND year = $2 AND category_id = $3
	AND used >= $4
`
	res, err := r.execer().ExecContext(ctx, query, employeeID, year, categoryID, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
