package employee

import (
	"context"
	"database/sql"

	"go-workforce/internal/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	FindDefaultAllocations(ctx context.Context) ([]ledger.Allocation, error)
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

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

// Create runs through raw SQL so onboarding can insert the employee and the
// ledger rows inside one transaction.
func (r *repository) Create(ctx context.Context, e *Employee) error {
	query := `
INSERT INTO employees (id, full_name, email, phone, role, manager_id, hire_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query,
		e.ID, e.FullName, e.Email, e.Phone, e.Role, e.ManagerID, e.HireDate)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

// FindOptions returns the slim projection dropdowns need.
func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Select("id", "full_name").
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("Manager").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

// FindDefaultAllocations reads the active leave categories and their default
// yearly allocations, which seed a new employee's balance rows.
func (r *repository) FindDefaultAllocations(ctx context.Context) ([]ledger.Allocation, error) {
	var rows []struct {
		ID                    string
		DefaultAllocationDays decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("leave_categories").
		Select("id", "default_allocation_days").
		Where("active = TRUE").
		Where("deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	allocations := make([]ledger.Allocation, 0, len(rows))
	for _, row := range rows {
		categoryID, err := uuid.Parse(row.ID)
		if err != nil {
			continue
		}
		allocations = append(allocations, ledger.Allocation{
			CategoryID: categoryID,
			Days:       row.DefaultAllocationDays,
		})
	}
	return allocations, nil
}
