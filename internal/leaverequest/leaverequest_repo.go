package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	MarkDecided(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error)
	MarkCancelled(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
	FindCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryRef, error)
	FindEmployeeRef(ctx context.Context, employeeID uuid.UUID) (*EmployeeRef, error)
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

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Category").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Category").
		First(&lr, "id = ?", id).Error
	return &lr, err
}

// MarkDecided is the compare-and-set leg of the decision transaction. Zero
// rows affected means another decision already landed.
func (r *repository) MarkDecided(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error) {
	query := `
UPDATE leave_requests
SET
	status = $2,
	decided_by = $3,
	decision_comment = $4,
	decided_at = $5,
	updated_at = NOW()
WHERE id = $1
	AND status = $6
	AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id, outcome, reviewer, comment, at, StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkCancelled guards on both ownership and the pending status so a request
// can never be pulled back after a reviewer decided it.
func (r *repository) MarkCancelled(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	query := `
UPDATE leave_requests
SET
	status = $3,
	updated_at = NOW()
WHERE id = $1
	AND employee_id = $2
	AND status = $4
	AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id, ownerID, StatusCancelled, StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) FindCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryRef, error) {
	var ref CategoryRef
	err := r.db.WithContext(ctx).
		First(&ref, "id = ?", categoryID).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) FindEmployeeRef(ctx context.Context, employeeID uuid.UUID) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("deleted_at IS NULL").
		First(&ref, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
