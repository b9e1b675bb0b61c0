package timesheet

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *TimeEntry) error
	FindAll(ctx context.Context) ([]TimeEntry, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]TimeEntry, error)
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	UpdateDetails(ctx context.Context, e *TimeEntry) error
	MarkSubmitted(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
	MarkDecided(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
	FindEmployeeRef(ctx context.Context, employeeID uuid.UUID) (*EmployeeRef, error)
	ProjectExists(ctx context.Context, projectID uuid.UUID) (bool, error)
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

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]TimeEntry, error) {
	var entries []TimeEntry
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]TimeEntry, error) {
	var entries []TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&e, "id = ?", id).Error
	return &e, err
}

// UpdateDetails only touches the owner-editable columns; the reviewer fields
// stay exactly as the last decision left them.
func (r *repository) UpdateDetails(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).
		Model(&TimeEntry{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"entry_date": e.EntryDate,
			"project_id": e.ProjectID,
			"task":       e.Task,
			"hours":      e.Hours,
			"billable":   e.Billable,
		}).Error
}

// MarkSubmitted is a compare-and-set on the stored status; zero rows affected
// means the entry was not in a submittable state anymore.
func (r *repository) MarkSubmitted(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	query := `
UPDATE time_entries
SET
	status = $2,
	submitted_at = $3,
	updated_at = NOW()
WHERE id = $1
	AND status IN ($4, $5)
	AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id, StatusSubmitted, at, StatusDraft, StatusRejected)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkDecided guards on status = SUBMITTED so only one decision can ever win.
func (r *repository) MarkDecided(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error) {
	query := `
UPDATE time_entries
SET
	status = $2,
	reviewed_by = $3,
	review_comment = $4,
	reviewed_at = $5,
	updated_at = NOW()
WHERE id = $1
	AND status = $6
	AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id, outcome, reviewer, comment, at, StatusSubmitted)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TimeEntry{}, "id = ?", id).Error
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

func (r *repository) ProjectExists(ctx context.Context, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("projects").
		Where("id = ?", projectID).
		Where("active = TRUE").
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
