package timesheet_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"go-workforce/internal/domain"
	"go-workforce/internal/timesheet"
	timesheeterrors "go-workforce/internal/timesheet/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTimesheetRepository struct {
	withTxFn            func(tx *sql.Tx) timesheet.Repository
	createFn            func(ctx context.Context, e *timesheet.TimeEntry) error
	findAllFn           func(ctx context.Context) ([]timesheet.TimeEntry, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]timesheet.TimeEntry, error)
	findByIDFn          func(ctx context.Context, id string) (*timesheet.TimeEntry, error)
	updateDetailsFn     func(ctx context.Context, e *timesheet.TimeEntry) error
	markSubmittedFn     func(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
	markDecidedFn       func(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error)
	deleteFn            func(ctx context.Context, id string) error
	findEmployeeRefFn   func(ctx context.Context, employeeID uuid.UUID) (*timesheet.EmployeeRef, error)
	projectExistsFn     func(ctx context.Context, projectID uuid.UUID) (bool, error)
}

func (f *fakeTimesheetRepository) WithTx(tx *sql.Tx) timesheet.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimesheetRepository) Create(ctx context.Context, e *timesheet.TimeEntry) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeTimesheetRepository) FindAll(ctx context.Context) ([]timesheet.TimeEntry, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]timesheet.TimeEntry, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindByID(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimesheetRepository) UpdateDetails(ctx context.Context, e *timesheet.TimeEntry) error {
	if f.updateDetailsFn != nil {
		return f.updateDetailsFn(ctx, e)
	}
	return nil
}

func (f *fakeTimesheetRepository) MarkSubmitted(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	if f.markSubmittedFn != nil {
		return f.markSubmittedFn(ctx, id, at)
	}
	return 1, nil
}

func (f *fakeTimesheetRepository) MarkDecided(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error) {
	if f.markDecidedFn != nil {
		return f.markDecidedFn(ctx, id, outcome, reviewer, comment, at)
	}
	return 1, nil
}

func (f *fakeTimesheetRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTimesheetRepository) FindEmployeeRef(ctx context.Context, employeeID uuid.UUID) (*timesheet.EmployeeRef, error) {
	if f.findEmployeeRefFn != nil {
		return f.findEmployeeRefFn(ctx, employeeID)
	}
	return &timesheet.EmployeeRef{ID: employeeID, FullName: "Test Person"}, nil
}

func (f *fakeTimesheetRepository) ProjectExists(ctx context.Context, projectID uuid.UUID) (bool, error) {
	if f.projectExistsFn != nil {
		return f.projectExistsFn(ctx, projectID)
	}
	return true, nil
}

type dispatchedNote struct {
	recipientID uuid.UUID
	title       string
	message     string
}

type fakeDispatcher struct {
	mu    sync.Mutex
	notes []dispatchedNote
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, recipientID uuid.UUID, title, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, dispatchedNote{recipientID: recipientID, title: title, message: message})
}

func (f *fakeDispatcher) sent() []dispatchedNote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dispatchedNote(nil), f.notes...)
}

func TestTimesheetService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	projectID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		dispatcher := &fakeDispatcher{}
		svc := timesheet.NewService(repo, dispatcher)

		repo.createFn = func(ctx context.Context, e *timesheet.TimeEntry) error {
			assert.Equal(t, uuid.MustParse(actorID), e.EmployeeID)
			assert.Equal(t, timesheet.StatusDraft, e.Status)
			assert.True(t, e.Hours.Equal(decimal.NewFromFloat(7.5)))
			return nil
		}

		resp, err := svc.Create(ctx, actorID, timesheet.CreateTimeEntryRequest{
			EntryDate: "2026-02-10",
			ProjectID: projectID,
			Task:      "API integration",
			Hours:     7.5,
			Billable:  true,
		})

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusDraft, resp.Status)
		assert.Equal(t, "2026-02-10", resp.EntryDate)
		assert.Empty(t, dispatcher.sent())
	})

	t.Run("negative hours above 24", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		_, err := svc.Create(ctx, actorID, timesheet.CreateTimeEntryRequest{
			EntryDate: "2026-02-10",
			ProjectID: projectID,
			Task:      "overtime",
			Hours:     24.5,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidHours)
	})

	t.Run("negative hours below zero", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		_, err := svc.Create(ctx, actorID, timesheet.CreateTimeEntryRequest{
			EntryDate: "2026-02-10",
			ProjectID: projectID,
			Task:      "negative",
			Hours:     -1,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidHours)
	})

	t.Run("boundary 24 hours is allowed", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		_, err := svc.Create(ctx, actorID, timesheet.CreateTimeEntryRequest{
			EntryDate: "2026-02-10",
			ProjectID: projectID,
			Task:      "all-nighter",
			Hours:     24,
		})

		assert.NoError(t, err)
	})

	t.Run("negative unknown project", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		repo.projectExistsFn = func(ctx context.Context, pid uuid.UUID) (bool, error) {
			return false, nil
		}

		_, err := svc.Create(ctx, actorID, timesheet.CreateTimeEntryRequest{
			EntryDate: "2026-02-10",
			ProjectID: projectID,
			Task:      "ghost project",
			Hours:     8,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrProjectNotFound)
	})

	t.Run("negative bad date", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		_, err := svc.Create(ctx, actorID, timesheet.CreateTimeEntryRequest{
			EntryDate: "10/02/2026",
			ProjectID: projectID,
			Task:      "bad date",
			Hours:     8,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidDateFormat)
	})
}

func TestTimesheetService_Submit(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()
	entryID := uuid.New()

	draftEntry := func() *timesheet.TimeEntry {
		return &timesheet.TimeEntry{
			ID:         entryID,
			EmployeeID: ownerID,
			EntryDate:  time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			ProjectID:  uuid.New(),
			Task:       "API integration",
			Hours:      decimal.NewFromInt(8),
			Status:     timesheet.StatusDraft,
		}
	}

	t.Run("success notifies the manager", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		dispatcher := &fakeDispatcher{}
		svc := timesheet.NewService(repo, dispatcher)

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return draftEntry(), nil
		}
		repo.findEmployeeRefFn = func(ctx context.Context, eid uuid.UUID) (*timesheet.EmployeeRef, error) {
			return &timesheet.EmployeeRef{ID: ownerID, FullName: "Dana Flores", ManagerID: &managerID}, nil
		}

		resp, err := svc.Submit(ctx, ownerID.String(), entryID.String())

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusSubmitted, resp.Status)
		assert.NotNil(t, resp.SubmittedAt)

		notes := dispatcher.sent()
		assert.Len(t, notes, 1)
		assert.Equal(t, managerID, notes[0].recipientID)
	})

	t.Run("rejected entry can be resubmitted with a fresh timestamp", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		dispatcher := &fakeDispatcher{}
		svc := timesheet.NewService(repo, dispatcher)

		firstSubmit := time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC)
		e := draftEntry()
		e.Status = timesheet.StatusRejected
		e.SubmittedAt = &firstSubmit

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return e, nil
		}
		var stampedAt time.Time
		repo.markSubmittedFn = func(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
			stampedAt = at
			return 1, nil
		}
		repo.findEmployeeRefFn = func(ctx context.Context, eid uuid.UUID) (*timesheet.EmployeeRef, error) {
			return &timesheet.EmployeeRef{ID: ownerID, FullName: "Dana Flores", ManagerID: &managerID}, nil
		}

		resp, err := svc.Submit(ctx, ownerID.String(), entryID.String())

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusSubmitted, resp.Status)
		assert.True(t, stampedAt.After(firstSubmit))
	})

	t.Run("negative not owner", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return draftEntry(), nil
		}

		_, err := svc.Submit(ctx, uuid.New().String(), entryID.String())

		assert.ErrorIs(t, err, timesheeterrors.ErrNotEntryOwner)
	})

	t.Run("negative approved entry is not submittable", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		e := draftEntry()
		e.Status = timesheet.StatusApproved
		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return e, nil
		}

		_, err := svc.Submit(ctx, ownerID.String(), entryID.String())

		assert.ErrorIs(t, err, timesheeterrors.ErrEntryNotSubmittable)
	})

	t.Run("negative lost submit race", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return draftEntry(), nil
		}
		repo.markSubmittedFn = func(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
			return 0, nil
		}

		_, err := svc.Submit(ctx, ownerID.String(), entryID.String())

		assert.ErrorIs(t, err, timesheeterrors.ErrEntryNotSubmittable)
	})
}

func TestTimesheetService_Decide(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()
	entryID := uuid.New()

	submittedEntry := func() *timesheet.TimeEntry {
		now := time.Now().UTC()
		return &timesheet.TimeEntry{
			ID:          entryID,
			EmployeeID:  ownerID,
			EntryDate:   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			ProjectID:   uuid.New(),
			Task:        "API integration",
			Hours:       decimal.NewFromInt(8),
			Status:      timesheet.StatusSubmitted,
			SubmittedAt: &now,
		}
	}

	ownerWithManager := func(ctx context.Context, eid uuid.UUID) (*timesheet.EmployeeRef, error) {
		return &timesheet.EmployeeRef{ID: ownerID, FullName: "Dana Flores", ManagerID: &managerID}, nil
	}

	t.Run("manager approves and owner is notified", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		dispatcher := &fakeDispatcher{}
		svc := timesheet.NewService(repo, dispatcher)

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return submittedEntry(), nil
		}
		repo.findEmployeeRefFn = ownerWithManager
		repo.markDecidedFn = func(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error) {
			assert.Equal(t, timesheet.StatusApproved, outcome)
			assert.Equal(t, managerID, reviewer)
			return 1, nil
		}

		resp, err := svc.Decide(ctx, managerID.String(), domain.RoleManager, entryID.String(), timesheet.DecideTimeEntryRequest{
			Outcome: timesheet.StatusApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusApproved, resp.Status)

		notes := dispatcher.sent()
		assert.Len(t, notes, 1)
		assert.Equal(t, ownerID, notes[0].recipientID)
	})

	t.Run("admin rejects with a comment", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		dispatcher := &fakeDispatcher{}
		svc := timesheet.NewService(repo, dispatcher)

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return submittedEntry(), nil
		}
		repo.findEmployeeRefFn = ownerWithManager

		adminID := uuid.New()
		resp, err := svc.Decide(ctx, adminID.String(), domain.RoleAdmin, entryID.String(), timesheet.DecideTimeEntryRequest{
			Outcome: timesheet.StatusRejected,
			Comment: "wrong project code",
		})

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusRejected, resp.Status)
		assert.NotNil(t, resp.ReviewComment)
		assert.Equal(t, "wrong project code", *resp.ReviewComment)
	})

	t.Run("negative unrelated manager", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return submittedEntry(), nil
		}
		repo.findEmployeeRefFn = ownerWithManager

		_, err := svc.Decide(ctx, uuid.New().String(), domain.RoleManager, entryID.String(), timesheet.DecideTimeEntryRequest{
			Outcome: timesheet.StatusApproved,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrNotAuthorizedReviewer)
	})

	t.Run("negative already decided", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		e := submittedEntry()
		e.Status = timesheet.StatusApproved
		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return e, nil
		}
		repo.findEmployeeRefFn = ownerWithManager

		_, err := svc.Decide(ctx, managerID.String(), domain.RoleManager, entryID.String(), timesheet.DecideTimeEntryRequest{
			Outcome: timesheet.StatusApproved,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrEntryNotDecidable)
	})

	t.Run("negative lost decide race", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		dispatcher := &fakeDispatcher{}
		svc := timesheet.NewService(repo, dispatcher)

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return submittedEntry(), nil
		}
		repo.findEmployeeRefFn = ownerWithManager
		repo.markDecidedFn = func(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error) {
			return 0, nil
		}

		_, err := svc.Decide(ctx, managerID.String(), domain.RoleManager, entryID.String(), timesheet.DecideTimeEntryRequest{
			Outcome: timesheet.StatusRejected,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrEntryNotDecidable)
		assert.Empty(t, dispatcher.sent())
	})
}

func TestTimesheetService_BulkDecide(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("admin decides three entries across two owners, two notifications", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		dispatcher := &fakeDispatcher{}
		svc := timesheet.NewService(repo, dispatcher)

		ownerA := uuid.New()
		ownerB := uuid.New()
		entries := map[string]*timesheet.TimeEntry{}
		var ids []string
		for _, owner := range []uuid.UUID{ownerA, ownerA, ownerB} {
			id := uuid.New()
			entries[id.String()] = &timesheet.TimeEntry{
				ID:         id,
				EmployeeID: owner,
				EntryDate:  time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
				ProjectID:  uuid.New(),
				Task:       "sprint work",
				Hours:      decimal.NewFromInt(8),
				Status:     timesheet.StatusSubmitted,
			}
			ids = append(ids, id.String())
		}

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return entries[id], nil
		}

		resp, err := svc.BulkDecide(ctx, adminID.String(), domain.RoleAdmin, timesheet.BulkDecideTimeEntriesRequest{
			EntryIDs: ids,
			Outcome:  timesheet.StatusApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.Decided)
		assert.Equal(t, 0, resp.Failed)

		notes := dispatcher.sent()
		assert.Len(t, notes, 2)
		recipients := map[uuid.UUID]bool{}
		for _, n := range notes {
			recipients[n.recipientID] = true
		}
		assert.True(t, recipients[ownerA])
		assert.True(t, recipients[ownerB])
	})

	t.Run("one failure does not stop the rest", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		dispatcher := &fakeDispatcher{}
		svc := timesheet.NewService(repo, dispatcher)

		owner := uuid.New()
		okID := uuid.New()
		staleID := uuid.New()

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return &timesheet.TimeEntry{
				ID:         uuid.MustParse(id),
				EmployeeID: owner,
				EntryDate:  time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
				ProjectID:  uuid.New(),
				Task:       "sprint work",
				Hours:      decimal.NewFromInt(8),
				Status:     timesheet.StatusSubmitted,
			}, nil
		}
		repo.markDecidedFn = func(ctx context.Context, id uuid.UUID, outcome string, reviewer uuid.UUID, comment *string, at time.Time) (int64, error) {
			if id == staleID {
				return 0, nil
			}
			return 1, nil
		}

		resp, err := svc.BulkDecide(ctx, adminID.String(), domain.RoleAdmin, timesheet.BulkDecideTimeEntriesRequest{
			EntryIDs: []string{okID.String(), staleID.String()},
			Outcome:  timesheet.StatusRejected,
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Decided)
		assert.Equal(t, 1, resp.Failed)
		assert.Len(t, resp.Results, 2)
		assert.True(t, resp.Results[0].Ok)
		assert.False(t, resp.Results[1].Ok)
		assert.Len(t, dispatcher.sent(), 1)
	})

	t.Run("negative manager may not bulk decide", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		_, err := svc.BulkDecide(ctx, uuid.New().String(), domain.RoleManager, timesheet.BulkDecideTimeEntriesRequest{
			EntryIDs: []string{uuid.New().String()},
			Outcome:  timesheet.StatusApproved,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrBulkDecideAdminOnly)
	})
}

func TestTimesheetService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	entryID := uuid.New()

	t.Run("negative submitted entry is locked", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return &timesheet.TimeEntry{
				ID:         entryID,
				EmployeeID: ownerID,
				Status:     timesheet.StatusSubmitted,
			}, nil
		}

		_, err := svc.Update(ctx, ownerID.String(), entryID.String(), timesheet.UpdateTimeEntryRequest{
			EntryDate: "2026-02-11",
			ProjectID: uuid.New().String(),
			Task:      "edited",
			Hours:     6,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrEntryNotEditable)
	})

	t.Run("rejected entry can be fixed up", func(t *testing.T) {
		repo := &fakeTimesheetRepository{}
		svc := timesheet.NewService(repo, &fakeDispatcher{})

		repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.TimeEntry, error) {
			return &timesheet.TimeEntry{
				ID:         entryID,
				EmployeeID: ownerID,
				Status:     timesheet.StatusRejected,
			}, nil
		}

		resp, err := svc.Update(ctx, ownerID.String(), entryID.String(), timesheet.UpdateTimeEntryRequest{
			EntryDate: "2026-02-11",
			ProjectID: uuid.New().String(),
			Task:      "edited",
			Hours:     6,
		})

		assert.NoError(t, err)
		assert.Equal(t, "edited", resp.Task)
	})
}
