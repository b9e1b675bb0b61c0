package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-workforce/internal/approval"
	"go-workforce/internal/notification"
	timesheeterrors "go-workforce/internal/timesheet/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

var maxDailyHours = decimal.NewFromInt(24)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]TimeEntryResponse, error)
	GetByID(ctx context.Context, id string) (TimeEntryResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error)
	Submit(ctx context.Context, actorID, id string) (TimeEntryResponse, error)
	Decide(ctx context.Context, actorID, actorRole, id string, req DecideTimeEntryRequest) (TimeEntryResponse, error)
	BulkDecide(ctx context.Context, actorID, actorRole string, req BulkDecideTimeEntriesRequest) (BulkDecideResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	repo       Repository
	dispatcher notification.Dispatcher
	logger     *zap.Logger
}

func NewService(repo Repository, dispatcher notification.Dispatcher, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{repo: repo, dispatcher: dispatcher, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateTimeEntryRequest) (TimeEntryResponse, error) {
	s.logger.Debug("create time entry requested",
		zap.String("actor_id", actorID),
		zap.String("entry_date", req.EntryDate),
		zap.Float64("hours", req.Hours),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeEntryResponse{}, timesheeterrors.ErrInvalidActorID
	}
	projectUUID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return TimeEntryResponse{}, timesheeterrors.ErrInvalidProjectID
	}
	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	hours, err := parseHours(req.Hours)
	if err != nil {
		s.logger.Warn("create time entry invalid hours",
			zap.String("actor_id", actorID),
			zap.Float64("hours", req.Hours),
		)
		return TimeEntryResponse{}, err
	}

	exists, err := s.repo.ProjectExists(ctx, projectUUID)
	if err != nil {
		s.logger.Error("create time entry project check failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	if !exists {
		return TimeEntryResponse{}, timesheeterrors.ErrProjectNotFound
	}

	e := &TimeEntry{
		ID:         uuid.New(),
		EmployeeID: actorUUID,
		EntryDate:  entryDate,
		ProjectID:  projectUUID,
		Task:       req.Task,
		Hours:      hours,
		Billable:   req.Billable,
		Status:     StatusDraft,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create time entry persist failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	s.logger.Info("create time entry success",
		zap.String("entry_id", e.ID.String()),
		zap.String("employee_id", actorID),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]TimeEntryResponse, error) {
	var (
		entries []TimeEntry
		err     error
	)
	if canReadAll {
		entries, err = s.repo.FindAll(ctx)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, timesheeterrors.ErrInvalidActorID
		}
		entries, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TimeEntryResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timesheeterrors.ErrEntryNotFound
		}
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error) {
	e, err := s.findOwnedEntry(ctx, actorID, id)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	if e.Status != StatusDraft && e.Status != StatusRejected {
		return TimeEntryResponse{}, timesheeterrors.ErrEntryNotEditable
	}

	projectUUID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return TimeEntryResponse{}, timesheeterrors.ErrInvalidProjectID
	}
	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	hours, err := parseHours(req.Hours)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	exists, err := s.repo.ProjectExists(ctx, projectUUID)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	if !exists {
		return TimeEntryResponse{}, timesheeterrors.ErrProjectNotFound
	}

	e.EntryDate = entryDate
	e.ProjectID = projectUUID
	e.Task = req.Task
	e.Hours = hours
	e.Billable = req.Billable

	if err := s.repo.UpdateDetails(ctx, e); err != nil {
		s.logger.Error("update time entry persist failed",
			zap.String("entry_id", id),
			zap.Error(err),
		)
		return TimeEntryResponse{}, err
	}
	s.logger.Info("update time entry success", zap.String("entry_id", id))

	return mapToResponse(*e), nil
}

func (s *service) Submit(ctx context.Context, actorID, id string) (TimeEntryResponse, error) {
	e, err := s.findOwnedEntry(ctx, actorID, id)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	if e.Status != StatusDraft && e.Status != StatusRejected {
		return TimeEntryResponse{}, timesheeterrors.ErrEntryNotSubmittable
	}

	now := time.Now().UTC()
	affected, err := s.repo.MarkSubmitted(ctx, e.ID, now)
	if err != nil {
		s.logger.Error("submit time entry persist failed",
			zap.String("entry_id", id),
			zap.Error(err),
		)
		return TimeEntryResponse{}, err
	}
	if affected == 0 {
		return TimeEntryResponse{}, timesheeterrors.ErrEntryNotSubmittable
	}

	e.Status = StatusSubmitted
	e.SubmittedAt = &now
	s.logger.Info("submit time entry success",
		zap.String("entry_id", id),
		zap.String("employee_id", actorID),
	)

	s.notifyManager(ctx, e)

	return mapToResponse(*e), nil
}

func (s *service) Decide(ctx context.Context, actorID, actorRole, id string, req DecideTimeEntryRequest) (TimeEntryResponse, error) {
	s.logger.Debug("decide time entry requested",
		zap.String("entry_id", id),
		zap.String("actor_id", actorID),
		zap.String("outcome", req.Outcome),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeEntryResponse{}, timesheeterrors.ErrInvalidActorID
	}
	if req.Outcome != StatusApproved && req.Outcome != StatusRejected {
		return TimeEntryResponse{}, timesheeterrors.ErrInvalidOutcome
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timesheeterrors.ErrEntryNotFound
		}
		return TimeEntryResponse{}, err
	}

	ownerRef, err := s.repo.FindEmployeeRef(ctx, e.EmployeeID)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	reviewer := approval.Reviewer{ID: actorUUID, Role: actorRole}
	if !approval.CanDecide(reviewer, ownerRef.ManagerID) {
		s.logger.Warn("decide time entry unauthorized",
			zap.String("entry_id", id),
			zap.String("actor_id", actorID),
			zap.String("actor_role", actorRole),
		)
		return TimeEntryResponse{}, timesheeterrors.ErrNotAuthorizedReviewer
	}
	if e.Status != StatusSubmitted {
		return TimeEntryResponse{}, timesheeterrors.ErrEntryNotDecidable
	}

	now := time.Now().UTC()
	comment := commentPtr(req.Comment)
	affected, err := s.repo.MarkDecided(ctx, e.ID, req.Outcome, actorUUID, comment, now)
	if err != nil {
		s.logger.Error("decide time entry persist failed",
			zap.String("entry_id", id),
			zap.Error(err),
		)
		return TimeEntryResponse{}, err
	}
	if affected == 0 {
		// Lost the race against a concurrent decision.
		return TimeEntryResponse{}, timesheeterrors.ErrEntryNotDecidable
	}

	e.Status = req.Outcome
	e.ReviewedBy = &actorUUID
	e.ReviewComment = comment
	e.ReviewedAt = &now
	s.logger.Info("decide time entry success",
		zap.String("entry_id", id),
		zap.String("outcome", req.Outcome),
	)

	s.notifyOwnerDecided(ctx, e, req.Outcome, req.Comment)

	return mapToResponse(*e), nil
}

// BulkDecide applies the decision to every entry independently: a failure on
// one entry never rolls back the others. One consolidated notification goes
// out per distinct owner, not per entry.
func (s *service) BulkDecide(ctx context.Context, actorID, actorRole string, req BulkDecideTimeEntriesRequest) (BulkDecideResponse, error) {
	s.logger.Debug("bulk decide time entries requested",
		zap.String("actor_id", actorID),
		zap.String("outcome", req.Outcome),
		zap.Int("count", len(req.EntryIDs)),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return BulkDecideResponse{}, timesheeterrors.ErrInvalidActorID
	}
	if !approval.CanBulkDecide(actorRole) {
		s.logger.Warn("bulk decide forbidden",
			zap.String("actor_id", actorID),
			zap.String("actor_role", actorRole),
		)
		return BulkDecideResponse{}, timesheeterrors.ErrBulkDecideAdminOnly
	}
	if req.Outcome != StatusApproved && req.Outcome != StatusRejected {
		return BulkDecideResponse{}, timesheeterrors.ErrInvalidOutcome
	}

	now := time.Now().UTC()
	comment := commentPtr(req.Comment)
	resp := BulkDecideResponse{Results: make([]BulkDecideItemResult, 0, len(req.EntryIDs))}
	decidedPerOwner := make(map[uuid.UUID]int)

	for _, entryID := range req.EntryIDs {
		e, err := s.repo.FindByID(ctx, entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = timesheeterrors.ErrEntryNotFound
			}
			resp.Failed++
			resp.Results = append(resp.Results, BulkDecideItemResult{EntryID: entryID, Error: err.Error()})
			continue
		}

		affected, err := s.repo.MarkDecided(ctx, e.ID, req.Outcome, actorUUID, comment, now)
		if err != nil {
			s.logger.Error("bulk decide entry persist failed",
				zap.String("entry_id", entryID),
				zap.Error(err),
			)
			resp.Failed++
			resp.Results = append(resp.Results, BulkDecideItemResult{EntryID: entryID, Error: err.Error()})
			continue
		}
		if affected == 0 {
			resp.Failed++
			resp.Results = append(resp.Results, BulkDecideItemResult{
				EntryID: entryID,
				Error:   timesheeterrors.ErrEntryNotDecidable.Message,
			})
			continue
		}

		resp.Decided++
		resp.Results = append(resp.Results, BulkDecideItemResult{EntryID: entryID, Ok: true})
		decidedPerOwner[e.EmployeeID]++
	}

	for ownerID, count := range decidedPerOwner {
		title := "Time entries approved"
		if req.Outcome == StatusRejected {
			title = "Time entries rejected"
		}
		s.dispatcher.Dispatch(ctx, ownerID, title,
			fmt.Sprintf("%d of your time entries were %s.", count, outcomeWord(req.Outcome)))
	}

	s.logger.Info("bulk decide time entries done",
		zap.Int("decided", resp.Decided),
		zap.Int("failed", resp.Failed),
		zap.Int("owners_notified", len(decidedPerOwner)),
	)

	return resp, nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	e, err := s.findOwnedEntry(ctx, actorID, id)
	if err != nil {
		return err
	}
	if e.Status != StatusDraft && e.Status != StatusRejected {
		return timesheeterrors.ErrEntryNotEditable
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findOwnedEntry(ctx context.Context, actorID, id string) (*TimeEntry, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, timesheeterrors.ErrInvalidActorID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheeterrors.ErrEntryNotFound
		}
		return nil, err
	}
	if e.EmployeeID != actorUUID {
		return nil, timesheeterrors.ErrNotEntryOwner
	}
	return e, nil
}

func (s *service) notifyManager(ctx context.Context, e *TimeEntry) {
	ownerRef, err := s.repo.FindEmployeeRef(ctx, e.EmployeeID)
	if err != nil {
		s.logger.Warn("submit notification skipped, owner lookup failed",
			zap.String("entry_id", e.ID.String()),
			zap.Error(err),
		)
		return
	}
	if ownerRef.ManagerID == nil {
		return
	}
	s.dispatcher.Dispatch(ctx, *ownerRef.ManagerID, "Time entry submitted",
		fmt.Sprintf("%s submitted %s hours on %s for review.",
			ownerRef.FullName, e.Hours.String(), e.EntryDate.Format("2006-01-02")))
}

func (s *service) notifyOwnerDecided(ctx context.Context, e *TimeEntry, outcome, comment string) {
	title := "Time entry approved"
	if outcome == StatusRejected {
		title = "Time entry rejected"
	}
	message := fmt.Sprintf("Your time entry for %s was %s.",
		e.EntryDate.Format("2006-01-02"), outcomeWord(outcome))
	if comment != "" {
		message += " Comment: " + comment
	}
	s.dispatcher.Dispatch(ctx, e.EmployeeID, title, message)
}

func outcomeWord(outcome string) string {
	if outcome == StatusRejected {
		return "rejected"
	}
	return "approved"
}

func commentPtr(comment string) *string {
	if comment == "" {
		return nil
	}
	return &comment
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, timesheeterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseHours(v float64) (decimal.Decimal, error) {
	hours := decimal.NewFromFloat(v)
	if hours.IsNegative() || hours.GreaterThan(maxDailyHours) {
		return decimal.Decimal{}, timesheeterrors.ErrInvalidHours
	}
	return hours, nil
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		EntryDate:  e.EntryDate.Format("2006-01-02"),
		ProjectID:  e.ProjectID.String(),
		Task:       e.Task,
		Hours:      e.Hours,
		Billable:   e.Billable,
		Status:     e.Status,
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
	}
	if e.ReviewedBy != nil {
		v := e.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	resp.ReviewComment = e.ReviewComment
	if e.SubmittedAt != nil {
		v := e.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	if e.ReviewedAt != nil {
		v := e.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(entries []TimeEntry) []TimeEntryResponse {
	resp := make([]TimeEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
