package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-workforce/internal/approval"
	"go-workforce/internal/ledger"
	ledgererrors "go-workforce/internal/ledger/errors"
	leaverequesterrors "go-workforce/internal/leaverequest/errors"
	"go-workforce/internal/notification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

var halfDayCount = decimal.NewFromFloat(0.5)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	Decide(ctx context.Context, actorID, actorRole, id string, req DecideLeaveRequestRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
}

type service struct {
	sqlDB      *sql.DB
	repo       Repository
	ledger     ledger.Service
	dispatcher notification.Dispatcher
	logger     *zap.Logger
}

func NewService(
	sqlDB *sql.DB,
	repo Repository,
	ledgerService ledger.Service,
	dispatcher notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		sqlDB:      sqlDB,
		repo:       repo,
		ledger:     ledgerService,
		dispatcher: dispatcher,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request requested",
		zap.String("actor_id", actorID),
		zap.String("category_id", req.CategoryID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Bool("half_day", req.HalfDay),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}
	categoryUUID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidCategoryID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}

	var halfDayPeriod *string
	if req.HalfDay {
		if !startDate.Equal(endDate) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrHalfDayRange
		}
		if req.HalfDayPeriod == "" {
			return LeaveRequestResponse{}, leaverequesterrors.ErrHalfDayPeriodRequired
		}
		halfDayPeriod = &req.HalfDayPeriod
	} else if req.HalfDayPeriod != "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrHalfDayPeriodUnexpected
	}

	category, err := s.repo.FindCategory(ctx, categoryUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrCategoryNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if !category.Active {
		return LeaveRequestResponse{}, leaverequesterrors.ErrCategoryInactive
	}
	if category.AttachmentRequired && (req.AttachmentURL == nil || *req.AttachmentURL == "") {
		return LeaveRequestResponse{}, leaverequesterrors.ErrAttachmentRequired
	}

	var backupID *uuid.UUID
	if req.BackupEmployeeID != nil && *req.BackupEmployeeID != "" {
		parsed, err := uuid.Parse(*req.BackupEmployeeID)
		if err != nil {
			return LeaveRequestResponse{}, leaverequesterrors.ErrBackupNotFound
		}
		if parsed == actorUUID {
			return LeaveRequestResponse{}, leaverequesterrors.ErrBackupIsSelf
		}
		if _, err := s.repo.FindEmployeeRef(ctx, parsed); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveRequestResponse{}, leaverequesterrors.ErrBackupNotFound
			}
			return LeaveRequestResponse{}, err
		}
		backupID = &parsed
	}

	totalDays := dayCount(startDate, endDate, req.HalfDay)

	// Advisory only. The deduction inside Decide re-checks the balance; this
	// read just rejects requests that are obviously over budget.
	year := time.Now().UTC().Year()
	sufficient, err := s.ledger.CheckSufficient(ctx, actorUUID, year, categoryUUID, totalDays)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !sufficient {
		s.logger.Warn("create leave request over balance",
			zap.String("employee_id", actorID),
			zap.String("category_id", req.CategoryID),
			zap.String("days", totalDays.String()),
		)
		return LeaveRequestResponse{}, ledgererrors.ErrInsufficientBalance
	}

	lr := &LeaveRequest{
		ID:               uuid.New(),
		EmployeeID:       actorUUID,
		CategoryID:       categoryUUID,
		StartDate:        startDate,
		EndDate:          endDate,
		HalfDay:          req.HalfDay,
		HalfDayPeriod:    halfDayPeriod,
		TotalDays:        totalDays,
		Reason:           req.Reason,
		BackupEmployeeID: backupID,
		AttachmentURL:    req.AttachmentURL,
		Status:           StatusPending,
	}
	if err := s.repo.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	lr.Category = category
	s.logger.Info("create leave request success",
		zap.String("request_id", lr.ID.String()),
		zap.String("employee_id", actorID),
		zap.String("days", totalDays.String()),
	)

	s.notifyCreated(ctx, lr, category.Name)

	return mapToResponse(*lr), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveRequestResponse, error) {
	var (
		requests []LeaveRequest
		err      error
	)
	if canReadAll {
		requests, err = s.repo.FindAll(ctx)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, leaverequesterrors.ErrInvalidActorID
		}
		requests, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveRequestResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapToResponse(lr)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*lr), nil
}

// Decide settles a pending request. The status flip and the ledger deduction
// share one database transaction: if the deduction fails, the whole
// transaction rolls back and the request is still pending.
func (s *service) Decide(ctx context.Context, actorID, actorRole, id string, req DecideLeaveRequestRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("decide leave request requested",
		zap.String("request_id", id),
		zap.String("actor_id", actorID),
		zap.String("outcome", req.Outcome),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}
	if req.Outcome != StatusApproved && req.Outcome != StatusRejected {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidOutcome
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	ownerRef, err := s.repo.FindEmployeeRef(ctx, lr.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	reviewer := approval.Reviewer{ID: actorUUID, Role: actorRole}
	if !approval.CanDecide(reviewer, ownerRef.ManagerID) {
		s.logger.Warn("decide leave request unauthorized",
			zap.String("request_id", id),
			zap.String("actor_id", actorID),
			zap.String("actor_role", actorRole),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotAuthorizedReviewer
	}
	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotDecidable
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	comment := commentPtr(req.Comment)
	qtx := s.repo.WithTx(tx)

	affected, err := qtx.MarkDecided(ctx, lr.ID, req.Outcome, actorUUID, comment, now)
	if err != nil {
		s.logger.Error("decide leave request persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	if affected == 0 {
		// Lost the race against a concurrent decision.
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotDecidable
	}

	if req.Outcome == StatusApproved {
		if err := s.ledger.PostDeduction(ctx, tx, lr.EmployeeID, now.Year(), lr.CategoryID, lr.TotalDays); err != nil {
			s.logger.Warn("approval aborted, ledger deduction failed",
				zap.String("request_id", id),
				zap.String("employee_id", lr.EmployeeID.String()),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave request commit failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	lr.Status = req.Outcome
	lr.DecidedBy = &actorUUID
	lr.DecisionComment = comment
	lr.DecidedAt = &now
	s.logger.Info("decide leave request success",
		zap.String("request_id", id),
		zap.String("outcome", req.Outcome),
	)

	s.notifyDecided(ctx, lr, req.Outcome, req.Comment)

	return mapToResponse(*lr), nil
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if lr.EmployeeID != actorUUID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotRequestOwner
	}

	affected, err := s.repo.MarkCancelled(ctx, lr.ID, actorUUID)
	if err != nil {
		s.logger.Error("cancel leave request persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	if affected == 0 {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotCancellable
	}

	lr.Status = StatusCancelled
	s.logger.Info("cancel leave request success",
		zap.String("request_id", id),
		zap.String("employee_id", actorID),
	)

	return mapToResponse(*lr), nil
}

func (s *service) notifyCreated(ctx context.Context, lr *LeaveRequest, categoryName string) {
	ownerRef, err := s.repo.FindEmployeeRef(ctx, lr.EmployeeID)
	if err != nil {
		s.logger.Warn("create notification skipped, owner lookup failed",
			zap.String("request_id", lr.ID.String()),
			zap.Error(err),
		)
		return
	}

	span := fmt.Sprintf("%s to %s", lr.StartDate.Format("2006-01-02"), lr.EndDate.Format("2006-01-02"))
	if lr.HalfDay {
		span = fmt.Sprintf("a half day (%s) on %s", *lr.HalfDayPeriod, lr.StartDate.Format("2006-01-02"))
	}

	if ownerRef.ManagerID != nil {
		s.dispatcher.Dispatch(ctx, *ownerRef.ManagerID, "Leave request pending",
			fmt.Sprintf("%s requested %s %s leave, %s.",
				ownerRef.FullName, lr.TotalDays.String(), categoryName, span))
	}
	if lr.BackupEmployeeID != nil {
		s.dispatcher.Dispatch(ctx, *lr.BackupEmployeeID, "Named as leave backup",
			fmt.Sprintf("%s listed you as their backup for %s.", ownerRef.FullName, span))
	}
}

func (s *service) notifyDecided(ctx context.Context, lr *LeaveRequest, outcome, comment string) {
	title := "Leave request approved"
	word := "approved"
	if outcome == StatusRejected {
		title = "Leave request rejected"
		word = "rejected"
	}
	message := fmt.Sprintf("Your leave request for %s to %s was %s.",
		lr.StartDate.Format("2006-01-02"), lr.EndDate.Format("2006-01-02"), word)
	if comment != "" {
		message += " Comment: " + comment
	}
	s.dispatcher.Dispatch(ctx, lr.EmployeeID, title, message)
}

// dayCount is the inclusive calendar-day span, with a flat 0.5 for half days.
func dayCount(start, end time.Time, halfDay bool) decimal.Decimal {
	if halfDay {
		return halfDayCount
	}
	days := int64(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(days)
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
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            lr.ID.String(),
		EmployeeID:    lr.EmployeeID.String(),
		CategoryID:    lr.CategoryID.String(),
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		HalfDay:       lr.HalfDay,
		HalfDayPeriod: lr.HalfDayPeriod,
		TotalDays:     lr.TotalDays,
		Reason:        lr.Reason,
		AttachmentURL: lr.AttachmentURL,
		Status:        lr.Status,
		CreatedAt:     lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.Employee != nil {
		resp.EmployeeName = lr.Employee.FullName
	}
	if lr.Category != nil {
		resp.CategoryName = lr.Category.Name
	}
	if lr.BackupEmployeeID != nil {
		v := lr.BackupEmployeeID.String()
		resp.BackupEmployeeID = &v
	}
	if lr.DecidedBy != nil {
		v := lr.DecidedBy.String()
		resp.DecidedBy = &v
	}
	resp.DecisionComment = lr.DecisionComment
	if lr.DecidedAt != nil {
		v := lr.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
