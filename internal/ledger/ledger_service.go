package ledger

import (
	"context"
	"database/sql"
	"errors"
	ledgererrors "go-workforce/internal/ledger/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Allocation seeds one ledger row from a leave category's configured default.
type Allocation struct {
	CategoryID uuid.UUID
	Days       decimal.Decimal
}

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	CheckSufficient(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (bool, error)
	PostDeduction(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) error
	ReverseDeduction(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) error
	SeedEmployeeYear(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, year int, allocations []Allocation) error
	GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{repo: repo, logger: l}
}

// CheckSufficient is the advisory creation-time read. It does not reserve
// anything; the compare-and-set inside PostDeduction is the sole authority.
func (s *service) CheckSufficient(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (bool, error) {
	if !days.IsPositive() {
		return false, ledgererrors.ErrInvalidDays
	}

	b, err := s.repo.Find(ctx, employeeID, year, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("leave balance row missing on sufficiency check",
				zap.String("employee_id", employeeID.String()),
				zap.Int("year", year),
				zap.String("category_id", categoryID.String()),
			)
			return false, ledgererrors.ErrBalanceRowMissing
		}
		return false, err
	}

	return b.Balance.GreaterThanOrEqual(days), nil
}

// PostDeduction books days against the ledger row inside the caller's
// transaction. The UPDATE re-checks balance >= days, so a concurrent approval
// that drained the balance makes this fail instead of going negative. The
// caller must roll back its paired state transition on any error.
func (s *service) PostDeduction(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) error {
	if !days.IsPositive() {
		return ledgererrors.ErrInvalidDays
	}

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.Deduct(ctx, employeeID, year, categoryID, days)
	if err != nil {
		s.logger.Error("ledger deduction failed",
			zap.String("employee_id", employeeID.String()),
			zap.Int("year", year),
			zap.String("category_id", categoryID.String()),
			zap.Error(err),
		)
		return err
	}
	if affected > 0 {
		s.logger.Info("ledger deduction posted",
			zap.String("employee_id", employeeID.String()),
			zap.Int("year", year),
			zap.String("category_id", categoryID.String()),
			zap.String("days", days.String()),
		)
		return nil
	}

	exists, err := qtx.Exists(ctx, employeeID, year, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Error("leave balance row missing on deduction",
			zap.String("employee_id", employeeID.String()),
			zap.Int("year", year),
			zap.String("category_id", categoryID.String()),
		)
		return ledgererrors.ErrBalanceRowMissing
	}
	return ledgererrors.ErrInsufficientBalance
}

// ReverseDeduction returns previously booked days to the ledger. Nothing calls
// it from the lifecycles yet; an approved request that is later cancelled keeps
// its deduction until an operator decides otherwise.
func (s *service) ReverseDeduction(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) error {
	if !days.IsPositive() {
		return ledgererrors.ErrInvalidDays
	}

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.Restore(ctx, employeeID, year, categoryID, days)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.logger.Info("ledger deduction reversed",
			zap.String("employee_id", employeeID.String()),
			zap.Int("year", year),
			zap.String("category_id", categoryID.String()),
			zap.String("days", days.String()),
		)
		return nil
	}

	exists, err := qtx.Exists(ctx, employeeID, year, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Error("leave balance row missing on reversal",
			zap.String("employee_id", employeeID.String()),
			zap.Int("year", year),
			zap.String("category_id", categoryID.String()),
		)
		return ledgererrors.ErrBalanceRowMissing
	}
	return ledgererrors.ErrNothingToReverse
}

// SeedEmployeeYear creates one zero-usage row per category, inside the
// onboarding transaction.
func (s *service) SeedEmployeeYear(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, year int, allocations []Allocation) error {
	qtx := s.repo.WithTx(tx)

	for _, alloc := range allocations {
		b := &LeaveBalance{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Year:       year,
			CategoryID: alloc.CategoryID,
			Allocated:  alloc.Days,
			Used:       decimal.Zero,
			Balance:    alloc.Days,
		}
		if err := qtx.Create(ctx, b); err != nil {
			s.logger.Error("seed leave balance failed",
				zap.String("employee_id", employeeID.String()),
				zap.String("category_id", alloc.CategoryID.String()),
				zap.Int("year", year),
				zap.Error(err),
			)
			return err
		}
	}

	s.logger.Info("leave balances seeded",
		zap.String("employee_id", employeeID.String()),
		zap.Int("year", year),
		zap.Int("categories", len(allocations)),
	)
	return nil
}

func (s *service) GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, ledgererrors.ErrInvalidEmployeeID
	}

	balances, err := s.repo.FindAllByEmployeeYear(ctx, employeeUUID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	resp := BalanceResponse{
		ID:         b.ID.String(),
		EmployeeID: b.EmployeeID.String(),
		Year:       b.Year,
		CategoryID: b.CategoryID.String(),
		Allocated:  b.Allocated,
		Used:       b.Used,
		Balance:    b.Balance,
	}
	if b.Category != nil {
		resp.CategoryName = b.Category.Name
	}
	return resp
}
