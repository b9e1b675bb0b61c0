package ledger_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-workforce/internal/ledger"
	ledgererrors "go-workforce/internal/ledger/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLedgerRepository struct {
	withTxFn                func(tx *sql.Tx) ledger.Repository
	createFn                func(ctx context.Context, b *ledger.LeaveBalance) error
	existsFn                func(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID) (bool, error)
	findFn                  func(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID) (*ledger.LeaveBalance, error)
	findAllByEmployeeYearFn func(ctx context.Context, employeeID uuid.UUID, year int) ([]ledger.LeaveBalance, error)
	deductFn                func(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (int64, error)
	restoreFn               func(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (int64, error)
}

func (f *fakeLedgerRepository) WithTx(tx *sql.Tx) ledger.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLedgerRepository) Create(ctx context.Context, b *ledger.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeLedgerRepository) Exists(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, employeeID, year, categoryID)
	}
	return true, nil
}

func (f *fakeLedgerRepository) Find(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID) (*ledger.LeaveBalance, error) {
	if f.findFn != nil {
		return f.findFn(ctx, employeeID, year, categoryID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerRepository) FindAllByEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) ([]ledger.LeaveBalance, error) {
	if f.findAllByEmployeeYearFn != nil {
		return f.findAllByEmployeeYearFn(ctx, employeeID, year)
	}
	return nil, nil
}

func (f *fakeLedgerRepository) Deduct(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (int64, error) {
	if f.deductFn != nil {
		return f.deductFn(ctx, employeeID, year, categoryID, days)
	}
	return 1, nil
}

func (f *fakeLedgerRepository) Restore(ctx context.Context, employeeID uuid.UUID, year int, categoryID uuid.UUID, days decimal.Decimal) (int64, error) {
	if f.restoreFn != nil {
		return f.restoreFn(ctx, employeeID, year, categoryID, days)
	}
	return 1, nil
}

func newBalance(employeeID, categoryID uuid.UUID, year int, allocated, used float64) ledger.LeaveBalance {
	alloc := decimal.NewFromFloat(allocated)
	u := decimal.NewFromFloat(used)
	return ledger.LeaveBalance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Year:       year,
		CategoryID: categoryID,
		Allocated:  alloc,
		Used:       u,
		Balance:    alloc.Sub(u),
	}
}

func TestLedgerService_CheckSufficient(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	categoryID := uuid.New()

	t.Run("sufficient balance", func(t *testing.T) {
		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		b := newBalance(employeeID, categoryID, 2026, 12, 3)
		repo.findFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID) (*ledger.LeaveBalance, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, 2026, year)
			assert.Equal(t, categoryID, cid)
			return &b, nil
		}

		ok, err := svc.CheckSufficient(ctx, employeeID, 2026, categoryID, decimal.NewFromInt(9))

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		b := newBalance(employeeID, categoryID, 2026, 12, 10)
		repo.findFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID) (*ledger.LeaveBalance, error) {
			return &b, nil
		}

		ok, err := svc.CheckSufficient(ctx, employeeID, 2026, categoryID, decimal.NewFromInt(3))

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("exact balance boundary", func(t *testing.T) {
		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		b := newBalance(employeeID, categoryID, 2026, 12, 10)
		repo.findFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID) (*ledger.LeaveBalance, error) {
			return &b, nil
		}

		ok, err := svc.CheckSufficient(ctx, employeeID, 2026, categoryID, decimal.NewFromInt(2))

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("negative missing row", func(t *testing.T) {
		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		repo.findFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID) (*ledger.LeaveBalance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := svc.CheckSufficient(ctx, employeeID, 2026, categoryID, decimal.NewFromInt(1))

		assert.ErrorIs(t, err, ledgererrors.ErrBalanceRowMissing)
	})

	t.Run("negative non-positive days", func(t *testing.T) {
		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		_, err := svc.CheckSufficient(ctx, employeeID, 2026, categoryID, decimal.Zero)

		assert.ErrorIs(t, err, ledgererrors.ErrInvalidDays)
	})
}

func TestLedgerService_PostDeduction(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	categoryID := uuid.New()
	days := decimal.NewFromFloat(2.5)

	setup := func(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *sql.Tx) {
		t.Helper()
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)
		return db, mock, tx
	}

	t.Run("success", func(t *testing.T) {
		db, _, tx := setup(t)
		defer db.Close()

		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		repo.deductFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID, d decimal.Decimal) (int64, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, 2026, year)
			assert.Equal(t, categoryID, cid)
			assert.True(t, d.Equal(days))
			return 1, nil
		}

		err := svc.PostDeduction(ctx, tx, employeeID, 2026, categoryID, days)

		assert.NoError(t, err)
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		db, _, tx := setup(t)
		defer db.Close()

		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		repo.deductFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID, d decimal.Decimal) (int64, error) {
			return 0, nil
		}
		repo.existsFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID) (bool, error) {
			return true, nil
		}

		err := svc.PostDeduction(ctx, tx, employeeID, 2026, categoryID, days)

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
	})

	t.Run("negative missing row", func(t *testing.T) {
		db, _, tx := setup(t)
		defer db.Close()

		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		repo.deductFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID, d decimal.Decimal) (int64, error) {
			return 0, nil
		}
		repo.existsFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID) (bool, error) {
			return false, nil
		}

		err := svc.PostDeduction(ctx, tx, employeeID, 2026, categoryID, days)

		assert.ErrorIs(t, err, ledgererrors.ErrBalanceRowMissing)
	})

	t.Run("negative repo error", func(t *testing.T) {
		db, _, tx := setup(t)
		defer db.Close()

		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		repo.deductFn = func(ctx context.Context, eid uuid.UUID, year int, cid uuid.UUID, d decimal.Decimal) (int64, error) {
			return 0, errors.New("db error")
		}

		err := svc.PostDeduction(ctx, tx, employeeID, 2026, categoryID, days)

		assert.Error(t, err)
	})

	t.Run("negative non-positive days", func(t *testing.T) {
		db, _, tx := setup(t)
		defer db.Close()

		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		err := svc.PostDeduction(ctx, tx, employeeID, 2026, categoryID, decimal.NewFromInt(-1))

		assert.ErrorIs(t, err, ledgererrors.ErrInvalidDays)
	})
}

func TestLedgerService_SeedEmployeeYear(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("creates one zeroed row per category", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		allocations := []ledger.Allocation{
			{CategoryID: uuid.New(), Days: decimal.NewFromInt(12)},
			{CategoryID: uuid.New(), Days: decimal.NewFromFloat(7.5)},
		}

		var created []ledger.LeaveBalance
		repo.createFn = func(ctx context.Context, b *ledger.LeaveBalance) error {
			created = append(created, *b)
			return nil
		}

		err = svc.SeedEmployeeYear(ctx, tx, employeeID, 2026, allocations)

		assert.NoError(t, err)
		assert.Len(t, created, 2)
		for i, b := range created {
			assert.Equal(t, employeeID, b.EmployeeID)
			assert.Equal(t, 2026, b.Year)
			assert.Equal(t, allocations[i].CategoryID, b.CategoryID)
			assert.True(t, b.Used.IsZero())
			assert.True(t, b.Balance.Equal(b.Allocated.Sub(b.Used)))
		}
	})
}

func TestLedgerService_GetBalances(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		b := newBalance(employeeID, uuid.New(), 2026, 12, 4.5)
		repo.findAllByEmployeeYearFn = func(ctx context.Context, eid uuid.UUID, year int) ([]ledger.LeaveBalance, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, 2026, year)
			return []ledger.LeaveBalance{b}, nil
		}

		resp, err := svc.GetBalances(ctx, employeeID.String(), 2026)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.True(t, resp[0].Balance.Equal(decimal.NewFromFloat(7.5)))
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		repo := &fakeLedgerRepository{}
		svc := ledger.NewService(repo)

		_, err := svc.GetBalances(ctx, "not-a-uuid", 2026)

		assert.ErrorIs(t, err, ledgererrors.ErrInvalidEmployeeID)
	})
}
