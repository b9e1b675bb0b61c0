package ledgererrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"deduction days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance for the requested days",
		http.StatusConflict,
	)
	// ErrBalanceRowMissing is a data-integrity failure: every employee gets a
	// row per category per year at onboarding, so a missing row is never a
	// normal user outcome.
	ErrBalanceRowMissing = apperror.New(
		apperror.CodeInternalError,
		"leave balance row does not exist for employee, year and category",
		http.StatusInternalServerError,
	)
	ErrNothingToReverse = apperror.New(
		apperror.CodeConflict,
		"reversal exceeds the recorded used days",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
