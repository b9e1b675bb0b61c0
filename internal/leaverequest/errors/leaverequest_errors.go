package leaverequesterrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid category id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be after end date",
		http.StatusBadRequest,
	)
	ErrHalfDayRange = apperror.New(
		apperror.CodeInvalidInput,
		"a half-day request must start and end on the same date",
		http.StatusBadRequest,
	)
	ErrHalfDayPeriodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"half-day requests must specify the AM or PM period",
		http.StatusBadRequest,
	)
	ErrHalfDayPeriodUnexpected = apperror.New(
		apperror.CodeInvalidInput,
		"half-day period is only valid on half-day requests",
		http.StatusBadRequest,
	)
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave category not found",
		http.StatusNotFound,
	)
	ErrCategoryInactive = apperror.New(
		apperror.CodeInvalidState,
		"leave category is no longer active",
		http.StatusBadRequest,
	)
	ErrAttachmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"this leave category requires a supporting attachment",
		http.StatusBadRequest,
	)
	ErrBackupNotFound = apperror.New(
		apperror.CodeNotFound,
		"backup employee not found",
		http.StatusNotFound,
	)
	ErrBackupIsSelf = apperror.New(
		apperror.CodeInvalidInput,
		"backup employee must be a different person",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the request owner may perform this action",
		http.StatusForbidden,
	)
	ErrRequestNotDecidable = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not awaiting a decision",
		http.StatusConflict,
	)
	ErrRequestNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be cancelled",
		http.StatusConflict,
	)
	ErrNotAuthorizedReviewer = apperror.New(
		apperror.CodeForbidden,
		"only the owner's direct manager or an admin may decide this request",
		http.StatusForbidden,
	)
	ErrInvalidOutcome = apperror.New(
		apperror.CodeInvalidInput,
		"outcome must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)
