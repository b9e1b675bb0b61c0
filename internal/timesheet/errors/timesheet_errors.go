package timesheeterrors

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
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid project id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours must be between 0 and 24",
		http.StatusBadRequest,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry not found",
		http.StatusNotFound,
	)
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrNotEntryOwner = apperror.New(
		apperror.CodeForbidden,
		"only the entry owner may perform this action",
		http.StatusForbidden,
	)
	ErrEntryNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"time entry can only be edited while draft or rejected",
		http.StatusBadRequest,
	)
	ErrEntryNotSubmittable = apperror.New(
		apperror.CodeInvalidState,
		"time entry can only be submitted while draft or rejected",
		http.StatusBadRequest,
	)
	ErrEntryNotDecidable = apperror.New(
		apperror.CodeInvalidState,
		"time entry is not awaiting review",
		http.StatusConflict,
	)
	ErrNotAuthorizedReviewer = apperror.New(
		apperror.CodeForbidden,
		"only the owner's direct manager or an admin may decide this entry",
		http.StatusForbidden,
	)
	ErrBulkDecideAdminOnly = apperror.New(
		apperror.CodeForbidden,
		"bulk decisions require the admin role",
		http.StatusForbidden,
	)
	ErrInvalidOutcome = apperror.New(
		apperror.CodeInvalidInput,
		"outcome must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)
