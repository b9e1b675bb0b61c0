package timesheet

import "github.com/shopspring/decimal"

type CreateTimeEntryRequest struct {
	EntryDate string  `json:"entry_date" binding:"required"`
	ProjectID string  `json:"project_id" binding:"required,uuid"`
	Task      string  `json:"task" binding:"required"`
	Hours     float64 `json:"hours" binding:"required"`
	Billable  bool    `json:"billable"`
}

type UpdateTimeEntryRequest struct {
	EntryDate string  `json:"entry_date" binding:"required"`
	ProjectID string  `json:"project_id" binding:"required,uuid"`
	Task      string  `json:"task" binding:"required"`
	Hours     float64 `json:"hours" binding:"required"`
	Billable  bool    `json:"billable"`
}

type DecideTimeEntryRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=APPROVED REJECTED"`
	Comment string `json:"comment"`
}

type BulkDecideTimeEntriesRequest struct {
	EntryIDs []string `json:"entry_ids" binding:"required,min=1,dive,uuid"`
	Outcome  string   `json:"outcome" binding:"required,oneof=APPROVED REJECTED"`
	Comment  string   `json:"comment"`
}

type BulkDecideItemResult struct {
	EntryID string `json:"entry_id"`
	Ok      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

type BulkDecideResponse struct {
	Decided int                    `json:"decided"`
	Failed  int                    `json:"failed"`
	Results []BulkDecideItemResult `json:"results"`
}

type TimeEntryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	EntryDate     string          `json:"entry_date"`
	ProjectID     string          `json:"project_id"`
	Task          string          `json:"task"`
	Hours         decimal.Decimal `json:"hours"`
	Billable      bool            `json:"billable"`
	Status        string          `json:"status"`
	ReviewedBy    *string         `json:"reviewed_by,omitempty"`
	ReviewComment *string         `json:"review_comment,omitempty"`
	SubmittedAt   *string         `json:"submitted_at,omitempty"`
	ReviewedAt    *string         `json:"reviewed_at,omitempty"`
}
