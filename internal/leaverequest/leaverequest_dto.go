package leaverequest

import "github.com/shopspring/decimal"

type CreateLeaveRequestRequest struct {
	CategoryID       string  `json:"category_id" binding:"required,uuid"`
	StartDate        string  `json:"start_date" binding:"required"`
	EndDate          string  `json:"end_date" binding:"required"`
	HalfDay          bool    `json:"half_day"`
	HalfDayPeriod    string  `json:"half_day_period" binding:"omitempty,oneof=AM PM"`
	Reason           string  `json:"reason" binding:"required"`
	BackupEmployeeID *string `json:"backup_employee_id" binding:"omitempty,uuid"`
	AttachmentURL    *string `json:"attachment_url" binding:"omitempty,url"`
}

type DecideLeaveRequestRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=APPROVED REJECTED"`
	Comment string `json:"comment"`
}

type LeaveRequestResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	CategoryID       string          `json:"category_id"`
	CategoryName     string          `json:"category_name,omitempty"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	HalfDay          bool            `json:"half_day"`
	HalfDayPeriod    *string         `json:"half_day_period,omitempty"`
	TotalDays        decimal.Decimal `json:"total_days"`
	Reason           string          `json:"reason"`
	BackupEmployeeID *string         `json:"backup_employee_id,omitempty"`
	AttachmentURL    *string         `json:"attachment_url,omitempty"`
	Status           string          `json:"status"`
	DecidedBy        *string         `json:"decided_by,omitempty"`
	DecisionComment  *string         `json:"decision_comment,omitempty"`
	DecidedAt        *string         `json:"decided_at,omitempty"`
	CreatedAt        string          `json:"created_at"`
}
