package ledger

import "github.com/shopspring/decimal"

type BalanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Year         int             `json:"year"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Allocated    decimal.Decimal `json:"allocated"`
	Used         decimal.Decimal `json:"used"`
	Balance      decimal.Decimal `json:"balance"`
}
