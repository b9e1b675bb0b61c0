package events

import "time"

const EmployeeOnboardedTopic = "wfm.employee.onboarded.v1"

type EmployeeOnboardedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
