package leavecategory

type CreateLeaveCategoryRequest struct {
	Name               string  `json:"name" binding:"required"`
	Paid               bool    `json:"paid"`
	ApprovalRequired   bool    `json:"approval_required"`
	AttachmentRequired bool    `json:"attachment_required"`
	DefaultAllocation  float64 `json:"default_allocation_days" binding:"required,gt=0"`
}

type UpdateLeaveCategoryRequest struct {
	Name               string  `json:"name" binding:"required"`
	Paid               bool    `json:"paid"`
	ApprovalRequired   bool    `json:"approval_required"`
	AttachmentRequired bool    `json:"attachment_required"`
	DefaultAllocation  float64 `json:"default_allocation_days" binding:"required,gt=0"`
	Active             bool    `json:"active"`
}

type LeaveCategoryResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Paid               bool   `json:"paid"`
	ApprovalRequired   bool   `json:"approval_required"`
	AttachmentRequired bool   `json:"attachment_required"`
	DefaultAllocation  string `json:"default_allocation_days"`
	Active             bool   `json:"active"`
}
