package project

type CreateProjectRequest struct {
	Name            string `json:"name" binding:"required"`
	Code            string `json:"code" binding:"required"`
	BillableDefault bool   `json:"billable_default"`
}

type UpdateProjectRequest struct {
	Name            string `json:"name" binding:"required"`
	Code            string `json:"code" binding:"required"`
	BillableDefault bool   `json:"billable_default"`
	Active          bool   `json:"active"`
}

type ProjectResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	BillableDefault bool   `json:"billable_default"`
	Active          bool   `json:"active"`
}
