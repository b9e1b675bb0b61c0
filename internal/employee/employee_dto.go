package employee

type CreateEmployeeRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone"`
	Role      string  `json:"role" binding:"required,oneof=EMPLOYEE MANAGER ADMIN"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
	HireDate  string  `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone"`
	Role      string  `json:"role" binding:"required,oneof=EMPLOYEE MANAGER ADMIN"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
	HireDate  string  `json:"hire_date" binding:"required"`
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Role        string  `json:"role,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
	ManagerName string  `json:"manager_name,omitempty"`
	HireDate    string  `json:"hire_date,omitempty"`
}
