package leavetype

type CreateLeaveTypeRequest struct {
	Label            string   `json:"label" binding:"required"`
	Color            string   `json:"color" binding:"required"`
	IsPaid           *bool    `json:"is_paid" binding:"required"`
	RequiresApproval *bool    `json:"requires_approval" binding:"required"`
	MaxDaysPerYear   *float64 `json:"max_days_per_year"`
}

type UpdateLeaveTypeRequest struct {
	Label            string   `json:"label" binding:"required"`
	Color            string   `json:"color" binding:"required"`
	IsPaid           *bool    `json:"is_paid" binding:"required"`
	RequiresApproval *bool    `json:"requires_approval" binding:"required"`
	MaxDaysPerYear   *float64 `json:"max_days_per_year"`
}

type LeaveTypeResponse struct {
	ID               string   `json:"id"`
	Label            string   `json:"label"`
	Color            string   `json:"color"`
	IsPaid           bool     `json:"is_paid"`
	RequiresApproval bool     `json:"requires_approval"`
	MaxDaysPerYear   *float64 `json:"max_days_per_year,omitempty"`
	CreatedAt        string   `json:"created_at"`
}
