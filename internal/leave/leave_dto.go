package leave

type CreateLeaveRequest struct {
	LeaveTypeID  string `json:"leave_type_id" binding:"required,uuid"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	HalfDayStart bool   `json:"half_day_start"`
	HalfDayEnd   bool   `json:"half_day_end"`
	Reason       string `json:"reason" binding:"max=2000"`
}

type DecideLeaveRequest struct {
	Status  string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Comment string `json:"comment" binding:"max=2000"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	LeaveTypeID    string  `json:"leave_type_id"`
	LeaveTypeLabel string  `json:"leave_type_label,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	HalfDayStart   bool    `json:"half_day_start"`
	HalfDayEnd     bool    `json:"half_day_end"`
	TotalDays      float64 `json:"total_days"`
	Reason         string  `json:"reason,omitempty"`
	Status         string  `json:"status"`
	ManagerComment *string `json:"manager_comment,omitempty"`
	DecidedBy      *string `json:"decided_by,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
