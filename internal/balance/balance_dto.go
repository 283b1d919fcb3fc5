package balance

type BalanceItem struct {
	LeaveTypeID string   `json:"leave_type_id"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	Allotted    *float64 `json:"allotted"` // nil when the type is untracked
	Used        float64  `json:"used"`
	Remaining   *float64 `json:"remaining"` // may be negative, nil when untracked
}

type BalanceResponse struct {
	UserID          string        `json:"user_id"`
	Year            int           `json:"year"`
	AnnualLeaveDays float64       `json:"annual_leave_days"`
	RTTDays         float64       `json:"rtt_days"`
	TotalUsed       float64       `json:"total_used"`
	Items           []BalanceItem `json:"items"`
}

type SetAllotmentRequest struct {
	LeaveTypeID string  `json:"leave_type_id" binding:"required,uuid"`
	Year        int     `json:"year" binding:"required,min=2000,max=2100"`
	Days        float64 `json:"days" binding:"min=0"`
}
