package profile

type UpdateProfileRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	JobTitle   string `json:"job_title"`
	Phone      string `json:"phone"`
	StartDate  string `json:"start_date"`
}

// AdminUpdateProfileRequest covers the fields only an administrator may touch.
type AdminUpdateProfileRequest struct {
	Role            string   `json:"role" binding:"required,oneof=EMPLOYEE MANAGER ADMIN"`
	AnnualLeaveDays *float64 `json:"annual_leave_days"`
	RTTDays         *float64 `json:"rtt_days"`
	IsActive        *bool    `json:"is_active"`
}

type ProfileResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	Department      string  `json:"department,omitempty"`
	JobTitle        string  `json:"job_title,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	StartDate       *string `json:"start_date,omitempty"`
	AnnualLeaveDays float64 `json:"annual_leave_days"`
	RTTDays         float64 `json:"rtt_days"`
	IsActive        bool    `json:"is_active"`
}
