package holiday

type CreateHolidayRequest struct {
	Label       string `json:"label" binding:"required"`
	Date        string `json:"date" binding:"required"`
	IsRecurring bool   `json:"is_recurring"`
}

type UpdateHolidayRequest struct {
	Label       string `json:"label" binding:"required"`
	Date        string `json:"date" binding:"required"`
	IsRecurring bool   `json:"is_recurring"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Date        string `json:"date"`
	IsRecurring bool   `json:"is_recurring"`
}
