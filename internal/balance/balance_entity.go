package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allotment is a per-user, per-year override of a leave type's default
// yearly allowance. Absent a row, the type's own max_days_per_year applies.
type Allotment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_allotment_user_type_year"`
	LeaveTypeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_allotment_user_type_year"`
	Year        int             `gorm:"not null;uniqueIndex:uq_allotment_user_type_year"`
	Days        decimal.Decimal `gorm:"type:numeric(5,1);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Allotment) TableName() string {
	return "leave_allotments"
}
