package leave

import (
	"time"

	"github.com/logfretaulnay/hr-zen/internal/leavetype"
	"github.com/logfretaulnay/hr-zen/internal/profile"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Leave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null"`
	HalfDayStart bool      `gorm:"not null;default:false"`
	HalfDayEnd   bool      `gorm:"not null;default:false"`

	// Persisted at creation time so historical requests keep the day count
	// they were approved with, independent of later rule changes.
	TotalDays decimal.Decimal `gorm:"type:numeric(5,1);not null"`

	Reason string `gorm:"type:text"`
	Status string `gorm:"type:varchar(20);not null;default:'PENDING';index"`

	ManagerComment *string    `gorm:"type:text"`
	DecidedBy      *uuid.UUID `gorm:"type:uuid"`
	DecidedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	LeaveType *leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID"`
	Profile   *profile.Profile     `gorm:"foreignKey:UserID;references:UserID"`
}

func (Leave) TableName() string {
	return "leave_requests"
}
