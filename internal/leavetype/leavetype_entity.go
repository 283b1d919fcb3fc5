package leavetype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaveType is administrator-managed reference data. Soft-deleted so that
// historical requests keep a resolvable type reference.
type LeaveType struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Label            string           `gorm:"type:varchar(100);not null;index"`
	Color            string           `gorm:"type:varchar(20);not null;default:'#3b82f6'"`
	IsPaid           bool             `gorm:"not null;default:true"`
	RequiresApproval bool             `gorm:"not null;default:true"`
	MaxDaysPerYear   *decimal.Decimal `gorm:"type:numeric(5,1)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
