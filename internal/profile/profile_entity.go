package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile is the HR record behind an account. Self-service fields belong to
// the owner; role, allotments and is_active are admin-writable only.
// Deactivation is a flag, never a hard delete.
type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Name       string     `gorm:"type:varchar(255);not null"`
	Email      string     `gorm:"type:varchar(255);not null;index"`
	Role       string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE';index"`
	Department string     `gorm:"type:varchar(255)"`
	JobTitle   string     `gorm:"type:varchar(255)"`
	Phone      string     `gorm:"type:varchar(50)"`
	StartDate  *time.Time `gorm:"type:date"`

	AnnualLeaveDays decimal.Decimal `gorm:"type:numeric(5,1);not null;default:25"`
	RTTDays         decimal.Decimal `gorm:"type:numeric(5,1);not null;default:10"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
