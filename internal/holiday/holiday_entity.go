package holiday

import (
	"time"

	"github.com/google/uuid"
)

// Holiday is a calendar annotation. It is not subtracted from leave day
// counts; the span formula in the leave module is the single source of truth
// for totals.
type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Label       string    `gorm:"type:varchar(100);not null"`
	Date        time.Time `gorm:"type:date;not null;index"`
	IsRecurring bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
