package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindRequestSubmitted = "leave_request_submitted"
	KindRequestApproved  = "leave_request_approved"
	KindRequestRejected  = "leave_request_rejected"
)

// Notification rows are written by the lifecycle consumer, which may see the
// same Kafka message more than once. The unique index turns a redelivery
// into a constraint violation instead of a duplicate notification.
type Notification struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_notification_dedup"`
	Kind             string     `gorm:"type:varchar(50);not null;uniqueIndex:uq_notification_dedup"`
	RelatedRequestID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_notification_dedup"`
	Title            string     `gorm:"type:varchar(200);not null"`
	Body             string     `gorm:"type:text"`
	IsRead           bool       `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
