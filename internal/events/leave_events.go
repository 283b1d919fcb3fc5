package events

import "time"

// Kafka topic carrying every leave request lifecycle transition.
const TopicLeaveLifecycle = "hr.leave.lifecycle.v1"

const (
	EventLeaveRequestCreated = "leave_request.created"
	EventLeaveRequestDecided = "leave_request.decided"
)

type LeaveRequestCreatedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"` // correlation id, propagated to async consumers
	LeaveID     string    `json:"leave_id"`
	UserID      string    `json:"user_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	TotalDays   float64   `json:"total_days"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type LeaveRequestDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decided_by"`
	Comment    string    `json:"comment,omitempty"`
	TotalDays  float64   `json:"total_days"`
	OccurredAt time.Time `json:"occurred_at"`
}
