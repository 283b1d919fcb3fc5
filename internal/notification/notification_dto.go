package notification

type NotificationResponse struct {
	ID               string  `json:"id"`
	Kind             string  `json:"kind"`
	RelatedRequestID *string `json:"related_request_id,omitempty"`
	Title            string  `json:"title"`
	Body             string  `json:"body,omitempty"`
	IsRead           bool    `json:"is_read"`
	CreatedAt        string  `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
