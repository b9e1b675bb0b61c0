package notification

type NotificationResponse struct {
	ID          string  `json:"id"`
	RecipientID string  `json:"recipient_id"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	DeliveredAt *string `json:"delivered_at,omitempty"`
	ReadAt      *string `json:"read_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
