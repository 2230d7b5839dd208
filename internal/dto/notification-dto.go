package dto

type NotificationDTO struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}
