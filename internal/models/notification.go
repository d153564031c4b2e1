package models

type Notification struct {
	NotificationID int64  `json:"notification_id"`
	Message        string `json:"message"`
	Status         string `json:"status"`
	Type           string `json:"type"`
	CreatedAt      string `json:"created_at"`
	ProductName    string `json:"product_name,omitempty"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Pagination    *Pagination    `json:"pagination,omitempty"`
}

type NotificationUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=read unread"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
