package dto

import "github.com/xiebiao/backoffice/internal/domain/notification"

// NotificationResponse 通知
type NotificationResponse struct {
	ID        uint   `json:"id" example:"7"`
	Subject   string `json:"subject" example:"订单 #12"`
	Kind      string `json:"kind" example:"Edit"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// ToNotificationList 通知列表
func ToNotificationList(list []*notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Subject:   n.Subject,
			Kind:      string(n.Kind),
			CreatedAt: n.CreatedAt.Format(timeLayout),
		})
	}
	return out
}

// ClearResponse 清空结果
type ClearResponse struct {
	Deleted int64 `json:"deleted" example:"5"`
}
