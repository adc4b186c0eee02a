package contracts

import "context"

// Notification 推送消息
type Notification struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// NotificationService 消息推送,由Telegram实现
type NotificationService interface {
	Notify(ctx context.Context, msg Notification) error
}
