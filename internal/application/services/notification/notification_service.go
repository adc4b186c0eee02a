package notification

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/infrastructure/config"
	"github.com/easayliu/movie-browser/pkg/logger"
)

// Sender 发送一条消息,由 telegram.Client 实现
type Sender interface {
	SendMessageWithParseMode(chatID int64, text, parseMode string) error
}

// AppNotificationService 应用层通知服务 - 实现contracts.NotificationService接口
type AppNotificationService struct {
	config *config.TelegramConfig
	sender Sender
}

// NewAppNotificationService sender 为 nil 时通知被忽略
func NewAppNotificationService(cfg *config.TelegramConfig, sender Sender) contracts.NotificationService {
	return &AppNotificationService{
		config: cfg,
		sender: sender,
	}
}

// Notify 发送给所有配置的聊天和管理员
// 至少一个目标发送成功即视为成功
func (s *AppNotificationService) Notify(ctx context.Context, msg contracts.Notification) error {
	if s.sender == nil || !s.config.Enabled {
		logger.Info("Telegram disabled, notification skipped", "title", msg.Title)
		return nil
	}

	targets := s.targets()
	if len(targets) == 0 {
		logger.Info("No chat IDs configured, notification skipped", "title", msg.Title)
		return nil
	}

	text := Format(msg)

	var lastErr error
	sent := false
	for _, chatID := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.sender.SendMessageWithParseMode(chatID, text, "HTML"); err != nil {
			logger.Warn("Failed to send telegram message", "chatID", chatID, "error", err)
			lastErr = err
			continue
		}
		sent = true
	}

	if !sent && lastErr != nil {
		return fmt.Errorf("notification not delivered: %w", lastErr)
	}
	return nil
}

func (s *AppNotificationService) targets() []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for _, ids := range [][]int64{s.config.ChatIDs, s.config.AdminIDs} {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Format 渲染为 Telegram HTML 消息
func Format(msg contracts.Notification) string {
	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(html.EscapeString(msg.Title))
	b.WriteString("</b>")
	if len(msg.Lines) > 0 {
		b.WriteString("\n\n")
		for i, line := range msg.Lines {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(html.EscapeString(line))
		}
	}
	return b.String()
}
