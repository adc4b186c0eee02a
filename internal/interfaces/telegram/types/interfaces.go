// Package types defines shared types, interfaces, and constants for the telegram package.
package types

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrInvalidCallback indicates an invalid callback data format
var ErrInvalidCallback = errors.New("invalid callback data")

// Display constants
const (
	// MaxListItems 一条消息中最多列出的电影数,与一页结果相同
	MaxListItems = 20

	// MaxButtonTitle 按钮上标题的最大字符数
	MaxButtonTitle = 28

	// MaxCaptionLength Telegram 图片说明长度上限
	MaxCaptionLength = 1024

	// MaxMessageLength Telegram 消息长度上限(留余量)
	MaxMessageLength = 4000
)

// MessageSender 发送/编辑消息的抽象,错误在实现内部记录
type MessageSender interface {
	// SendHTML 发送HTML消息,返回最后一条消息ID,失败返回0
	SendHTML(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) int
	// EditHTML 编辑已有消息,失败时返回 false
	EditHTML(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) bool
	// SendPhoto 发送带说明的图片
	SendPhoto(chatID int64, photoURL, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) int
}

// Reply 一次回复的目标
// MessageID 非0时优先编辑该消息
type Reply struct {
	ChatID    int64
	MessageID int
}
