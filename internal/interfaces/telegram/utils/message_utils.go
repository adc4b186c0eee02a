package utils

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/easayliu/movie-browser/internal/infrastructure/telegram"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/types"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const parseModeHTML = "HTML"

// MessageUtils message processing utility
type MessageUtils struct {
	telegramClient *telegram.Client
}

var _ types.MessageSender = (*MessageUtils)(nil)

// NewMessageUtils creates message utility instance
func NewMessageUtils(telegramClient *telegram.Client) *MessageUtils {
	return &MessageUtils{telegramClient: telegramClient}
}

// SendHTML sends HTML formatted message, the keyboard is attached to the last part
func (mu *MessageUtils) SendHTML(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) int {
	if !mu.telegramClient.Ready() {
		return 0
	}
	messages := SplitMessage(text, types.MaxMessageLength)
	var lastMessageID int
	for i, msg := range messages {
		var kb *tgbotapi.InlineKeyboardMarkup
		if i == len(messages)-1 {
			kb = keyboard
		}
		msgID, err := mu.telegramClient.SendMessageWithKeyboard(chatID, msg, parseModeHTML, kb)
		if err != nil {
			logger.Error("Failed to send telegram message", "chatID", chatID, "error", err)
			continue
		}
		lastMessageID = msgID
	}
	return lastMessageID
}

// EditHTML edits an existing message
func (mu *MessageUtils) EditHTML(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) bool {
	if !mu.telegramClient.Ready() {
		return false
	}
	if len([]rune(text)) > types.MaxMessageLength {
		return false
	}
	if err := mu.telegramClient.EditMessageWithKeyboard(chatID, messageID, text, parseModeHTML, keyboard); err != nil {
		logger.Warn("Failed to edit telegram message", "chatID", chatID, "messageID", messageID, "error", err)
		return false
	}
	return true
}

// SendPhoto sends a poster with caption
func (mu *MessageUtils) SendPhoto(chatID int64, photoURL, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) int {
	if !mu.telegramClient.Ready() {
		return 0
	}
	msgID, err := mu.telegramClient.SendPhotoWithKeyboard(chatID, photoURL, caption, parseModeHTML, keyboard)
	if err != nil {
		logger.Warn("Failed to send telegram photo, falling back to text", "chatID", chatID, "error", err)
		return mu.SendHTML(chatID, caption, keyboard)
	}
	return msgID
}

// SplitMessage 按长度切分消息,优先在换行处切分
func SplitMessage(text string, maxLength int) []string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return []string{text}
	}

	var messages []string
	for len(runes) > 0 {
		end := maxLength
		if end > len(runes) {
			end = len(runes)
		}

		// 尝试在后1/4处的换行符分割
		if end < len(runes) {
			for i := end - 1; i >= maxLength*3/4; i-- {
				if runes[i] == '\n' {
					end = i + 1
					break
				}
			}
		}

		messages = append(messages, string(runes[:end]))
		runes = runes[end:]
	}

	return messages
}
