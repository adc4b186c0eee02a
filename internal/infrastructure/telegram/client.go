package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/easayliu/movie-browser/internal/infrastructure/config"
	"github.com/easayliu/movie-browser/pkg/logger"
)

type Client struct {
	config *config.TelegramConfig
	bot    *tgbotapi.BotAPI
}

func NewClient(cfg *config.TelegramConfig) *Client {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Failed to create Telegram bot", "error", err)
		return &Client{
			config: cfg,
			bot:    nil,
		}
	}

	logger.Info("Telegram bot connected successfully", "username", bot.Self.UserName)

	client := &Client{
		config: cfg,
		bot:    bot,
	}

	// 注册Bot命令菜单
	if err := client.RegisterBotCommands(); err != nil {
		logger.Error("Failed to register bot commands", "error", err)
	} else {
		logger.Info("Bot commands registered successfully")
	}

	return client
}

// Ready bot 是否已连接
func (c *Client) Ready() bool {
	return c != nil && c.bot != nil
}

func (c *Client) SendMessageWithParseMode(chatID int64, text, parseMode string) error {
	_, err := c.SendMessageWithKeyboard(chatID, cleanUTF8(text), parseMode, nil)
	return err
}

// cleanUTF8 确保文本是有效的UTF-8编码
func cleanUTF8(text string) string {
	if !utf8.ValidString(text) {
		return strings.ToValidUTF8(text, "?")
	}
	return text
}

func (c *Client) SendMessageWithKeyboard(chatID int64, text, parseMode string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error) {
	if c.bot == nil {
		return 0, fmt.Errorf("telegram bot not initialized")
	}

	msg := tgbotapi.NewMessage(chatID, cleanUTF8(text))
	if parseMode != "" {
		msg.ParseMode = parseMode
	}
	msg.DisableWebPagePreview = true
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	sentMsg, err := c.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to send telegram message: %w", err)
	}

	return sentMsg.MessageID, nil
}

// EditMessageWithKeyboard 原地更新消息,用于翻页和筛选按钮
func (c *Client) EditMessageWithKeyboard(chatID int64, messageID int, text, parseMode string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, cleanUTF8(text))
	if parseMode != "" {
		edit.ParseMode = parseMode
	}
	edit.DisableWebPagePreview = true
	if keyboard != nil {
		edit.ReplyMarkup = keyboard
	}

	if _, err := c.bot.Request(edit); err != nil {
		// 内容未变化时Telegram返回错误,忽略
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return fmt.Errorf("failed to edit telegram message: %w", err)
	}
	return nil
}

// SendPhotoWithKeyboard 发送带说明的海报图片
func (c *Client) SendPhotoWithKeyboard(chatID int64, photoURL, caption, parseMode string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error) {
	if c.bot == nil {
		return 0, fmt.Errorf("telegram bot not initialized")
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = cleanUTF8(caption)
	if parseMode != "" {
		photo.ParseMode = parseMode
	}
	if keyboard != nil {
		photo.ReplyMarkup = keyboard
	}

	sentMsg, err := c.bot.Send(photo)
	if err != nil {
		return 0, fmt.Errorf("failed to send telegram photo: %w", err)
	}
	return sentMsg.MessageID, nil
}

func (c *Client) GetUpdates(offset int64, timeout int) ([]tgbotapi.Update, error) {
	if c.bot == nil {
		return nil, fmt.Errorf("telegram bot not initialized")
	}

	updateConfig := tgbotapi.NewUpdate(int(offset))
	updateConfig.Timeout = timeout

	updates, err := c.bot.GetUpdates(updateConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get telegram updates: %w", err)
	}

	return updates, nil
}

// SetWebhook 注册Webhook地址
func (c *Client) SetWebhook(url string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := c.bot.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	return nil
}

// DeleteWebhook 切回轮询模式前需要删除Webhook
func (c *Client) DeleteWebhook() error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}
	if _, err := c.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}

func (c *Client) IsAuthorized(userID int64) bool {
	if len(c.config.AdminIDs) == 0 {
		return true
	}

	for _, adminID := range c.config.AdminIDs {
		if adminID == userID {
			return true
		}
	}
	return false
}

func (c *Client) AnswerCallbackQuery(callbackQueryID string, text string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	callback := tgbotapi.NewCallback(callbackQueryID, text)
	if _, err := c.bot.Request(callback); err != nil {
		return fmt.Errorf("failed to answer callback query: %w", err)
	}

	return nil
}

// BotCommands Bot命令菜单
func BotCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "🎬 Open the trending grid"},
		{Command: "help", Description: "❓ Show available commands"},
		{Command: "trending", Description: "🔥 Trending movies (usage: /trending [day|week])"},
		{Command: "discover", Description: "🧭 Discover movies (usage: /discover [popularity|release|rating])"},
		{Command: "genres", Description: "🏷 Toggle genre filters"},
		{Command: "search", Description: "🔍 Search movies (usage: /search <text>)"},
		{Command: "movie", Description: "🎞 Movie details (usage: /movie <id>)"},
		{Command: "more", Description: "➕ Load the next page"},
		{Command: "back", Description: "↩️ Back to the list"},
		{Command: "home", Description: "🏠 Back to trending and clear search"},
		{Command: "theme", Description: "🌓 Toggle dark/light theme"},
	}
}

// RegisterBotCommands 注册Bot命令菜单
func (c *Client) RegisterBotCommands() error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	setCommandsConfig := tgbotapi.NewSetMyCommands(BotCommands()...)
	if _, err := c.bot.Request(setCommandsConfig); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	return nil
}
