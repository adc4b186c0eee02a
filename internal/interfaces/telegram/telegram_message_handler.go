package telegram

import (
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/commands"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/types"
	"github.com/easayliu/movie-browser/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageHandler handles Telegram messages
type MessageHandler struct {
	controller *TelegramController
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(controller *TelegramController) *MessageHandler {
	return &MessageHandler{
		controller: controller,
	}
}

// HandleMessage handles messages
func (h *MessageHandler) HandleMessage(update *tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" || msg.From == nil {
		return
	}

	chatID := msg.Chat.ID

	// Authorization check
	if !h.controller.isAuthorized(msg.From.ID) {
		h.controller.messageUtils.SendHTML(chatID, "Unauthorized", nil)
		logger.Warn("Unauthorized telegram access attempt", "userID", msg.From.ID, "username", msg.From.UserName)
		return
	}

	logger.Info("Received telegram command", "command", msg.Text, "from", msg.From.UserName, "chatID", chatID)
	h.Dispatch(chatID, msg.Text)
}

// Dispatch 按命令分发,普通文本作为搜索关键字
func (h *MessageHandler) Dispatch(chatID int64, text string) {
	bc := h.controller.browseCommands
	reply := types.Reply{ChatID: chatID}

	command, args := commands.ParseCommand(text)
	switch command {
	case "":
		bc.HandleSearch(reply, args)
	case "/start":
		bc.HandleStart(chatID)
	case "/help":
		bc.HandleHelp(chatID)
	case "/trending":
		bc.HandleTrending(reply, args)
	case "/discover":
		bc.HandleDiscover(reply, args)
	case "/genres":
		bc.HandleGenres(reply)
	case "/search":
		bc.HandleSearch(reply, args)
	case "/movie":
		bc.HandleMovie(reply, args)
	case "/more":
		bc.HandleMore(reply)
	case "/back":
		bc.HandleBack(reply)
	case "/home":
		bc.HandleHome(reply)
	case "/theme":
		h.controller.messageUtils.SendHTML(chatID, bc.HandleTheme(chatID), nil)
	default:
		h.controller.messageUtils.SendHTML(chatID, "Unknown command, send /help to see available commands", nil)
	}
}
