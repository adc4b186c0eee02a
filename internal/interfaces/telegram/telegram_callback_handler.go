package telegram

import (
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/callbacks"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/types"
	"github.com/easayliu/movie-browser/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CallbackHandler handles Telegram callback queries
type CallbackHandler struct {
	controller *TelegramController
}

// NewCallbackHandler creates a new callback query handler
func NewCallbackHandler(controller *TelegramController) *CallbackHandler {
	return &CallbackHandler{
		controller: controller,
	}
}

// HandleCallbackQuery handles callback queries
func (h *CallbackHandler) HandleCallbackQuery(update *tgbotapi.Update) {
	callback := update.CallbackQuery
	if callback == nil || callback.Message == nil || callback.From == nil {
		return
	}

	// Authorization check
	if !h.controller.isAuthorized(callback.From.ID) {
		h.controller.answerCallback(callback.ID, "Unauthorized")
		return
	}

	logger.Info("Received callback query", "data", callback.Data, "from", callback.From.UserName, "chatID", callback.Message.Chat.ID)

	reply := types.Reply{ChatID: callback.Message.Chat.ID, MessageID: callback.Message.MessageID}
	h.controller.answerCallback(callback.ID, h.Dispatch(reply, callback.Data))
}

// Dispatch 执行回调动作,返回给用户的简短提示
func (h *CallbackHandler) Dispatch(reply types.Reply, data string) string {
	cb, err := callbacks.Parse(data)
	if err != nil {
		logger.Warn("Unknown callback data", "data", data, "error", err)
		return "This button is no longer supported"
	}

	bc := h.controller.browseCommands
	switch cb.Action {
	case callbacks.ActionMovie:
		id, err := cb.ID()
		if err != nil {
			return "Invalid movie"
		}
		bc.HandleSelect(reply, id)
	case callbacks.ActionGenre:
		id, err := cb.ID()
		if err != nil {
			return "Invalid genre"
		}
		bc.HandleToggleGenre(reply, id)
	case callbacks.ActionView:
		bc.HandleView(reply, cb.Value)
	case callbacks.ActionTimeWindow:
		bc.HandleTimeWindow(reply, cb.Value)
	case callbacks.ActionSort:
		bc.HandleSort(reply, cb.Value)
	case callbacks.ActionGenres:
		bc.HandleGenres(reply)
	case callbacks.ActionList:
		bc.HandleList(reply)
	case callbacks.ActionMore:
		bc.HandleMore(reply)
	case callbacks.ActionBack:
		bc.HandleBack(reply)
	case callbacks.ActionHome:
		bc.HandleHome(reply)
	case callbacks.ActionRetry:
		bc.HandleRetry(reply)
	case callbacks.ActionDismiss:
		bc.HandleDismiss(reply)
	case callbacks.ActionTheme:
		return bc.HandleTheme(reply.ChatID)
	}
	return ""
}
