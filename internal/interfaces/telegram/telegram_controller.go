package telegram

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/easayliu/movie-browser/internal/application/container"
	"github.com/easayliu/movie-browser/internal/infrastructure/config"
	"github.com/easayliu/movie-browser/internal/infrastructure/telegram"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/commands"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/types"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram/utils"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const (
	pollTimeoutSeconds = 30
	pollRetryDelay     = 5 * time.Second
)

// TelegramController Telegram 主控制器
// 负责更新的接收(轮询或Webhook)和路由分发
type TelegramController struct {
	telegramClient *telegram.Client
	config         *config.Config

	lastUpdateID int
	ctx          context.Context
	cancel       context.CancelFunc

	messageUtils   types.MessageSender
	browseCommands *commands.BrowseCommands

	messageHandler  *MessageHandler
	callbackHandler *CallbackHandler
}

// NewTelegramController 创建 Telegram 控制器,会话来自服务容器
func NewTelegramController(c *container.ServiceContainer) *TelegramController {
	ctx, cancel := context.WithCancel(context.Background())

	client := c.GetTelegramClient()
	controller := &TelegramController{
		telegramClient: client,
		config:         c.GetConfig(),
		ctx:            ctx,
		cancel:         cancel,
		messageUtils:   utils.NewMessageUtils(client),
	}
	controller.browseCommands = commands.NewBrowseCommands(ctx, c.GetSessionStore(), controller.messageUtils)
	controller.messageHandler = NewMessageHandler(controller)
	controller.callbackHandler = NewCallbackHandler(controller)

	return controller
}

// Enabled Telegram 已启用且 bot 已连接
func (c *TelegramController) Enabled() bool {
	return c.config.Telegram.Enabled && c.telegramClient.Ready()
}

// isAuthorized 未配置管理员时所有人可用
func (c *TelegramController) isAuthorized(userID int64) bool {
	return c.telegramClient.Ready() && c.telegramClient.IsAuthorized(userID)
}

func (c *TelegramController) answerCallback(callbackID, text string) {
	if !c.telegramClient.Ready() {
		return
	}
	if err := c.telegramClient.AnswerCallbackQuery(callbackID, text); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}
}

// Webhook 处理 Webhook 请求
func (c *TelegramController) Webhook(ctx *gin.Context) {
	if !c.Enabled() {
		ctx.JSON(http.StatusOK, gin.H{"error": "Telegram integration disabled"})
		return
	}

	var update tgbotapi.Update
	if err := ctx.ShouldBindJSON(&update); err != nil {
		logger.Error("Failed to parse telegram update", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update format"})
		return
	}

	// 渲染会等待TMDB请求,放到后台以便尽快应答Telegram
	go c.handleUpdate(&update)

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// RegisterWebhook 向Telegram注册Webhook地址
func (c *TelegramController) RegisterWebhook() error {
	if err := c.telegramClient.SetWebhook(c.config.Telegram.Webhook.URL); err != nil {
		return err
	}
	logger.Info("Telegram webhook registered", "url", c.config.Telegram.Webhook.URL)
	return nil
}

// StartPolling 开始轮询
func (c *TelegramController) StartPolling() {
	if !c.Enabled() {
		logger.Info("Telegram polling disabled")
		return
	}

	// 存在 webhook 时 getUpdates 会失败
	if err := c.telegramClient.DeleteWebhook(); err != nil {
		logger.Warn("Failed to delete telegram webhook", "error", err)
	}

	logger.Info("Starting Telegram polling...")

	go func() {
		for {
			select {
			case <-c.ctx.Done():
				logger.Info("Telegram polling stopped")
				return
			default:
				c.pollUpdates()
			}
		}
	}()
}

// StopPolling 停止轮询
func (c *TelegramController) StopPolling() {
	if c.cancel != nil {
		c.cancel()
	}
}

// pollUpdates 轮询更新
func (c *TelegramController) pollUpdates() {
	updates, err := c.telegramClient.GetUpdates(int64(c.lastUpdateID+1), pollTimeoutSeconds)
	if err != nil {
		logger.Error("Failed to get telegram updates", "error", err)
		select {
		case <-c.ctx.Done():
		case <-time.After(pollRetryDelay):
		}
		return
	}

	for i := range updates {
		if updates[i].UpdateID > c.lastUpdateID {
			c.lastUpdateID = updates[i].UpdateID
		}
		c.handleUpdate(&updates[i])
	}
}

func (c *TelegramController) handleUpdate(update *tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while handling telegram update", "updateID", update.UpdateID, "panic", r)
		}
	}()

	if update.Message != nil {
		c.messageHandler.HandleMessage(update)
	} else if update.CallbackQuery != nil {
		c.callbackHandler.HandleCallbackQuery(update)
	}
}
