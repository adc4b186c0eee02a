package telegram

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/movie-browser/internal/application/container"
)

// TelegramHandler 对外暴露的 Telegram 入口
type TelegramHandler struct {
	controller *TelegramController
}

// NewTelegramHandler creates a new Telegram handler
func NewTelegramHandler(c *container.ServiceContainer) *TelegramHandler {
	return &TelegramHandler{
		controller: NewTelegramController(c),
	}
}

// Webhook handles webhook requests
func (h *TelegramHandler) Webhook(c *gin.Context) {
	h.controller.Webhook(c)
}

// Start 按配置选择 Webhook 或轮询模式
func (h *TelegramHandler) Start() error {
	if !h.controller.Enabled() {
		return nil
	}
	if h.controller.config.Telegram.Webhook.Enabled {
		return h.controller.RegisterWebhook()
	}
	h.controller.StartPolling()
	return nil
}

// Stop 停止轮询和进行中的渲染
func (h *TelegramHandler) Stop() {
	h.controller.StopPolling()
}

// GetController provides access to internal controller (for testing and debugging)
func (h *TelegramHandler) GetController() *TelegramController {
	return h.controller
}
