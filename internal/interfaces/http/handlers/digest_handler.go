package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
	"github.com/easayliu/movie-browser/pkg/response"
)

// PreviewDigest 预览趋势榜摘要
// @Summary 预览趋势榜摘要
// @Description 按配置的时间窗口生成摘要内容,不发送
// @Tags 通知管理
// @Produce json
// @Success 200 {object} response.Response{data=contracts.Notification}
// @Failure 502 {object} response.Response
// @Router /digest/preview [get]
func PreviewDigest(c *gin.Context) {
	msg, err := GetContainer(c).GetDigestService().Preview(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, msg)
}

// SendDigest 立即推送趋势榜摘要
// @Summary 推送趋势榜摘要
// @Description 立即发送一次摘要到配置的Telegram聊天
// @Tags 通知管理
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response "Telegram未配置"
// @Router /digest/send [post]
func SendDigest(c *gin.Context) {
	container := GetContainer(c)
	if !container.GetTelegramClient().Ready() {
		_ = c.Error(apperrors.NewServiceError(apperrors.ErrorCodeServiceUnavailable, "telegram is not configured"))
		return
	}
	if err := container.GetDigestService().Run(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, gin.H{"message": "Digest sent"})
}
