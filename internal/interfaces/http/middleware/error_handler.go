package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
	"github.com/easayliu/movie-browser/pkg/logger"
	"github.com/easayliu/movie-browser/pkg/response"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中设置的错误,自动转换为合适的HTTP响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var serviceErr *apperrors.ServiceError
		if errors.As(err, &serviceErr) {
			response.ErrorWithDetails(c, MapErrorCodeToHTTPStatus(serviceErr.Code),
				string(serviceErr.Code), serviceErr.Message, serviceErr.Details)
			return
		}

		logger.Error("Unhandled request error", "path", c.Request.URL.Path, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, string(apperrors.ErrorCodeInternalError), err.Error())
	}
}

// MapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func MapErrorCodeToHTTPStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrorCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	case apperrors.ErrorCodeNetwork, apperrors.ErrorCodeMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", "path", c.Request.URL.Path, "panic", err)
				response.ErrorWithStatus(c, http.StatusInternalServerError, string(apperrors.ErrorCodeInternalError), "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
