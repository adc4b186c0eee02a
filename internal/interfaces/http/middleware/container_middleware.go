package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/movie-browser/internal/application/container"
)

const ContextKeyContainer = "container"

// ContainerMiddleware 服务容器中间件
// 将ServiceContainer注入到gin.Context中,供handlers使用
func ContainerMiddleware(c *container.ServiceContainer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(ContextKeyContainer, c)
		ctx.Next()
	}
}
