package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/application/container"
	"github.com/easayliu/movie-browser/internal/infrastructure/config"
	"github.com/easayliu/movie-browser/internal/interfaces/http/middleware"
)

// GetContainer 从gin.Context中获取ServiceContainer
// 这个方法假设Container已经通过中间件注入到Context中
func GetContainer(c *gin.Context) *container.ServiceContainer {
	v, exists := c.Get(middleware.ContextKeyContainer)
	if !exists {
		panic("ServiceContainer not found in context. Did you forget to use ContainerMiddleware?")
	}
	return v.(*container.ServiceContainer)
}

// GetConfig 从gin.Context中获取Config
func GetConfig(c *gin.Context) *config.Config {
	return GetContainer(c).GetConfig()
}

// GetSession 从gin.Context中获取浏览会话,需要 SessionMiddleware
func GetSession(c *gin.Context) *browse.Session {
	v, exists := c.Get(middleware.ContextKeySession)
	if !exists {
		panic("Session not found in context. Did you forget to use SessionMiddleware?")
	}
	return v.(*browse.Session)
}
