package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/easayliu/movie-browser/internal/application/container"
	"github.com/easayliu/movie-browser/internal/interfaces/http/handlers"
	"github.com/easayliu/movie-browser/internal/interfaces/http/middleware"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram"
)

// SetupRoutes 设置路由
// telegramHandler 为 nil 或未开启 webhook 时不注册 webhook 路由
func SetupRoutes(c *container.ServiceContainer, telegramHandler *telegram.TelegramHandler) *gin.Engine {
	cfg := c.GetConfig()
	router := gin.New()
	router.SetHTMLTemplate(handlers.PageTemplate())

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ContainerMiddleware(c))
	router.Use(middleware.ErrorHandlerMiddleware())

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Telegram Webhook路由
	if telegramHandler != nil && cfg.Telegram.Enabled && cfg.Telegram.Webhook.Enabled {
		router.POST("/telegram/webhook", telegramHandler.Webhook)
	}

	pages := handlers.NewPageHandler()
	router.GET("/static/placeholder.svg", pages.Placeholder)

	sessions := middleware.SessionMiddleware(c.GetSessionStore())

	// 页面路由
	web := router.Group("/", sessions)
	{
		web.GET("/", pages.Index)
		web.GET("/search", pages.Search)
		web.GET("/movies/:id", pages.ShowMovie)
		web.POST("/back", pages.Back)
		web.POST("/home", pages.Home)
		web.POST("/theme/toggle", pages.ToggleTheme)
		web.POST("/error/retry", pages.Retry)
		web.POST("/error/dismiss", pages.DismissError)

		list := web.Group("/list")
		{
			list.POST("/view", pages.SetView)
			list.POST("/time-window", pages.SetTimeWindow)
			list.POST("/sort", pages.SetSortKey)
			list.POST("/genres/:id/toggle", pages.ToggleGenre)
			list.POST("/more", pages.LoadMore)
			list.POST("/reload", pages.Reload)
		}
	}

	// API 路由组
	api := router.Group("/api/v1")
	{
		// 健康检查
		api.GET("/health", handlers.HealthCheck)

		digest := api.Group("/digest")
		{
			digest.GET("/preview", handlers.PreviewDigest)
			digest.POST("/send", handlers.SendDigest)
		}

		apiHandler := handlers.NewAPIHandler()
		browse := api.Group("", sessions)
		{
			browse.GET("/state", apiHandler.GetState)
			browse.GET("/search", apiHandler.Search)
			browse.GET("/movies/:id", apiHandler.SelectMovie)
			browse.POST("/back", apiHandler.Back)
			browse.POST("/home", apiHandler.Home)
			browse.POST("/theme/toggle", apiHandler.ToggleTheme)
			browse.DELETE("/error", apiHandler.DismissError)
			browse.POST("/error/retry", apiHandler.Retry)
			browse.POST("/list/view", apiHandler.SetView)
			browse.POST("/list/time-window", apiHandler.SetTimeWindow)
			browse.POST("/list/sort", apiHandler.SetSortKey)
			browse.POST("/list/genres/:id/toggle", apiHandler.ToggleGenre)
			browse.POST("/list/more", apiHandler.LoadMore)
			browse.POST("/list/reload", apiHandler.Reload)
		}
	}

	return router
}
