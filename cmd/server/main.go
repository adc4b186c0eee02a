package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/movie-browser/docs"
	"github.com/easayliu/movie-browser/internal/application/container"
	"github.com/easayliu/movie-browser/internal/infrastructure/config"
	"github.com/easayliu/movie-browser/internal/interfaces/http/routes"
	"github.com/easayliu/movie-browser/internal/interfaces/telegram"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Movie Browser API
// @version 1.0
// @description 基于Gin框架的TMDB电影浏览服务

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	docs.SwaggerInfo.Host = addr

	// 初始化服务容器
	c := container.NewServiceContainer(cfg)
	if err := c.ValidateServices(); err != nil {
		log.Fatal("Failed to initialize service container:", err)
	}
	if err := c.Start(); err != nil {
		log.Fatal("Failed to start background jobs:", err)
	}

	// Telegram: webhook 或 polling
	var telegramHandler *telegram.TelegramHandler
	if cfg.Telegram.Enabled {
		telegramHandler = telegram.NewTelegramHandler(c)
		if err := telegramHandler.Start(); err != nil {
			logger.Error("Failed to start telegram", "error", err)
		}
	}

	// 初始化路由
	router := routes.SetupRoutes(c, telegramHandler)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Info("Starting server", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if telegramHandler != nil {
		telegramHandler.Stop()
		logger.Info("Telegram stopped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	c.Shutdown()
	logger.Info("Server stopped")
}
