package container

import (
	"context"
	"fmt"
	"sync"

	"github.com/easayliu/movie-browser/internal/application/browse"
	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/application/services/digest"
	"github.com/easayliu/movie-browser/internal/application/services/notification"
	"github.com/easayliu/movie-browser/internal/application/services/scheduler"
	"github.com/easayliu/movie-browser/internal/application/services/session"
	"github.com/easayliu/movie-browser/internal/domain/valueobjects"
	"github.com/easayliu/movie-browser/internal/infrastructure/config"
	"github.com/easayliu/movie-browser/internal/infrastructure/telegram"
	"github.com/easayliu/movie-browser/internal/infrastructure/tmdb"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const (
	jobSessionSweep   = "session-sweep"
	jobTrendingDigest = "trending-digest"
	sessionSweepSpec  = "* * * * *"
)

// ServiceContainer 服务容器 - 实现依赖注入
type ServiceContainer struct {
	config *config.Config

	ctx    context.Context
	cancel context.CancelFunc

	source              contracts.MovieSource
	theme               *browse.Theme
	sessionStore        *session.Store
	telegramClient      *telegram.Client
	notificationService contracts.NotificationService
	digestService       *digest.Service
	schedulerService    *scheduler.SchedulerService

	// 单例模式锁
	once sync.Once
}

// NewServiceContainer 创建服务容器,数据源为 TMDB
func NewServiceContainer(cfg *config.Config) *ServiceContainer {
	return NewServiceContainerWithSource(cfg, nil)
}

// NewServiceContainerWithSource 使用指定数据源,source 为 nil 时连接 TMDB
func NewServiceContainerWithSource(cfg *config.Config, source contracts.MovieSource) *ServiceContainer {
	ctx, cancel := context.WithCancel(context.Background())
	return &ServiceContainer{
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
		source: source,
	}
}

func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetMovieSource 获取数据源
func (c *ServiceContainer) GetMovieSource() contracts.MovieSource {
	c.once.Do(c.initServices)
	return c.source
}

// GetTheme 获取进程级主题
func (c *ServiceContainer) GetTheme() *browse.Theme {
	c.once.Do(c.initServices)
	return c.theme
}

// GetSessionStore 获取会话表
func (c *ServiceContainer) GetSessionStore() *session.Store {
	c.once.Do(c.initServices)
	return c.sessionStore
}

// GetTelegramClient 未启用Telegram时返回 nil
func (c *ServiceContainer) GetTelegramClient() *telegram.Client {
	c.once.Do(c.initServices)
	return c.telegramClient
}

func (c *ServiceContainer) GetNotificationService() contracts.NotificationService {
	c.once.Do(c.initServices)
	return c.notificationService
}

func (c *ServiceContainer) GetDigestService() *digest.Service {
	c.once.Do(c.initServices)
	return c.digestService
}

func (c *ServiceContainer) GetSchedulerService() *scheduler.SchedulerService {
	c.once.Do(c.initServices)
	return c.schedulerService
}

// BrowseOptions 会话参数
func (c *ServiceContainer) BrowseOptions() browse.Options {
	img := c.config.Images
	resolver := valueobjects.DefaultImageResolver()
	if img.BaseURL != "" {
		resolver.BaseURL = img.BaseURL
	}
	if img.Size != "" {
		resolver.PosterSize = img.Size
	}
	if img.BackdropSize != "" {
		resolver.BackdropSize = img.BackdropSize
	}
	if img.Placeholder != "" {
		resolver.Placeholder = img.Placeholder
	}

	return browse.Options{
		SearchDebounce: c.config.Browse.SearchDebounce,
		SettleTimeout:  c.config.Browse.SettleTimeout,
		Images:         resolver,
	}
}

// initServices 初始化所有服务（单例模式）
func (c *ServiceContainer) initServices() {
	logger.Info("Initializing service container")

	// 1. 基础设施层
	if c.source == nil {
		client := tmdb.NewClientFromConfig(&c.config.TMDB)
		c.source = tmdb.NewMovieSource(client)
	}

	var sender notification.Sender
	if c.config.Telegram.Enabled && c.config.Telegram.BotToken != "" {
		c.telegramClient = telegram.NewClient(&c.config.Telegram)
		if c.telegramClient.Ready() {
			sender = c.telegramClient
		}
	}

	// 2. 应用层服务
	c.theme = browse.NewTheme(c.config.Browse.DarkTheme)
	c.sessionStore = session.NewStore(c.ctx, c.source, c.theme, c.BrowseOptions(), c.config.Browse.SessionTTL)
	c.notificationService = notification.NewAppNotificationService(&c.config.Telegram, sender)
	c.digestService = digest.NewService(c.source, c.notificationService, c.config.Digest.Limit, c.config.Digest.TimeWindow)
	c.schedulerService = scheduler.NewSchedulerService()

	logger.Info("Service container initialized successfully",
		"telegram", c.telegramClient != nil,
		"dark_theme", c.theme.IsDark())
}

// Start 注册后台任务并启动调度器
func (c *ServiceContainer) Start() error {
	c.once.Do(c.initServices)

	store := c.sessionStore
	if err := c.schedulerService.AddJob(scheduler.Job{
		Name: jobSessionSweep,
		Spec: sessionSweepSpec,
		Run:  func() { store.Sweep() },
	}); err != nil {
		return err
	}

	if c.config.Digest.Enabled {
		if c.telegramClient == nil {
			logger.Warn("Digest enabled but Telegram is not configured, digest skipped")
		} else if err := c.schedulerService.AddJob(scheduler.Job{
			Name: jobTrendingDigest,
			Spec: c.config.Digest.Cron,
			Run:  c.digestService.RunJob,
		}); err != nil {
			return fmt.Errorf("digest: %w", err)
		}
	}

	return c.schedulerService.Start()
}

// Shutdown 关闭服务容器
func (c *ServiceContainer) Shutdown() {
	logger.Info("Shutting down service container")

	if c.schedulerService != nil {
		c.schedulerService.Stop()
	}
	if c.sessionStore != nil {
		c.sessionStore.CloseAll()
	}
	c.cancel()

	logger.Info("Service container shutdown completed")
}

// ValidateServices 验证服务配置
func (c *ServiceContainer) ValidateServices() error {
	c.once.Do(c.initServices)

	if c.source == nil {
		return fmt.Errorf("movie source not initialized")
	}
	if c.sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}
	if c.config.TMDB.APIKey == "" {
		logger.Warn("TMDB API key is not set, every request will fail with UNAUTHORIZED")
	}

	logger.Info("Service validation completed successfully")
	return nil
}

// GetServiceHealth 获取服务健康状态
func (c *ServiceContainer) GetServiceHealth() map[string]interface{} {
	c.once.Do(c.initServices)

	health := map[string]interface{}{
		"container": "healthy",
		"services": map[string]interface{}{
			"movie_source":         c.getServiceStatus(c.source != nil),
			"session_store":        c.getServiceStatus(c.sessionStore != nil),
			"scheduler_service":    c.getServiceStatus(c.schedulerService != nil),
			"notification_service": c.getServiceStatus(c.notificationService != nil),
			"telegram":             c.getServiceStatus(c.telegramClient.Ready()),
		},
		"sessions": c.sessionStore.Len(),
		"theme":    c.theme.Name(),
		"jobs":     c.schedulerService.Jobs(),
	}

	return health
}

// getServiceStatus 获取服务状态
func (c *ServiceContainer) getServiceStatus(initialized bool) string {
	if initialized {
		return "healthy"
	}
	return "unhealthy"
}
