package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MOVIEBROWSER"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Images   ImagesConfig   `mapstructure:"images"`
	Browse   BrowseConfig   `mapstructure:"browse"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Digest   DigestConfig   `mapstructure:"digest"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"` // console, file, both
	Format    string `mapstructure:"format"` // text, json
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Language     string        `mapstructure:"language"`
	QPS          int           `mapstructure:"qps"` // 每秒请求数限制，0为不限制
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

type ImagesConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Size         string `mapstructure:"size"`
	BackdropSize string `mapstructure:"backdrop_size"`
	Placeholder  string `mapstructure:"placeholder"`
}

type BrowseConfig struct {
	DarkTheme      bool          `mapstructure:"dark_theme"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	SettleTimeout  time.Duration `mapstructure:"settle_timeout"` // 渲染前等待请求完成的最长时间
	SessionTTL     time.Duration `mapstructure:"session_ttl"`    // 空闲会话回收时间
}

type TelegramConfig struct {
	BotToken string        `mapstructure:"bot_token"`
	ChatIDs  []int64       `mapstructure:"chat_ids"`
	Enabled  bool          `mapstructure:"enabled"`
	AdminIDs []int64       `mapstructure:"admin_ids"`
	Webhook  WebhookConfig `mapstructure:"webhook"`
}

type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// DigestConfig 定时推送趋势榜到Telegram
type DigestConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Cron       string `mapstructure:"cron"`        // cron表达式，如 "0 9 * * *" 每天上午9点
	Limit      int    `mapstructure:"limit"`       // 推送条数
	TimeWindow string `mapstructure:"time_window"` // day 或 week
}

// LoadConfig 从 ./configs/config.yaml 或 ./config.yaml 加载配置
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("./configs", ".")
}

// LoadConfigFrom 在指定目录中查找 config.yaml;文件不存在时只使用默认值和环境变量
func LoadConfigFrom(paths ...string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// 兼容TMDB通用环境变量
	if config.TMDB.APIKey == "" {
		config.TMDB.APIKey = os.Getenv("TMDB_API_KEY")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_path", "./logs/movie-browser.log")
	v.SetDefault("log.colorize", true)
	v.SetDefault("log.add_source", false)

	// TMDB配置默认值
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.qps", 40)
	v.SetDefault("tmdb.timeout", 10*time.Second)
	v.SetDefault("tmdb.max_retries", 2)
	v.SetDefault("tmdb.retry_backoff", 300*time.Millisecond)

	v.SetDefault("images.base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("images.size", "w500")
	v.SetDefault("images.backdrop_size", "w1280")
	v.SetDefault("images.placeholder", "/static/placeholder.svg")

	// 浏览行为默认值
	v.SetDefault("browse.dark_theme", false)
	v.SetDefault("browse.search_debounce", 300*time.Millisecond)
	v.SetDefault("browse.settle_timeout", 10*time.Second)
	v.SetDefault("browse.session_ttl", 30*time.Minute)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_ids", []int64{})
	v.SetDefault("telegram.admin_ids", []int64{})
	v.SetDefault("telegram.webhook.enabled", false)
	v.SetDefault("telegram.webhook.url", "")

	v.SetDefault("digest.enabled", false)
	v.SetDefault("digest.cron", "0 9 * * *")
	v.SetDefault("digest.limit", 10)
	v.SetDefault("digest.time_window", "day")
}
