package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server     ServerConfig              `mapstructure:"server"`      // 服务器配置
	Postgres   PostgresConfig            `mapstructure:"postgres"`    // PostgreSQL配置
	Discovery  DiscoveryConfig           `mapstructure:"discovery"`   // 采集任务配置
	LiveStatus LiveStatusConfig          `mapstructure:"live_status"` // 直播状态查询配置
	Platforms  map[string]PlatformConfig `mapstructure:"platforms"`   // 多平台独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port       int    `mapstructure:"port"`        // 服务端口
	Mode       string `mapstructure:"mode"`        // Gin运行模式：debug/release/test
	CronSecret string `mapstructure:"cron_secret"` // cron 触发路由的共享密钥（为空则不校验）
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// DiscoveryConfig 采集任务默认参数
type DiscoveryConfig struct {
	Language       string `mapstructure:"language"`        // 直播语言过滤（默认 ko）
	TopGames       int    `mapstructure:"top_games"`       // Twitch 热门游戏数量（默认 5）
	StreamerLimit  int    `mapstructure:"streamer_limit"`  // 单次采集主播数量上限（默认 100）
	SearchResults  int    `mapstructure:"search_results"`  // YouTube 单关键词搜索结果数（默认 20）
	MinSubscribers int64  `mapstructure:"min_subscribers"` // YouTube 订阅数下限（默认 1000）
	MaxUploadDays  int    `mapstructure:"max_upload_days"` // YouTube 最近上传天数上限（默认 30）
}

// LiveStatusConfig 直播状态缓存配置
type LiveStatusConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // 缓存有效期（默认 5m）
}

// PlatformConfig 单个平台的独立配置
type PlatformConfig struct {
	BaseURL      string `mapstructure:"base_url"`      // API基础地址
	AuthURL      string `mapstructure:"auth_url"`      // OAuth token 地址（Twitch 用）
	Timeout      int    `mapstructure:"timeout"`       // 请求超时（秒）
	APIKey       string `mapstructure:"api_key"`       // YouTube专属API Key
	ClientID     string `mapstructure:"client_id"`     // Twitch/Chzzk Client ID
	ClientSecret string `mapstructure:"client_secret"` // Twitch/Chzzk Client Secret
	Proxy        string `mapstructure:"proxy"`         // 代理地址
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if y, ok := cfg.Platforms["youtube"]; ok {
		if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
			y.APIKey = v
		}
		cfg.Platforms["youtube"] = y
	}
	if t, ok := cfg.Platforms["twitch"]; ok {
		if v := os.Getenv("TWITCH_CLIENT_ID"); v != "" {
			t.ClientID = v
		}
		if v := os.Getenv("TWITCH_CLIENT_SECRET"); v != "" {
			t.ClientSecret = v
		}
		cfg.Platforms["twitch"] = t
	}
	if c, ok := cfg.Platforms["chzzk"]; ok {
		if v := os.Getenv("CHZZK_CLIENT_ID"); v != "" {
			c.ClientID = v
		}
		if v := os.Getenv("CHZZK_CLIENT_SECRET"); v != "" {
			c.ClientSecret = v
		}
		cfg.Platforms["chzzk"] = c
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("CRON_SECRET"); v != "" {
		cfg.Server.CronSecret = v
	}
}

// applyDefaults 未配置项给出与线上行为一致的默认值
func applyDefaults(cfg *Config) {
	if cfg.Discovery.Language == "" {
		cfg.Discovery.Language = "ko"
	}
	if cfg.Discovery.TopGames <= 0 {
		cfg.Discovery.TopGames = 5
	}
	if cfg.Discovery.StreamerLimit <= 0 {
		cfg.Discovery.StreamerLimit = 100
	}
	if cfg.Discovery.SearchResults <= 0 {
		cfg.Discovery.SearchResults = 20
	}
	if cfg.Discovery.MinSubscribers <= 0 {
		cfg.Discovery.MinSubscribers = 1000
	}
	if cfg.Discovery.MaxUploadDays <= 0 {
		cfg.Discovery.MaxUploadDays = 30
	}
	if cfg.LiveStatus.CacheTTL <= 0 {
		cfg.LiveStatus.CacheTTL = 5 * time.Minute
	}
}
