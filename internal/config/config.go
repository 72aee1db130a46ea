package config

import (
	"fmt"
	"strings"

	"github.com/balju-mate/internal/logger"

	"github.com/spf13/viper"
)

// Config 애플리케이션 전체 설정
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Order    OrderConfig    `mapstructure:"order"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Mode     string `mapstructure:"mode"` // debug / release
	Timezone string `mapstructure:"timezone"`
}

// LogConfig 로그 설정
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions logger 옵션으로 변환
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 데이터베이스 커넥션 풀 설정
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 데이터베이스 설정
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 데이터베이스 드라이버 (sqlite/postgres)
	DSN    string             `mapstructure:"dsn"`    // 데이터베이스 연결 문자열
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 설정
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 비동기 작업 큐 설정
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// OrderConfig 발주 관련 설정
type OrderConfig struct {
	DraftTTLHours int `mapstructure:"draft_ttl_hours"` // 임시 저장(장바구니) 보존 시간
}

// CatalogConfig 상품 카탈로그 설정
type CatalogConfig struct {
	Bridge BridgeConfig      `mapstructure:"bridge"`
	Sync   CatalogSyncConfig `mapstructure:"sync"`
}

// BridgeConfig 원격 조회 브리지 설정
type BridgeConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	URL       string `mapstructure:"url"`
	APIKey    string `mapstructure:"api_key"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// CatalogSyncConfig 카탈로그 동기화 설정
type CatalogSyncConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// EventsConfig 행사 라이프사이클 설정
type EventsConfig struct {
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds"` // 행사 기간 경계 스윕 주기
}

// CORSConfig CORS 설정
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 보안 설정
type SecurityConfig struct {
	LookupRateLimit LookupRateLimitConfig `mapstructure:"lookup_rate_limit"`
}

// LookupRateLimitConfig 원격 조회 요청 제한 설정
type LookupRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// Load config.yml 에서 설정을 읽는다
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 현재 디렉토리
	viper.AddConfigPath("./")    // 예비 경로
	viper.AddConfigPath("../")   // cmd/server 에서 실행할 때
	viper.AddConfigPath("./etc") // etc 폴더

	// 기본값
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.timezone", "Asia/Seoul")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "baljumate.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/baljumate.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "bm")
	viper.SetDefault("queue.enabled", true)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Cache-Control",
		"X-Requested-With",
		"X-Register-ID",
		"X-Request-ID",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("security.lookup_rate_limit.window_seconds", 60)
	viper.SetDefault("security.lookup_rate_limit.max_requests", 120)
	viper.SetDefault("order.draft_ttl_hours", 168)
	viper.SetDefault("catalog.bridge.enabled", false)
	viper.SetDefault("catalog.bridge.url", "")
	viper.SetDefault("catalog.bridge.api_key", "")
	viper.SetDefault("catalog.bridge.timeout_ms", 5000)
	viper.SetDefault("catalog.sync.page_size", 500)
	viper.SetDefault("events.sweep_interval_seconds", 300)

	// 환경 변수 지원
	viper.AutomaticEnv()                                   // 환경 변수 자동 읽기
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // . 을 _ 로 치환 (예: server.port -> SERVER_PORT)

	// 설정 파일 읽기
	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("설정 파싱 실패: %w", err))
	}

	return &cfg
}
