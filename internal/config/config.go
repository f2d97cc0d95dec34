package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL         = "localhost:8000"
	defaultDatabaseDSN     = "items.db"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	// Storage
	DatabaseDSN string `env:"DATABASE_URI"`

	// HTTP
	BaseURL         string        `env:"BASE_URL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	MaxListLimit    int           `env:"MAX_LIST_LIMIT"`     // 0 — limit не ограничен
	RateLimitPerMin int           `env:"RATE_LIMIT_PER_MIN"` // 0 — без rate limit

	LogLevel string `env:"LOG_LEVEL"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги переопределяют env, значения из env служат значениями по умолчанию
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (путь к файлу SQLite или postgres DSN)")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес HTTP-сервера в виде host:port")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "таймаут graceful shutdown")
	flag.IntVar(&cfg.MaxListLimit, "max-limit", cfg.MaxListLimit, "верхняя граница limit для списка items (0 — без ограничения)")
	flag.IntVar(&cfg.RateLimitPerMin, "rate-limit", cfg.RateLimitPerMin, "запросов в минуту с одного IP (0 — выключено)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "уровень логирования: debug, info, warn, error")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)

func (c *Config) applyDefaults() {
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = defaultDatabaseDSN
	}
	// BaseURL должен быть "address:port" (без схемы и пути), иначе берём значение по умолчанию
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = defaultBaseURL
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.MaxListLimit < 0 {
		c.MaxListLimit = 0
	}
	if c.RateLimitPerMin < 0 {
		c.RateLimitPerMin = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}
