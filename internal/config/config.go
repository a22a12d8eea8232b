// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры,
// а godotenv подтягивает .env при локальном запуске.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"serotonyl.ru/repost-bot/internal/common"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`

	// --- Database ---
	// Полный DSN (Railway/Heroku отдают именно его). Если задан: DB_* игнорируются.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"botuser"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"repost_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Tracking defaults (переопределяются на уровне чата) ---
	DefaultHashtag       string `envconfig:"HASHTAG" default:"#repost"`
	DefaultReactionEmoji string `envconfig:"REACTION_EMOJI" default:"👍"`
	LeaderboardSize      int    `envconfig:"LEADERBOARD_SIZE" default:"10"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Rate Limiting (только команды) ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		// pgx понимает обе схемы, но приводим к одной для логов
		if strings.HasPrefix(c.DatabaseURL, "postgresql://") {
			return "postgres://" + strings.TrimPrefix(c.DatabaseURL, "postgresql://")
		}
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TelegramBotToken) == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN пустой")
	}
	if c.DatabaseURL == "" && c.DBPassword == "" {
		return fmt.Errorf("нужен DATABASE_URL или DB_PASSWORD")
	}
	if err := common.ValidateHashtag(c.DefaultHashtag); err != nil {
		return fmt.Errorf("HASHTAG %q: %w", c.DefaultHashtag, err)
	}
	if err := common.ValidateEmoji(c.DefaultReactionEmoji); err != nil {
		return fmt.Errorf("REACTION_EMOJI %q: %w", c.DefaultReactionEmoji, err)
	}
	if c.LeaderboardSize <= 0 {
		return fmt.Errorf("LEADERBOARD_SIZE должен быть > 0")
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("некорректные RATE_LIMIT_REQUESTS/RATE_LIMIT_WINDOW")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	return nil
}

// Load читает .env (если есть) и переменные окружения, заполняет Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("не удалось прочитать .env: %w", err)
	}
	return FromEnv()
}

// FromEnv заполняет Config только из переменных окружения.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	cfg.DefaultHashtag = strings.TrimSpace(cfg.DefaultHashtag)
	cfg.DefaultReactionEmoji = strings.TrimSpace(cfg.DefaultReactionEmoji)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
