// Package app инициализирует все компоненты приложения.
// app.go создаёт БД-пул, Telegram-клиент, сервисы, обработчики
// и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/bot"
	"serotonyl.ru/repost-bot/internal/config"
	"serotonyl.ru/repost-bot/internal/db/postgres"
	"serotonyl.ru/repost-bot/internal/features/admins"
	"serotonyl.ru/repost-bot/internal/features/chats"
	"serotonyl.ru/repost-bot/internal/features/scoring"
	"serotonyl.ru/repost-bot/internal/features/stats"
	"serotonyl.ru/repost-bot/internal/features/users"
)

// App содержит все компоненты приложения.
type App struct {
	Bot    *bot.Bot
	DB     *pgxpool.Pool
	BotAPI *telego.Bot
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен: компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if _, err := postgres.Migrate(ctx, pool, Migrations); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := telego.NewBot(cfg.TelegramBotToken, telego.WithLogger(log.StandardLogger()))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	me, err := botAPI.GetMe(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка авторизации в Telegram: %w", err)
	}
	log.Infof("Авторизован как @%s", me.Username)

	gateway := bot.NewGateway(botAPI)

	// === 3. Сервисы ===
	chatService := chats.NewService(chats.NewRepository(pool), chats.Defaults{
		Hashtag:       cfg.DefaultHashtag,
		ReactionEmoji: cfg.DefaultReactionEmoji,
	})
	adminService := admins.NewService(pool, gateway)
	userService := users.NewService(pool)
	statsService := stats.NewService(pool, cfg.LeaderboardSize)
	tracker := scoring.NewTracker(pool, chatService)

	// === 4. Обработчики ===
	chatHandler := chats.NewHandler(chatService, adminService, gateway)
	handlers := bot.Handlers{
		Chats:   chatHandler,
		Users:   users.NewHandler(userService, chatHandler, gateway),
		Stats:   stats.NewHandler(statsService, chatService, gateway),
		Scoring: scoring.NewHandler(tracker, statsService, gateway),
	}

	// === 5. Собираем бота ===
	b := bot.New(botAPI, cfg, gateway, me.Username, handlers)

	return &App{
		Bot:    b,
		DB:     pool,
		BotAPI: botAPI,
	}, nil
}

// Migrate только применяет миграции (команда migrate).
func Migrate(ctx context.Context, cfg *config.Config) (int, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	defer pool.Close()

	return postgres.Migrate(ctx, pool, Migrations)
}
