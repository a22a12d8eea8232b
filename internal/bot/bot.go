// Package bot содержит главный модуль бота: polling, разбор апдейтов и маршрутизацию.
// bot.go принимает апдейты и раздаёт их обработчикам фич.
package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/bot/filters"
	"serotonyl.ru/repost-bot/internal/bot/middleware"
	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/config"
	"serotonyl.ru/repost-bot/internal/features/chats"
	"serotonyl.ru/repost-bot/internal/features/scoring"
	"serotonyl.ru/repost-bot/internal/features/stats"
	"serotonyl.ru/repost-bot/internal/features/users"
)

const helpText = `👋 Я считаю репосты в группе.

Пост с хэштегом ставится на учёт. Кто сделал репост — ставит посту реакцию-подтверждение: ему начисляются очки, автору — списываются.

Команды:
/stats — твоя статистика (в личку)
/leaderboard — лидерборд чата (в личку)
/settings — настройки учёта

Для админов:
/setup — включить учёт в чате
/settopic [id] — учитывать только одну тему
/cleartopic — учитывать весь чат
/sethashtag [#тег] — свой хэштег (без аргумента — по умолчанию)
/setemoji [эмодзи] — своя реакция (без аргумента — по умолчанию)
/setweight @username вес — вес участника
/syncadmins — обновить список админов`

// Handlers: обработчики фич, которым бот раздаёт апдейты.
type Handlers struct {
	Chats   *chats.Handler
	Users   *users.Handler
	Stats   *stats.Handler
	Scoring *scoring.Handler
}

// Bot: главная структура бота, объединяющая все компоненты.
type Bot struct {
	api    *telego.Bot
	cfg    *config.Config
	sender common.Sender

	handlers    Handlers
	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter
	parser      *CommandParser
	commands    map[string]commandFunc

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

type commandFunc func(ctx context.Context, cmd common.Command)

// New создаёт бота. botUsername: @username самого бота (для /cmd@bot).
func New(api *telego.Bot, cfg *config.Config, sender common.Sender, botUsername string, handlers Handlers) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	b := &Bot{
		api:         api,
		cfg:         cfg,
		sender:      sender,
		handlers:    handlers,
		chatFilter:  filters.NewChatFilter(),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		parser:      NewCommandParser(botUsername),
		inflight:    make(chan struct{}, maxInFlight),
	}
	b.commands = b.commandTable()
	return b
}

// commandTable: имя команды → обработчик.
func (b *Bot) commandTable() map[string]commandFunc {
	return map[string]commandFunc{
		"start":       b.handleHelp,
		"help":        b.handleHelp,
		"setup":       b.handlers.Chats.HandleSetup,
		"settings":    b.handlers.Chats.HandleSettings,
		"settopic":    b.handlers.Chats.HandleSetTopic,
		"cleartopic":  b.handlers.Chats.HandleClearTopic,
		"sethashtag":  b.handlers.Chats.HandleSetHashtag,
		"setemoji":    b.handlers.Chats.HandleSetEmoji,
		"syncadmins":  b.handlers.Chats.HandleSyncAdmins,
		"setweight":   b.handlers.Users.HandleSetWeight,
		"stats":       b.handlers.Stats.HandleStats,
		"leaderboard": b.handlers.Stats.HandleLeaderboard,
	}
}

// Start запускает long polling и блокируется до отмены ctx.
func (b *Bot) Start(ctx context.Context) error {
	defer b.rateLimiter.Close()

	updates, err := b.api.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout:        b.cfg.BotUpdateTimeoutSeconds,
		AllowedUpdates: []string{"message", "message_reaction"},
	})
	if err != nil {
		return fmt.Errorf("ошибка запуска long polling: %w", err)
	}

	log.WithFields(log.Fields{
		"max_inflight": cap(b.inflight),
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.drain()
			return nil

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				b.drain()
				return nil
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd telego.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// drain ждёт завершения уже запущенных обработчиков.
func (b *Bot) drain() {
	for i := 0; i < cap(b.inflight); i++ {
		b.inflight <- struct{}{}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update telego.Update) {
	defer middleware.RecoverFromPanic(update.UpdateID)

	switch {
	case update.MessageReaction != nil:
		b.handleReaction(ctx, update.MessageReaction)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleReaction(ctx context.Context, reaction *telego.MessageReactionUpdated) {
	middleware.LogReaction(reaction)
	if !b.chatFilter.AllowReaction(reaction) {
		return
	}

	ev := reactionEvent(reaction)
	if err := b.handlers.Scoring.HandleReaction(ctx, ev); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"chat_id":    ev.ChatID,
			"message_id": ev.MessageID,
			"reactor_id": ev.ReactorID,
		}).Error("Ошибка учёта реакции")
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *telego.Message) {
	middleware.LogMessage(message)
	if message.From == nil || message.From.IsBot {
		return
	}

	// Парсим команду
	if name, args, isCommand := b.parser.ParseCommand(message.Text); isCommand {
		b.routeCommand(ctx, newCommand(message, name, args))
		return
	}

	if !b.chatFilter.AllowMessage(message) {
		return
	}
	ev := messageEvent(message)
	if err := b.handlers.Scoring.HandleMessage(ctx, ev); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"chat_id":    ev.ChatID,
			"message_id": ev.MessageID,
		}).Error("Ошибка учёта поста")
	}
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, cmd common.Command) {
	handler, ok := b.commands[cmd.Name]
	if !ok {
		return
	}

	// Rate limiting только для команд
	if !b.rateLimiter.Allow(cmd.UserID) {
		log.WithField("user_id", cmd.UserID).Debug("rate limited")
		return
	}

	log.WithFields(log.Fields{
		"cmd":     cmd.Name,
		"args":    cmd.Args,
		"chat_id": cmd.ChatID,
	}).Debug("routing command")
	handler(ctx, cmd)
}

func (b *Bot) handleHelp(ctx context.Context, cmd common.Command) {
	common.Reply(ctx, b.sender, cmd, helpText)
}
