// Package stats: handlers.go обрабатывает /stats и /leaderboard.
// Ответ уходит в личку, команда в группе удаляется.
package stats

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/features/chats"
)

const dmFallback = "✉️ Напиши мне в личку (/start), чтобы получать статистику"

// Handler обрабатывает команды статистики.
type Handler struct {
	service *Service
	chats   *chats.Service
	sender  common.Sender
}

// NewHandler создаёт обработчик статистики.
func NewHandler(service *Service, chatService *chats.Service, sender common.Sender) *Handler {
	return &Handler{service: service, chats: chatService, sender: sender}
}

// HandleStats: /stats: своя статистика в текущем чате.
func (h *Handler) HandleStats(ctx context.Context, cmd common.Command) {
	chat, ok := h.configuredChat(ctx, cmd)
	if !ok {
		return
	}

	st, err := h.service.StatsForTelegramUser(ctx, cmd.ChatID, cmd.UserID)
	if err != nil {
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка получения статистики")
		common.Reply(ctx, h.sender, cmd, "❌ Ошибка получения статистики")
		return
	}
	common.ReplyPrivately(ctx, h.sender, cmd, FormatUserStats(chat.Title, st), dmFallback)
}

// HandleLeaderboard: /leaderboard: топ чата по очкам.
func (h *Handler) HandleLeaderboard(ctx context.Context, cmd common.Command) {
	chat, ok := h.configuredChat(ctx, cmd)
	if !ok {
		return
	}

	entries, err := h.service.Leaderboard(ctx, cmd.ChatID)
	if err != nil {
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка получения лидерборда")
		common.Reply(ctx, h.sender, cmd, "❌ Ошибка получения лидерборда")
		return
	}
	common.ReplyPrivately(ctx, h.sender, cmd, FormatLeaderboard(chat.Title, entries), dmFallback)
}

// configuredChat проверяет, что команда пришла из настроенной группы.
func (h *Handler) configuredChat(ctx context.Context, cmd common.Command) (*chats.Chat, bool) {
	if cmd.IsPrivate {
		common.Reply(ctx, h.sender, cmd, "ℹ️ "+common.ErrNotGroupChat.Error())
		return nil, false
	}
	chat, err := h.chats.Get(ctx, cmd.ChatID)
	if err != nil {
		if errors.Is(err, common.ErrChatNotConfigured) {
			common.Reply(ctx, h.sender, cmd, "ℹ️ "+common.ErrChatNotConfigured.Error())
			return nil, false
		}
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка чтения чата")
		return nil, false
	}
	return chat, true
}
