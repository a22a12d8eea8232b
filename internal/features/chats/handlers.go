// Package chats: handlers.go обрабатывает команды настройки чата:
// /setup, /settings, /settopic, /cleartopic, /sethashtag, /setemoji, /syncadmins.
package chats

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/features/admins"
)

// Handler обрабатывает команды настройки.
type Handler struct {
	service *Service
	admins  *admins.Service
	sender  common.Sender
}

// NewHandler создаёт обработчик команд настройки.
func NewHandler(service *Service, adminService *admins.Service, sender common.Sender) *Handler {
	return &Handler{service: service, admins: adminService, sender: sender}
}

// HandleSetup: /setup. Кэша админов ещё нет, поэтому права проверяются
// напрямую в Telegram. Повторный /setup обновляет название и тему.
func (h *Handler) HandleSetup(ctx context.Context, cmd common.Command) {
	if cmd.IsPrivate {
		h.reply(ctx, cmd, "ℹ️ "+common.ErrNotGroupChat.Error())
		return
	}

	live, err := h.admins.IsLiveAdmin(ctx, cmd.ChatID, cmd.UserID)
	if err != nil {
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка проверки прав")
		h.reply(ctx, cmd, "❌ Не удалось проверить права, попробуйте позже")
		return
	}
	if !live {
		h.reply(ctx, cmd, "⛔ "+common.ErrNotAdmin.Error())
		return
	}

	var topicID *int64
	if cmd.ThreadID != 0 {
		topic := cmd.ThreadID
		topicID = &topic
	}
	chat, err := h.service.Setup(ctx, cmd.ChatID, cmd.ChatTitle, topicID)
	if err != nil {
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка настройки чата")
		h.reply(ctx, cmd, "❌ Ошибка настройки чата")
		return
	}

	ids, err := h.admins.SyncAdmins(ctx, cmd.ChatID)
	if err != nil {
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка синхронизации админов")
		h.reply(ctx, cmd, "⚠️ Чат настроен, но список админов не загрузился. Выполните /syncadmins")
		return
	}

	h.reply(ctx, cmd, fmt.Sprintf("✅ Чат настроен\n\n%s\n👮 Админов: %d",
		FormatSettings(h.service.Resolve(chat)), len(ids)))
}

// HandleSettings: /settings: действующие настройки учёта.
func (h *Handler) HandleSettings(ctx context.Context, cmd common.Command) {
	if !h.configured(ctx, cmd) {
		return
	}
	settings, err := h.service.EffectiveSettings(ctx, cmd.ChatID)
	if err != nil {
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка чтения настроек")
		return
	}
	h.reply(ctx, cmd, "⚙️ Настройки учёта\n\n"+FormatSettings(settings))
}

// HandleSetTopic: /settopic [id]. Без аргумента берётся тема, в которой написана команда.
func (h *Handler) HandleSetTopic(ctx context.Context, cmd common.Command) {
	if !h.Authorize(ctx, cmd) {
		return
	}

	topicID := cmd.ThreadID
	if raw := cmd.Arg(0); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			h.reply(ctx, cmd, "❌ Формат: /settopic [id темы]")
			return
		}
		topicID = parsed
	}
	if topicID == 0 {
		h.reply(ctx, cmd, "❌ Выполните команду внутри темы или укажите её id: /settopic 123")
		return
	}

	if err := h.service.SetTopic(ctx, cmd.ChatID, topicID); err != nil {
		h.fail(ctx, cmd, err)
		return
	}
	h.reply(ctx, cmd, fmt.Sprintf("✅ Учёт ведётся только в теме %d", topicID))
}

// HandleClearTopic: /cleartopic: учёт во всём чате.
func (h *Handler) HandleClearTopic(ctx context.Context, cmd common.Command) {
	if !h.Authorize(ctx, cmd) {
		return
	}
	if err := h.service.ClearTopic(ctx, cmd.ChatID); err != nil {
		h.fail(ctx, cmd, err)
		return
	}
	h.reply(ctx, cmd, "✅ Учёт ведётся во всём чате")
}

// HandleSetHashtag: /sethashtag [#тег]. Без аргумента: сброс к значению по умолчанию.
func (h *Handler) HandleSetHashtag(ctx context.Context, cmd common.Command) {
	if !h.Authorize(ctx, cmd) {
		return
	}
	hashtag, err := h.service.SetHashtag(ctx, cmd.ChatID, cmd.Arg(0))
	if err != nil {
		h.fail(ctx, cmd, err)
		return
	}
	h.reply(ctx, cmd, "✅ Хэштег: "+hashtag)
}

// HandleSetEmoji: /setemoji [эмодзи]. Без аргумента: сброс к значению по умолчанию.
func (h *Handler) HandleSetEmoji(ctx context.Context, cmd common.Command) {
	if !h.Authorize(ctx, cmd) {
		return
	}
	emoji, err := h.service.SetReactionEmoji(ctx, cmd.ChatID, cmd.Arg(0))
	if err != nil {
		h.fail(ctx, cmd, err)
		return
	}
	h.reply(ctx, cmd, "✅ Реакция-подтверждение: "+emoji)
}

// HandleSyncAdmins: /syncadmins: перечитать список админов из Telegram.
func (h *Handler) HandleSyncAdmins(ctx context.Context, cmd common.Command) {
	if !h.Authorize(ctx, cmd) {
		return
	}
	ids, err := h.admins.SyncAdmins(ctx, cmd.ChatID)
	if err != nil {
		h.fail(ctx, cmd, err)
		return
	}
	h.reply(ctx, cmd, fmt.Sprintf("✅ Список админов обновлён: %d", len(ids)))
}

// Authorize пропускает команду, только если чат настроен и автор: админ.
// Иначе сам отвечает в чат и возвращает false.
func (h *Handler) Authorize(ctx context.Context, cmd common.Command) bool {
	if !h.configured(ctx, cmd) {
		return false
	}
	ok, err := h.admins.IsAdmin(ctx, cmd.ChatID, cmd.UserID)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"chat_id": cmd.ChatID,
			"user_id": cmd.UserID,
		}).Error("Ошибка проверки прав")
		h.reply(ctx, cmd, "❌ Не удалось проверить права, попробуйте позже")
		return false
	}
	if !ok {
		h.reply(ctx, cmd, "⛔ "+common.ErrNotAdmin.Error())
		return false
	}
	return true
}

// configured: команда из группы, для которой выполнен /setup.
func (h *Handler) configured(ctx context.Context, cmd common.Command) bool {
	if cmd.IsPrivate {
		h.reply(ctx, cmd, "ℹ️ "+common.ErrNotGroupChat.Error())
		return false
	}
	if _, err := h.service.Get(ctx, cmd.ChatID); err != nil {
		if errors.Is(err, common.ErrChatNotConfigured) {
			h.reply(ctx, cmd, "ℹ️ "+common.ErrChatNotConfigured.Error())
			return false
		}
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка чтения чата")
		return false
	}
	return true
}

// fail превращает ошибку сервиса в ответ.
func (h *Handler) fail(ctx context.Context, cmd common.Command, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidHashtag),
		errors.Is(err, common.ErrInvalidEmoji),
		errors.Is(err, common.ErrChatNotConfigured):
		h.reply(ctx, cmd, "❌ "+err.Error())
	default:
		log.WithError(err).WithFields(log.Fields{
			"chat_id": cmd.ChatID,
			"command": cmd.Name,
		}).Error("Ошибка выполнения команды")
		h.reply(ctx, cmd, "❌ Ошибка выполнения команды")
	}
}

func (h *Handler) reply(ctx context.Context, cmd common.Command, text string) {
	common.Reply(ctx, h.sender, cmd, text)
}

// FormatSettings: человекочитаемые настройки учёта.
func FormatSettings(s Settings) string {
	topic := "весь чат"
	if s.TopicID != nil {
		topic = fmt.Sprintf("тема %d", *s.TopicID)
	}
	return fmt.Sprintf("#️⃣ Хэштег: %s\n👍 Реакция: %s\n🧵 Где: %s", s.Hashtag, s.ReactionEmoji, topic)
}
