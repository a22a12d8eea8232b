// Package scoring: handlers.go принимает события от транспорта.
// Ожидаемые исходы гасятся тихо: в ненастроенных чатах бот молчит.
package scoring

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/features/stats"
)

// Handler обрабатывает новые сообщения и реакции.
type Handler struct {
	tracker *Tracker
	stats   *stats.Service
	sender  common.Sender
}

// NewHandler создаёт обработчик учёта.
func NewHandler(tracker *Tracker, statsService *stats.Service, sender common.Sender) *Handler {
	return &Handler{tracker: tracker, stats: statsService, sender: sender}
}

// HandleMessage ставит пост на учёт и отвечает автору его статистикой.
func (h *Handler) HandleMessage(ctx context.Context, ev MessageEvent) error {
	tracked, err := h.tracker.TrackMessage(ctx, ev)
	if err != nil {
		if isExpected(err) {
			log.WithError(err).WithFields(log.Fields{
				"chat_id":    ev.ChatID,
				"message_id": ev.MessageID,
			}).Debug("Сообщение не учтено")
			return nil
		}
		return err
	}

	st, err := h.stats.UserStats(ctx, ev.ChatID, tracked.Author.ID)
	if err != nil {
		// пост уже учтён, ответ необязателен
		log.WithError(err).WithField("chat_id", ev.ChatID).Warn("Не удалось получить статистику автора")
		return nil
	}
	text := stats.FormatAuthorStats(tracked.Author.DisplayName(), st)
	if err := h.sender.ReplyText(ctx, ev.ChatID, int(ev.MessageID), text); err != nil {
		log.WithError(err).WithField("chat_id", ev.ChatID).Error("Ошибка отправки сообщения")
	}
	return nil
}

// HandleReaction засчитывает реакцию-подтверждение.
func (h *Handler) HandleReaction(ctx context.Context, ev ReactionEvent) error {
	res, err := h.tracker.ApplyReaction(ctx, ev)
	if err != nil {
		if isExpected(err) {
			log.WithError(err).WithFields(log.Fields{
				"chat_id":    ev.ChatID,
				"message_id": ev.MessageID,
				"reactor_id": ev.ReactorID,
			}).Debug("Реакция не засчитана")
			return nil
		}
		return err
	}
	log.WithFields(log.Fields{
		"chat_id": ev.ChatID,
		"post_id": res.Post.ID,
		"reactor": common.FormatPointsDelta(res.Transfer.ReactorDelta),
		"owner":   common.FormatPointsDelta(res.Transfer.OwnerDelta),
	}).Info("Репост засчитан")
	return nil
}

// isExpected: исходы, которые не являются сбоями.
func isExpected(err error) bool {
	return errors.Is(err, common.ErrChatNotConfigured) ||
		errors.Is(err, common.ErrNotTracked) ||
		errors.Is(err, common.ErrPostNotFound) ||
		errors.Is(err, common.ErrSelfReaction) ||
		errors.Is(err, common.ErrAlreadyRecorded)
}
