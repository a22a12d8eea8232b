package common

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// ReplyPrivately отправляет ответ на команду в личку автору.
// Если команда пришла из группы, после успешной отправки сообщение с командой удаляется.
// Если написать в личку нельзя (пользователь не запускал бота), в группу уходит fallback,
// а при пустом fallback: сам ответ.
func ReplyPrivately(ctx context.Context, s Sender, cmd Command, text, fallback string) {
	if err := s.SendText(ctx, cmd.UserID, text); err != nil {
		log.WithError(err).WithField("user_id", cmd.UserID).Warn("Не удалось написать в личку")
		if cmd.IsPrivate {
			return
		}
		if fallback == "" {
			fallback = text
		}
		if err := s.ReplyText(ctx, cmd.ChatID, cmd.MessageID, fallback); err != nil {
			log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка отправки сообщения")
		}
		return
	}

	if cmd.IsPrivate {
		return
	}
	if err := s.DeleteMessage(ctx, cmd.ChatID, cmd.MessageID); err != nil {
		// у бота может не быть прав на удаление
		log.WithError(err).WithField("chat_id", cmd.ChatID).Debug("Не удалось удалить команду")
	}
}

// Reply отвечает на команду в том же чате.
func Reply(ctx context.Context, s Sender, cmd Command, text string) {
	if err := s.ReplyText(ctx, cmd.ChatID, cmd.MessageID, text); err != nil {
		log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка отправки сообщения")
	}
}
