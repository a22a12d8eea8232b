// Package middleware содержит промежуточные обработчики для логирования,
// восстановления после паники и rate-limiting.
package middleware

import (
	"unicode/utf8"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"
)

const maxLoggedText = 50

// LogMessage логирует входящее сообщение.
// Записывает: user_id, chat_id, username, тему и текст (первые 50 символов).
func LogMessage(message *telego.Message) {
	if message == nil {
		return
	}

	fields := log.Fields{
		"chat_id":    message.Chat.ID,
		"chat_type":  message.Chat.Type,
		"message_id": message.MessageID,
		"text":       truncate(message.Text, maxLoggedText),
	}
	if message.From != nil {
		fields["user_id"] = message.From.ID
		fields["username"] = message.From.Username
	}
	if message.MessageThreadID != 0 {
		fields["thread_id"] = message.MessageThreadID
	}
	log.WithFields(fields).Debug("Входящее сообщение")
}

// LogReaction логирует изменение реакций на сообщение.
func LogReaction(reaction *telego.MessageReactionUpdated) {
	if reaction == nil {
		return
	}

	fields := log.Fields{
		"chat_id":    reaction.Chat.ID,
		"message_id": reaction.MessageID,
		"reactions":  len(reaction.NewReaction),
	}
	if reaction.User != nil {
		fields["user_id"] = reaction.User.ID
	}
	log.WithFields(fields).Debug("Входящая реакция")
}

// truncate обрезает строку по символам, а не по байтам: кириллицу и эмодзи не рвём.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
