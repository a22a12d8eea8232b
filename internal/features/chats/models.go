// Package chats хранит настройки групповых чатов и вычисляет эффективные
// настройки учёта: хэштег, реакцию-подтверждение и тему (топик), в которой ведётся учёт.
// models.go описывает структуры чата и его настроек.
package chats

import (
	"strings"
	"time"
)

// Chat: запись о настроенном чате.
// Отсутствие записи означает «бот в этом чате не настроен».
type Chat struct {
	ID            int64     `db:"telegram_chat_id"` // Telegram chat ID, он же первичный ключ
	Title         string    `db:"title"`
	Hashtag       string    `db:"hashtag"`        // Переопределение хэштега ("" = дефолт)
	ReactionEmoji string    `db:"reaction_emoji"` // Переопределение реакции ("" = дефолт)
	TopicID       *int64    `db:"topic_id"`       // Ограничение по теме форума (nil = весь чат)
	CreatedAt     time.Time `db:"created_at"`
}

// Defaults: процессные значения по умолчанию (из конфигурации).
type Defaults struct {
	Hashtag       string
	ReactionEmoji string
}

// Settings: эффективные настройки учёта для чата.
type Settings struct {
	Hashtag       string
	ReactionEmoji string
	TopicID       *int64
}

// AllowsTopic проверяет, что сообщение из темы threadID попадает под учёт.
// Если тема не ограничена: подходит любое сообщение.
func (s Settings) AllowsTopic(threadID int64) bool {
	if s.TopicID == nil {
		return true
	}
	return *s.TopicID == threadID
}

// MatchesHashtag проверяет, что текст содержит хэштег (без учёта регистра).
func (s Settings) MatchesHashtag(text string) bool {
	if s.Hashtag == "" || text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(s.Hashtag))
}
