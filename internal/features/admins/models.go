// Package admins определяет, кто может менять настройки учёта в чате.
// Используется двухуровневая проверка: кэш администраторов в БД → живой запрос
// к Telegram → полная пересинхронизация кэша.
// models.go описывает запись кэша и интерфейс платформы.
package admins

import (
	"context"
	"time"
)

// ChatAdmin: закэшированный администратор чата.
type ChatAdmin struct {
	ID             int64     `db:"id"`
	ChatID         int64     `db:"chat_id"`
	TelegramUserID int64     `db:"telegram_user_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// Platform: источник истины о правах (Telegram Bot API).
type Platform interface {
	// IsChatAdmin проверяет одного пользователя (getChatMember).
	IsChatAdmin(ctx context.Context, chatID, userID int64) (bool, error)
	// ChatAdminIDs возвращает текущий список админов (getChatAdministrators).
	ChatAdminIDs(ctx context.Context, chatID int64) ([]int64, error)
}
