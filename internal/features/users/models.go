// Package users ведёт реестр пользователей и сопоставляет Telegram ID с внутренними
// записями User и ChatUser (очки и вес в конкретном чате), создавая их лениво.
// models.go описывает структуры данных.
package users

import (
	"time"

	"serotonyl.ru/repost-bot/internal/common"
)

// Значения по умолчанию для новой записи ChatUser.
const (
	DefaultPoints = 0.0
	DefaultWeight = 1.0
)

// User: пользователь Telegram, которого бот хоть раз видел.
// Создаётся один раз, username обновляется по мере наблюдения, не удаляется.
type User struct {
	ID         int64     `db:"id"`          // Внутренний ID
	TelegramID int64     `db:"telegram_id"` // Telegram user ID (уникальный)
	Username   string    `db:"username"`    // @username без @ (может быть пустым)
	CreatedAt  time.Time `db:"created_at"`
}

// DisplayName возвращает @username или "User <id>".
func (u *User) DisplayName() string {
	return common.DisplayName(u.Username, u.TelegramID)
}

// ChatUser: очки и вес пользователя в конкретном чате.
// Ровно одна запись на пару (чат, пользователь).
type ChatUser struct {
	ChatID int64   `db:"chat_id"`
	UserID int64   `db:"user_id"`
	Points float64 `db:"points"` // Со знаком, без ограничений
	Weight float64 `db:"weight"` // Множитель, строго > 0
}
