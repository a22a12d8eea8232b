// Package posts: журнал постов и реакций.
// Пост: сообщение с хэштегом, которое можно «репостнуть». Реакция: факт того,
// что конкретный пользователь подтвердил репост конкретного поста; на пару
// (пост, пользователь) бывает не больше одной реакции.
package posts

import (
	"time"

	"serotonyl.ru/repost-bot/internal/features/users"
)

// Post: отслеживаемое сообщение. Уникален по (chat_id, message_id).
type Post struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	MessageID int64     `db:"message_id"`
	TopicID   *int64    `db:"topic_id"`
	UserID    int64     `db:"user_id"` // Автор (внутренний ID)
	CreatedAt time.Time `db:"created_at"`

	Owner *users.User `db:"-"` // Заполняется FindByMessage
}

// Reaction: засчитанный репост. Уникальна по (post_id, reactor_user_id).
type Reaction struct {
	ID            int64     `db:"id"`
	PostID        int64     `db:"post_id"`
	ReactorUserID int64     `db:"reactor_user_id"`
	CreatedAt     time.Time `db:"created_at"`
}
