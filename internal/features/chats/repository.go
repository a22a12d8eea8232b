// Package chats: repository.go выполняет операции с таблицей chats.
package chats

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/db/postgres"
)

const chatColumns = `telegram_chat_id, COALESCE(title, ''), COALESCE(hashtag, ''),
	COALESCE(reaction_emoji, ''), topic_id, created_at`

// Repository работает с таблицей chats.
type Repository struct {
	db postgres.Querier
}

// NewRepository создаёт репозиторий чатов.
func NewRepository(db postgres.Querier) *Repository {
	return &Repository{db: db}
}

// Get возвращает чат. Если /setup не выполнялся: common.ErrChatNotConfigured.
func (r *Repository) Get(ctx context.Context, chatID int64) (*Chat, error) {
	query := `SELECT ` + chatColumns + ` FROM chats WHERE telegram_chat_id = $1`
	c, err := scanChat(r.db.QueryRow(ctx, query, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrChatNotConfigured
		}
		return nil, fmt.Errorf("ошибка чтения чата (chat_id=%d): %w", chatID, err)
	}
	return c, nil
}

// Upsert создаёт чат или обновляет название и тему.
// Пустое название и nil-тема существующие значения не затирают.
func (r *Repository) Upsert(ctx context.Context, chatID int64, title string, topicID *int64) (*Chat, error) {
	query := `
		INSERT INTO chats (telegram_chat_id, title, topic_id)
		VALUES ($1, NULLIF($2, ''), $3)
		ON CONFLICT (telegram_chat_id) DO UPDATE
		SET title = COALESCE(EXCLUDED.title, chats.title),
		    topic_id = COALESCE(EXCLUDED.topic_id, chats.topic_id)
		RETURNING ` + chatColumns
	c, err := scanChat(r.db.QueryRow(ctx, query, chatID, title, topicID))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания/обновления чата: %w", err)
	}
	return c, nil
}

// SetTopic ограничивает учёт темой topicID (nil: снять ограничение).
func (r *Repository) SetTopic(ctx context.Context, chatID int64, topicID *int64) error {
	return r.update(ctx, `UPDATE chats SET topic_id = $2 WHERE telegram_chat_id = $1`, chatID, topicID)
}

// SetHashtag переопределяет хэштег. Пустая строка сбрасывает к дефолту.
func (r *Repository) SetHashtag(ctx context.Context, chatID int64, hashtag string) error {
	return r.update(ctx, `UPDATE chats SET hashtag = NULLIF($2, '') WHERE telegram_chat_id = $1`, chatID, hashtag)
}

// SetReactionEmoji переопределяет реакцию-подтверждение. Пустая строка сбрасывает к дефолту.
func (r *Repository) SetReactionEmoji(ctx context.Context, chatID int64, emoji string) error {
	return r.update(ctx, `UPDATE chats SET reaction_emoji = NULLIF($2, '') WHERE telegram_chat_id = $1`, chatID, emoji)
}

func (r *Repository) update(ctx context.Context, query string, chatID int64, value any) error {
	tag, err := r.db.Exec(ctx, query, chatID, value)
	if err != nil {
		return fmt.Errorf("ошибка обновления чата (chat_id=%d): %w", chatID, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrChatNotConfigured
	}
	return nil
}

func scanChat(row pgx.Row) (*Chat, error) {
	var c Chat
	if err := row.Scan(&c.ID, &c.Title, &c.Hashtag, &c.ReactionEmoji, &c.TopicID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
