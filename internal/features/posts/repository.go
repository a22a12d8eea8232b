// Package posts: repository.go работает с таблицами posts и reactions.
// Уникальность (пост, реактор) обеспечивает БД: вставка идёт через
// ON CONFLICT DO NOTHING, поэтому повторная или параллельная доставка
// одного и того же события не создаёт второй реакции.
package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/db/postgres"
	"serotonyl.ru/repost-bot/internal/features/users"
)

// Repository работает с постами и реакциями.
type Repository struct {
	db postgres.Querier
}

// NewRepository создаёт репозиторий. db может быть пулом или транзакцией.
func NewRepository(db postgres.Querier) *Repository {
	return &Repository{db: db}
}

// Create записывает пост. Решение «подходит ли сообщение» принимает вызывающий.
// Повторная доставка того же сообщения возвращает common.ErrAlreadyRecorded.
func (r *Repository) Create(ctx context.Context, chatID, messageID, authorUserID int64, topicID *int64) (*Post, error) {
	query := `
		INSERT INTO posts (chat_id, message_id, user_id, topic_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id, message_id) DO NOTHING
		RETURNING id, created_at
	`
	p := Post{ChatID: chatID, MessageID: messageID, UserID: authorUserID, TopicID: topicID}
	err := r.db.QueryRow(ctx, query, chatID, messageID, authorUserID, topicID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAlreadyRecorded
		}
		return nil, fmt.Errorf("ошибка записи поста (chat_id=%d, message_id=%d): %w", chatID, messageID, err)
	}
	return &p, nil
}

// FindByMessage возвращает пост вместе с автором.
// Сообщение не пост: common.ErrPostNotFound (это не ошибка, а no-op для вызывающего).
func (r *Repository) FindByMessage(ctx context.Context, chatID, messageID int64) (*Post, error) {
	query := `
		SELECT p.id, p.chat_id, p.message_id, p.topic_id, p.user_id, p.created_at,
		       u.telegram_id, COALESCE(u.username, ''), u.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.chat_id = $1 AND p.message_id = $2
	`
	var p Post
	owner := users.User{}
	err := r.db.QueryRow(ctx, query, chatID, messageID).Scan(
		&p.ID, &p.ChatID, &p.MessageID, &p.TopicID, &p.UserID, &p.CreatedAt,
		&owner.TelegramID, &owner.Username, &owner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPostNotFound
		}
		return nil, fmt.Errorf("ошибка чтения поста (chat_id=%d, message_id=%d): %w", chatID, messageID, err)
	}
	owner.ID = p.UserID
	p.Owner = &owner
	return &p, nil
}

// TryAddReaction пытается записать реакцию (post, reactor).
// Если пара уже есть: common.ErrAlreadyRecorded, ничего не меняется.
func (r *Repository) TryAddReaction(ctx context.Context, postID, reactorUserID int64) (*Reaction, error) {
	query := `
		INSERT INTO reactions (post_id, reactor_user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, reactor_user_id) DO NOTHING
		RETURNING id, created_at
	`
	rc := Reaction{PostID: postID, ReactorUserID: reactorUserID}
	err := r.db.QueryRow(ctx, query, postID, reactorUserID).Scan(&rc.ID, &rc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAlreadyRecorded
		}
		return nil, fmt.Errorf("ошибка записи реакции (post_id=%d): %w", postID, err)
	}
	return &rc, nil
}

// CountReactions возвращает число засчитанных реакций на пост.
func (r *Repository) CountReactions(ctx context.Context, postID int64) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reactions WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта реакций: %w", err)
	}
	return n, nil
}
