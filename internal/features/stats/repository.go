// Package stats: repository.go собирает счётчики одним запросом на пользователя
// и одним запросом на весь лидерборд.
package stats

import (
	"context"
	"fmt"

	"serotonyl.ru/repost-bot/internal/db/postgres"
	"serotonyl.ru/repost-bot/internal/features/users"
)

// Подзапросы счётчиков: реакции на свои посты не считаются ни в одну сторону.
// $1: chat_id, пользователь подставляется выражением userExpr.
func madeSubquery(userExpr string) string {
	return `(SELECT COUNT(*) FROM reactions r JOIN posts p ON p.id = r.post_id
		WHERE p.chat_id = $1 AND r.reactor_user_id = ` + userExpr + ` AND p.user_id <> ` + userExpr + `)`
}

func receivedSubquery(userExpr string) string {
	return `(SELECT COUNT(*) FROM reactions r JOIN posts p ON p.id = r.post_id
		WHERE p.chat_id = $1 AND p.user_id = ` + userExpr + ` AND r.reactor_user_id <> ` + userExpr + `)`
}

// Repository читает статистику.
type Repository struct {
	db postgres.Querier
}

// NewRepository создаёт репозиторий статистики.
func NewRepository(db postgres.Querier) *Repository {
	return &Repository{db: db}
}

// UserStats возвращает статистику пользователя (внутренний ID) в чате.
func (r *Repository) UserStats(ctx context.Context, chatID, userID int64) (*UserStats, error) {
	query := `
		SELECT ` + madeSubquery("$2") + `,
		       ` + receivedSubquery("$2") + `,
		       COALESCE((SELECT points FROM chat_users WHERE chat_id = $1 AND user_id = $2), $3),
		       COALESCE((SELECT weight FROM chat_users WHERE chat_id = $1 AND user_id = $2), $4)
	`
	var s UserStats
	err := r.db.QueryRow(ctx, query, chatID, userID, users.DefaultPoints, users.DefaultWeight).
		Scan(&s.RepostsMade, &s.RepostsReceived, &s.Points, &s.Weight)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения статистики (chat_id=%d, user_id=%d): %w", chatID, userID, err)
	}
	return &s, nil
}

// Leaderboard возвращает топ-limit участников чата по очкам.
// При равенстве очков выше тот, кого бот увидел раньше.
func (r *Repository) Leaderboard(ctx context.Context, chatID int64, limit int) ([]Entry, error) {
	query := `
		SELECT u.id, u.telegram_id, COALESCE(u.username, ''), u.created_at,
		       cu.points, cu.weight,
		       ` + madeSubquery("u.id") + `,
		       ` + receivedSubquery("u.id") + `
		FROM chat_users cu
		JOIN users u ON u.id = cu.user_id
		WHERE cu.chat_id = $1
		ORDER BY cu.points DESC, u.id
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения лидерборда (chat_id=%d): %w", chatID, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var u users.User
		var s UserStats
		if err := rows.Scan(
			&u.ID, &u.TelegramID, &u.Username, &u.CreatedAt,
			&s.Points, &s.Weight, &s.RepostsMade, &s.RepostsReceived,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования лидерборда: %w", err)
		}
		entries = append(entries, Entry{Rank: len(entries) + 1, User: &u, Stats: s})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения лидерборда: %w", err)
	}
	return entries, nil
}
