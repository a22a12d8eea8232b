// Package admins: repository.go работает с таблицей chat_admins.
package admins

import (
	"context"
	"fmt"

	"serotonyl.ru/repost-bot/internal/db/postgres"
)

// Repository работает с кэшем администраторов.
type Repository struct {
	db postgres.Querier
}

// NewRepository создаёт репозиторий.
func NewRepository(db postgres.Querier) *Repository {
	return &Repository{db: db}
}

// Exists проверяет, есть ли пара (чат, пользователь) в кэше.
func (r *Repository) Exists(ctx context.Context, chatID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM chat_admins WHERE chat_id = $1 AND telegram_user_id = $2
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, chatID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки кэша админов: %w", err)
	}
	return exists, nil
}

// ReplaceAll полностью заменяет кэш админов чата: удаляет всё и вставляет новый список.
// Вызывать внутри транзакции, иначе между DELETE и INSERT кэш будет пустым.
func (r *Repository) ReplaceAll(ctx context.Context, chatID int64, userIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM chat_admins WHERE chat_id = $1`, chatID); err != nil {
		return fmt.Errorf("ошибка очистки кэша админов: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO chat_admins (chat_id, telegram_user_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT (chat_id, telegram_user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, chatID, userIDs); err != nil {
		return fmt.Errorf("ошибка записи кэша админов: %w", err)
	}
	return nil
}

// List возвращает закэшированных админов чата.
func (r *Repository) List(ctx context.Context, chatID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT telegram_user_id FROM chat_admins WHERE chat_id = $1 ORDER BY telegram_user_id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса админов: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}
