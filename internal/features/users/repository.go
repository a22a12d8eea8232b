// Package users: repository.go отвечает за операции с таблицами users и chat_users.
// Get-or-create реализован как атомарная условная вставка (ON CONFLICT) + чтение,
// а не «проверил: вставил», чтобы параллельные апдейты не создавали дублей.
package users

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/db/postgres"
)

const userColumns = `id, telegram_id, COALESCE(username, ''), created_at`

// Repository работает с users и chat_users.
type Repository struct {
	db postgres.Querier
}

// NewRepository создаёт репозиторий. db может быть пулом или транзакцией.
func NewRepository(db postgres.Querier) *Repository {
	return &Repository{db: db}
}

// Upsert возвращает пользователя по Telegram ID, создавая его при первом появлении.
// Непустой username перезаписывает сохранённый; пустой: не трогает.
func (r *Repository) Upsert(ctx context.Context, telegramID int64, username string) (*User, error) {
	query := `
		INSERT INTO users (telegram_id, username)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = COALESCE(EXCLUDED.username, users.username),
		    updated_at = NOW()
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query, telegramID, username))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания/обновления пользователя (telegram_id=%d): %w", telegramID, err)
	}
	return u, nil
}

// GetByTelegramID: если не найден: common.ErrUserNotFound.
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя (telegram_id=%d): %w", telegramID, err)
	}
	return u, nil
}

// GetByUsername ищет по @username без учёта регистра.
// Если handle совпал у нескольких записей (старые имена после переименования),
// выигрывает точное совпадение, затем самая свежая запись.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1) ` +
		`ORDER BY (username = $1) DESC, updated_at DESC, id DESC LIMIT 1`
	u, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя (username=%s): %w", username, err)
	}
	return u, nil
}

// EnsureChatUser создаёт запись очков в чате (points=0, weight=1), если её нет,
// и возвращает актуальное состояние.
func (r *Repository) EnsureChatUser(ctx context.Context, chatID, userID int64) (*ChatUser, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO chat_users (chat_id, user_id, points, weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id, user_id) DO NOTHING
	`, chatID, userID, DefaultPoints, DefaultWeight)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания записи очков: %w", err)
	}
	return r.GetChatUser(ctx, chatID, userID)
}

// LockChatUsers создаёт недостающие записи очков и блокирует их до конца
// транзакции. Блокировки берутся по возрастанию user_id: две встречные
// реакции (A на пост B и B на пост A) ждут друг друга, а не взаимоблокируются.
func (r *Repository) LockChatUsers(ctx context.Context, chatID int64, userIDs ...int64) (map[int64]*ChatUser, error) {
	ids := slices.Clone(userIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	_, err := r.db.Exec(ctx, `
		INSERT INTO chat_users (chat_id, user_id, points, weight)
		SELECT $1, uid, $3, $4 FROM unnest($2::bigint[]) AS uid ORDER BY uid
		ON CONFLICT (chat_id, user_id) DO NOTHING
	`, chatID, ids, DefaultPoints, DefaultWeight)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания записей очков: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT chat_id, user_id, points, weight
		FROM chat_users
		WHERE chat_id = $1 AND user_id = ANY($2)
		ORDER BY user_id
		FOR UPDATE
	`, chatID, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка блокировки записей очков: %w", err)
	}
	defer rows.Close()

	locked := make(map[int64]*ChatUser, len(ids))
	for rows.Next() {
		var cu ChatUser
		if err := rows.Scan(&cu.ChatID, &cu.UserID, &cu.Points, &cu.Weight); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи очков: %w", err)
		}
		locked[cu.UserID] = &cu
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения записей очков: %w", err)
	}
	if len(locked) != len(ids) {
		return nil, fmt.Errorf("блокировка очков: найдено %d записей из %d (chat_id=%d)", len(locked), len(ids), chatID)
	}
	return locked, nil
}

// GetChatUser: если записи нет: common.ErrUserNotFound.
func (r *Repository) GetChatUser(ctx context.Context, chatID, userID int64) (*ChatUser, error) {
	query := `
		SELECT chat_id, user_id, points, weight
		FROM chat_users
		WHERE chat_id = $1 AND user_id = $2
	`
	var cu ChatUser
	err := r.db.QueryRow(ctx, query, chatID, userID).Scan(&cu.ChatID, &cu.UserID, &cu.Points, &cu.Weight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения очков (chat_id=%d, user_id=%d): %w", chatID, userID, err)
	}
	return &cu, nil
}

// AddPoints атомарно прибавляет delta к очкам (delta может быть отрицательной).
func (r *Repository) AddPoints(ctx context.Context, chatID, userID int64, delta float64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE chat_users
		SET points = points + $3, updated_at = NOW()
		WHERE chat_id = $1 AND user_id = $2
	`, chatID, userID, delta)
	if err != nil {
		return fmt.Errorf("ошибка начисления очков: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("начисление очков: нет записи (chat_id=%d, user_id=%d)", chatID, userID)
	}
	return nil
}

// SetWeight выставляет вес, создавая запись очков при необходимости.
// Проверку weight > 0 делает сервис; CHECK в схеме: последняя линия.
func (r *Repository) SetWeight(ctx context.Context, chatID, userID int64, weight float64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO chat_users (chat_id, user_id, points, weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id, user_id) DO UPDATE
		SET weight = EXCLUDED.weight, updated_at = NOW()
	`, chatID, userID, DefaultPoints, weight)
	if err != nil {
		return fmt.Errorf("ошибка установки веса: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
