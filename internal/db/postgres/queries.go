// Package postgres: queries.go содержит версионированные миграции схемы.
// Миграции применяются последовательно по номеру, каждая в своей транзакции,
// номер применённой версии пишется в schema_migrations.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// Migration: одна версия схемы.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrate создаёт schema_migrations (если её нет) и применяет все
// ещё не применённые миграции по порядку.
// Возвращает количество применённых в этот раз версий.
func Migrate(ctx context.Context, db DB, migrations []Migration) (int, error) {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания таблицы миграций: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		done, err := ExecMigrationSQL(ctx, db, m.Version, m.SQL)
		if err != nil {
			return applied, fmt.Errorf("миграция %d (%s): %w", m.Version, m.Name, err)
		}
		if done {
			applied++
			log.WithFields(log.Fields{
				"version": m.Version,
				"name":    m.Name,
			}).Info("Миграция применена")
		}
	}
	return applied, nil
}

// ExecMigrationSQL выполняет один SQL-запрос миграции в транзакции.
// Если запрос упадёт: транзакция откатится автоматически.
// Возвращает false, если версия уже была применена раньше.
func ExecMigrationSQL(ctx context.Context, db DB, version int, sql string) (bool, error) {
	applied := false
	err := WithTx(ctx, db, func(tx pgx.Tx) error {
		// Проверяем, не была ли эта миграция уже применена
		var exists bool
		err := tx.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("ошибка проверки миграции: %w", err)
		}
		if exists {
			return nil
		}

		if _, err := tx.Exec(ctx, sql); err != nil {
			return fmt.Errorf("ошибка выполнения миграции %d: %w", version, err)
		}

		if _, err := tx.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)", version,
		); err != nil {
			return fmt.Errorf("ошибка записи версии миграции: %w", err)
		}
		applied = true
		return nil
	})
	return applied, err
}
