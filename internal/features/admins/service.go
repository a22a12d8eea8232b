// Package admins: service.go содержит гибридную проверку прав администратора.
package admins

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/db/postgres"
)

// Service отвечает на вопрос «может ли пользователь настраивать учёт в этом чате».
type Service struct {
	db       postgres.DB
	repo     *Repository
	platform Platform
}

// NewService создаёт сервис прав.
func NewService(db postgres.DB, platform Platform) *Service {
	return &Service{
		db:       db,
		repo:     NewRepository(db),
		platform: platform,
	}
}

// IsAdmin: гибридная проверка:
//   - быстрый путь: кэш в БД;
//   - промах: живой запрос к Telegram, и если пользователь админ,
//     полная пересинхронизация кэша чата.
//
// Вызывающему всё равно, какой путь дал ответ.
func (s *Service) IsAdmin(ctx context.Context, chatID, userID int64) (bool, error) {
	cached, err := s.repo.Exists(ctx, chatID, userID)
	if err != nil {
		return false, err
	}
	if cached {
		return true, nil
	}

	live, err := s.IsLiveAdmin(ctx, chatID, userID)
	if err != nil {
		return false, err
	}
	if !live {
		return false, nil
	}

	log.WithFields(log.Fields{
		"chat_id": chatID,
		"user_id": userID,
	}).Info("Промах кэша админов, пересинхронизируем")

	if _, err := s.SyncAdmins(ctx, chatID); err != nil {
		return false, err
	}
	return true, nil
}

// IsLiveAdmin проверяет права напрямую в Telegram, минуя кэш.
// Нужен для /setup: записи чата и кэша ещё нет.
func (s *Service) IsLiveAdmin(ctx context.Context, chatID, userID int64) (bool, error) {
	ok, err := s.platform.IsChatAdmin(ctx, chatID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки прав в Telegram: %w", err)
	}
	return ok, nil
}

// SyncAdmins заменяет кэш админов чата текущим списком из Telegram.
// Это перезапись, а не слияние: снятые админы теряют права сразу.
func (s *Service) SyncAdmins(ctx context.Context, chatID int64) ([]int64, error) {
	ids, err := s.platform.ChatAdminIDs(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения админов из Telegram: %w", err)
	}

	err = postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		return NewRepository(tx).ReplaceAll(ctx, chatID, ids)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id": chatID,
		"admins":  len(ids),
	}).Info("Кэш админов синхронизирован")
	return ids, nil
}

// CachedAdmins возвращает закэшированный список.
func (s *Service) CachedAdmins(ctx context.Context, chatID int64) ([]int64, error) {
	return s.repo.List(ctx, chatID)
}
