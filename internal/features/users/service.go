// Package users: service.go содержит логику реестра пользователей.
package users

import (
	"context"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/db/postgres"
)

// Service управляет пользователями и их очками в чатах.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис. db может быть пулом или транзакцией:
// внутри единицы работы трекер создаёт сервис поверх pgx.Tx.
func NewService(db postgres.Querier) *Service {
	return &Service{repo: NewRepository(db)}
}

// Repository даёт доступ к репозиторию (начисления делает движок очков).
func (s *Service) Repository() *Repository {
	return s.repo
}

// ResolveUser возвращает пользователя по Telegram ID, создавая его при первом появлении
// и обновляя username, если он изменился.
func (s *Service) ResolveUser(ctx context.Context, telegramID int64, username string) (*User, error) {
	return s.repo.Upsert(ctx, telegramID, common.NormalizeUsername(username))
}

// ResolveChatUser дополнительно гарантирует запись очков в чате (points=0, weight=1).
func (s *Service) ResolveChatUser(ctx context.Context, chatID, telegramID int64, username string) (*User, *ChatUser, error) {
	user, err := s.ResolveUser(ctx, telegramID, username)
	if err != nil {
		return nil, nil, err
	}
	chatUser, err := s.repo.EnsureChatUser(ctx, chatID, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, chatUser, nil
}

// FindByUsername ищет пользователя по @username (с @ или без).
func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	clean := common.NormalizeUsername(username)
	if clean == "" {
		return nil, common.ErrUserNotFound
	}
	return s.repo.GetByUsername(ctx, clean)
}

// SetWeight меняет вес пользователя в чате. Действует только на будущие реакции:
// уже начисленные очки не пересчитываются.
func (s *Service) SetWeight(ctx context.Context, chatID int64, username string, weight float64) (*User, error) {
	if err := ValidateWeight(weight); err != nil {
		return nil, err
	}
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetWeight(ctx, chatID, user.ID, weight); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id": chatID,
		"user_id": user.TelegramID,
		"weight":  weight,
	}).Info("Вес пользователя изменён")
	return user, nil
}

// ParseWeight разбирает вес из аргумента команды ("1.5" или "1,5").
func ParseWeight(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, common.ErrInvalidWeight
	}
	if err := ValidateWeight(weight); err != nil {
		return 0, err
	}
	return weight, nil
}

// ValidateWeight: вес должен быть конечным числом строго больше нуля.
func ValidateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return common.ErrInvalidWeight
	}
	return nil
}
