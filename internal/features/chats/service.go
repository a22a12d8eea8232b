// Package chats: service.go содержит бизнес-логику настроек чата.
package chats

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/common"
)

// Service управляет настройками чатов.
// Дефолты передаются явно при создании: никаких глобальных синглтонов.
type Service struct {
	repo     *Repository
	defaults Defaults
}

// NewService создаёт сервис настроек.
func NewService(repo *Repository, defaults Defaults) *Service {
	return &Service{repo: repo, defaults: defaults}
}

// Defaults возвращает процессные значения по умолчанию.
func (s *Service) Defaults() Defaults {
	return s.defaults
}

// EffectiveSettings возвращает эффективные настройки учёта для чата:
// каждое поле: переопределение чата, если оно задано, иначе дефолт.
// Для ненастроенного чата возвращает common.ErrChatNotConfigured.
func (s *Service) EffectiveSettings(ctx context.Context, chatID int64) (Settings, error) {
	chat, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return Settings{}, err
	}
	return s.Resolve(chat), nil
}

// Resolve накладывает переопределения чата на дефолты. Поля независимы.
func (s *Service) Resolve(chat *Chat) Settings {
	settings := Settings{
		Hashtag:       s.defaults.Hashtag,
		ReactionEmoji: s.defaults.ReactionEmoji,
		TopicID:       chat.TopicID,
	}
	if chat.Hashtag != "" {
		settings.Hashtag = chat.Hashtag
	}
	if chat.ReactionEmoji != "" {
		settings.ReactionEmoji = chat.ReactionEmoji
	}
	return settings
}

// Get возвращает запись чата.
func (s *Service) Get(ctx context.Context, chatID int64) (*Chat, error) {
	return s.repo.Get(ctx, chatID)
}

// Setup регистрирует чат (или обновляет название/тему уже настроенного).
// Права проверяет вызывающий: на этом этапе кэша админов ещё нет.
func (s *Service) Setup(ctx context.Context, chatID int64, title string, topicID *int64) (*Chat, error) {
	chat, err := s.repo.Upsert(ctx, chatID, title, topicID)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"chat_id": chatID,
		"title":   title,
	}).Info("Чат настроен")
	return chat, nil
}

// SetTopic ограничивает учёт одной темой форума.
func (s *Service) SetTopic(ctx context.Context, chatID, topicID int64) error {
	return s.repo.SetTopic(ctx, chatID, &topicID)
}

// ClearTopic снимает ограничение по теме.
func (s *Service) ClearTopic(ctx context.Context, chatID int64) error {
	return s.repo.SetTopic(ctx, chatID, nil)
}

// SetHashtag переопределяет хэштег чата. Пустое значение сбрасывает к дефолту.
// Возвращает хэштег, который теперь действует.
func (s *Service) SetHashtag(ctx context.Context, chatID int64, hashtag string) (string, error) {
	hashtag = strings.TrimSpace(hashtag)
	if hashtag != "" {
		if err := common.ValidateHashtag(hashtag); err != nil {
			return "", err
		}
	}
	if err := s.repo.SetHashtag(ctx, chatID, hashtag); err != nil {
		return "", err
	}
	if hashtag == "" {
		return s.defaults.Hashtag, nil
	}
	return hashtag, nil
}

// SetReactionEmoji переопределяет реакцию-подтверждение. Пустое значение сбрасывает к дефолту.
func (s *Service) SetReactionEmoji(ctx context.Context, chatID int64, emoji string) (string, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji != "" {
		if err := common.ValidateEmoji(emoji); err != nil {
			return "", err
		}
	}
	if err := s.repo.SetReactionEmoji(ctx, chatID, emoji); err != nil {
		return "", err
	}
	if emoji == "" {
		return s.defaults.ReactionEmoji, nil
	}
	return emoji, nil
}
