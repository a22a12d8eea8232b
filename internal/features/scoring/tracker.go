// Package scoring: tracker.go проводит события через журналы постов и реакций.
// Каждое событие проходит одной транзакцией: либо пост/реакция записаны и очки переведены,
// либо не изменилось ничего.
package scoring

import (
	"context"
	"maps"
	"slices"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/db/postgres"
	"serotonyl.ru/repost-bot/internal/features/chats"
	"serotonyl.ru/repost-bot/internal/features/posts"
	"serotonyl.ru/repost-bot/internal/features/users"
)

// Tracker: учёт репостов.
type Tracker struct {
	db    postgres.DB
	chats *chats.Service
}

// NewTracker создаёт трекер.
func NewTracker(db postgres.DB, chatService *chats.Service) *Tracker {
	return &Tracker{db: db, chats: chatService}
}

// TrackedPost: результат постановки поста на учёт.
type TrackedPost struct {
	Post   *posts.Post
	Author *users.User
}

// ReactionResult: результат засчитанной реакции.
type ReactionResult struct {
	Post     *posts.Post
	Reaction *posts.Reaction
	Reactor  *users.User
	Transfer Transfer
}

// TrackMessage ставит сообщение на учёт, если в нём есть хэштег чата
// и оно пришло из нужной темы.
//
// Ожидаемые исходы (не сбои):
//   - common.ErrChatNotConfigured: чат не настроен;
//   - common.ErrNotTracked: сообщение не подходит;
//   - common.ErrAlreadyRecorded: повторная доставка того же сообщения.
func (t *Tracker) TrackMessage(ctx context.Context, ev MessageEvent) (*TrackedPost, error) {
	settings, err := t.chats.EffectiveSettings(ctx, ev.ChatID)
	if err != nil {
		return nil, err
	}
	if !settings.MatchesHashtag(ev.Body()) || !settings.AllowsTopic(ev.ThreadID) {
		return nil, common.ErrNotTracked
	}

	var topicID *int64
	if ev.ThreadID != 0 {
		topic := ev.ThreadID
		topicID = &topic
	}

	var tracked TrackedPost
	err = postgres.WithTx(ctx, t.db, func(tx pgx.Tx) error {
		author, _, err := users.NewService(tx).ResolveChatUser(ctx, ev.ChatID, ev.AuthorID, ev.AuthorUsername)
		if err != nil {
			return err
		}
		post, err := posts.NewRepository(tx).Create(ctx, ev.ChatID, ev.MessageID, author.ID, topicID)
		if err != nil {
			return err
		}
		tracked = TrackedPost{Post: post, Author: author}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id":    ev.ChatID,
		"message_id": ev.MessageID,
		"user_id":    ev.AuthorID,
	}).Info("Пост поставлен на учёт")
	return &tracked, nil
}

// ApplyReaction засчитывает реакцию-подтверждение и переводит очки.
// Перевод происходит ровно один раз на пару (пост, реактор): уникальность
// держит БД, повторы и гонки доставки дают common.ErrAlreadyRecorded.
//
// Ожидаемые исходы (не сбои): ErrChatNotConfigured, ErrNotTracked (не та реакция),
// ErrPostNotFound (сообщение не пост), ErrSelfReaction, ErrAlreadyRecorded.
func (t *Tracker) ApplyReaction(ctx context.Context, ev ReactionEvent) (*ReactionResult, error) {
	settings, err := t.chats.EffectiveSettings(ctx, ev.ChatID)
	if err != nil {
		return nil, err
	}
	if !ev.HasEmoji(settings.ReactionEmoji) {
		return nil, common.ErrNotTracked
	}

	var result ReactionResult
	err = postgres.WithTx(ctx, t.db, func(tx pgx.Tx) error {
		postRepo := posts.NewRepository(tx)
		userService := users.NewService(tx)

		post, err := postRepo.FindByMessage(ctx, ev.ChatID, ev.MessageID)
		if err != nil {
			return err
		}
		// до любых записей
		if post.Owner.TelegramID == ev.ReactorID {
			return common.ErrSelfReaction
		}

		reactor, err := userService.ResolveUser(ctx, ev.ReactorID, ev.ReactorUsername)
		if err != nil {
			return err
		}

		reaction, err := postRepo.TryAddReaction(ctx, post.ID, reactor.ID)
		if err != nil {
			return err
		}

		repo := userService.Repository()
		scores, err := repo.LockChatUsers(ctx, ev.ChatID, reactor.ID, post.UserID)
		if err != nil {
			return err
		}

		transfer := ComputeTransfer(scores[reactor.ID].Weight, scores[post.UserID].Weight)
		deltas := map[int64]float64{
			reactor.ID:  transfer.ReactorDelta,
			post.UserID: transfer.OwnerDelta,
		}
		// тот же порядок, что и у блокировок
		for _, userID := range slices.Sorted(maps.Keys(deltas)) {
			if err := repo.AddPoints(ctx, ev.ChatID, userID, deltas[userID]); err != nil {
				return err
			}
		}

		result = ReactionResult{Post: post, Reaction: reaction, Reactor: reactor, Transfer: transfer}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id":       ev.ChatID,
		"message_id":    ev.MessageID,
		"reactor_id":    ev.ReactorID,
		"owner_id":      result.Post.Owner.TelegramID,
		"reactor_delta": result.Transfer.ReactorDelta,
		"owner_delta":   result.Transfer.OwnerDelta,
	}).Info("Репост засчитан")
	return &result, nil
}
