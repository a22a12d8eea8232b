// Package stats: service.go отдаёт статистику и форматирует её для ответов.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/db/postgres"
	"serotonyl.ru/repost-bot/internal/features/users"
)

// Service отвечает на запросы статистики.
type Service struct {
	repo  *Repository
	users *users.Service
	limit int
}

// NewService создаёт сервис. limit: размер лидерборда.
func NewService(db postgres.Querier, limit int) *Service {
	return &Service{
		repo:  NewRepository(db),
		users: users.NewService(db),
		limit: limit,
	}
}

// UserStats: статистика пользователя (внутренний ID) в чате.
func (s *Service) UserStats(ctx context.Context, chatID, userID int64) (*UserStats, error) {
	return s.repo.UserStats(ctx, chatID, userID)
}

// StatsForTelegramUser: статистика по Telegram ID. Пользователь, которого бот
// ещё не видел, получает нулевую статистику, а не ошибку.
func (s *Service) StatsForTelegramUser(ctx context.Context, chatID, telegramID int64) (*UserStats, error) {
	user, err := s.users.Repository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return &UserStats{Points: users.DefaultPoints, Weight: users.DefaultWeight}, nil
		}
		return nil, err
	}
	return s.repo.UserStats(ctx, chatID, user.ID)
}

// Leaderboard: топ участников чата по очкам.
func (s *Service) Leaderboard(ctx context.Context, chatID int64) ([]Entry, error) {
	return s.repo.Leaderboard(ctx, chatID, s.limit)
}

// FormatUserStats: ответ на /stats.
func FormatUserStats(title string, st *UserStats) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "📊 Статистика в «%s»\n\n", title)
	} else {
		b.WriteString("📊 Твоя статистика\n\n")
	}
	fmt.Fprintf(&b, "🔁 Сделано: %s\n", common.FormatReposts(st.RepostsMade))
	fmt.Fprintf(&b, "📥 Получено: %s\n", common.FormatReposts(st.RepostsReceived))
	fmt.Fprintf(&b, "⭐ Очки: %s\n", common.FormatPoints(st.Points))
	fmt.Fprintf(&b, "⚖️ Вес: %s", common.FormatWeight(st.Weight))
	return b.String()
}

// FormatAuthorStats: публичный ответ на новый пост.
func FormatAuthorStats(name string, st *UserStats) string {
	return fmt.Sprintf("%s, пост на учёте ✅\nСделано: %s · Получено: %s · Очки: %s",
		name,
		common.FormatReposts(st.RepostsMade),
		common.FormatReposts(st.RepostsReceived),
		common.FormatPoints(st.Points),
	)
}

// FormatLeaderboard: ответ на /leaderboard.
func FormatLeaderboard(title string, entries []Entry) string {
	if len(entries) == 0 {
		return "🏆 В лидерборде пока никого нет"
	}

	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "🏆 Лидерборд «%s» (топ-%d)\n\n", title, len(entries))
	} else {
		fmt.Fprintf(&b, "🏆 Лидерборд (топ-%d)\n\n", len(entries))
	}
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s: %s (сделано %d, получено %d)",
			medal(e.Rank), e.User.DisplayName(), common.FormatPoints(e.Stats.Points),
			e.Stats.RepostsMade, e.Stats.RepostsReceived)
	}
	return b.String()
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}
