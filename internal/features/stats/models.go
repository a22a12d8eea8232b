// Package stats: запросы только на чтение: статистика пользователя и лидерборд чата.
// Всё считается в рамках одного чата.
package stats

import "serotonyl.ru/repost-bot/internal/features/users"

// UserStats: статистика пользователя в чате.
type UserStats struct {
	RepostsMade     int64   // Засчитанные реакции на чужие посты
	RepostsReceived int64   // Засчитанные реакции других на свои посты
	Points          float64 // 0, если записи очков ещё нет
	Weight          float64 // 1, если записи очков ещё нет
}

// Entry: строка лидерборда.
type Entry struct {
	Rank  int
	User  *users.User
	Stats UserStats
}
