// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, форматирование очков и имён пользователей.
package common

import (
	"fmt"
	"strings"
)

// Pluralize выбирает форму слова для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → one (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → few (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → many (0, 5-20, 25-30, 100, ...)
func Pluralize(n int64, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	lastDigit := n % 10
	lastTwoDigits := n % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// PluralizeReposts возвращает правильную форму слова «репост» для числа n.
//
// Примеры:
//
//	PluralizeReposts(1)  → "репост"
//	PluralizeReposts(3)  → "репоста"
//	PluralizeReposts(11) → "репостов"
func PluralizeReposts(n int64) string {
	return Pluralize(n, "репост", "репоста", "репостов")
}

// FormatReposts создаёт строку вида "3 репоста".
func FormatReposts(n int64) string {
	return fmt.Sprintf("%s %s", FormatNumber(n), PluralizeReposts(n))
}

// DisplayName возвращает отображаемое имя пользователя.
// Если есть @username: возвращает его, иначе: "User <telegram id>".
func DisplayName(username string, telegramID int64) string {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username != "" {
		return "@" + username
	}
	return fmt.Sprintf("User %d", telegramID)
}

// NormalizeUsername убирает @ и пробелы: "@John " → "John".
func NormalizeUsername(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "@")
}
