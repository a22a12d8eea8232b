// Package common: errors.go определяет ошибки, которые используются во всех модулях бота.
// Ошибки делятся на ожидаемые исходы (чат не настроен, пост не найден, реакция уже учтена),
// которые обработчики гасят или превращают в понятный ответ, и всё остальное :
// сбои БД или Telegram, которые прерывают текущую единицу работы.
package common

import "errors"

// Ожидаемые исходы учёта репостов
var (
	// ErrChatNotConfigured: для чата не выполнен /setup, учёт здесь выключен
	ErrChatNotConfigured = errors.New("чат не настроен, выполните /setup")
	// ErrPostNotFound: реакция пришла на сообщение, которое не является постом
	ErrPostNotFound = errors.New("пост не найден")
	// ErrUserNotFound: пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrAlreadyRecorded: событие уже учтено (повторная доставка или повторная реакция)
	ErrAlreadyRecorded = errors.New("уже учтено")
	// ErrSelfReaction: реакция на собственный пост
	ErrSelfReaction = errors.New("нельзя засчитать репост самому себе")
	// ErrNotTracked: событие не подходит под учёт (нет хэштега, чужая тема, другая реакция)
	ErrNotTracked = errors.New("событие не подходит под учёт")
)

// Ошибки прав и валидации
var (
	// ErrNotAdmin: пользователь не является администратором чата
	ErrNotAdmin = errors.New("эта команда доступна только администраторам чата")
	// ErrNotGroupChat: команда имеет смысл только в группе
	ErrNotGroupChat = errors.New("команда работает только в группе")
	// ErrInvalidWeight: вес не число, не конечен или не положителен
	ErrInvalidWeight = errors.New("вес должен быть положительным числом")
	// ErrInvalidHashtag: хэштег пустой, без # или с пробелами
	ErrInvalidHashtag = errors.New("хэштег должен начинаться с # и не содержать пробелов (до 64 символов)")
	// ErrInvalidEmoji: пустая или слишком длинная реакция
	ErrInvalidEmoji = errors.New("реакция должна быть одним эмодзи")
)
