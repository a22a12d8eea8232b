package common

import "context"

// Sender отправляет ответы в Telegram. Реализуется bot.Gateway,
// в тестах подменяется фейком.
type Sender interface {
	// SendText отправляет сообщение в чат (или в личку, если chatID: id пользователя).
	SendText(ctx context.Context, chatID int64, text string) error
	// ReplyText отвечает на конкретное сообщение.
	ReplyText(ctx context.Context, chatID int64, replyTo int, text string) error
	// DeleteMessage удаляет сообщение (нужны права администратора у бота).
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}
