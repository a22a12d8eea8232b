// Package filters решает, какие апдейты доходят до учёта репостов.
// Учёт ведётся только в группах и только по сообщениям и реакциям живых людей.
package filters

import (
	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"
)

// Типы чатов, в которых ведётся учёт.
const (
	chatTypeGroup      = "group"
	chatTypeSupergroup = "supergroup"
)

// ChatFilter отсекает апдейты, которые не могут участвовать в учёте.
type ChatFilter struct{}

// NewChatFilter создаёт фильтр.
func NewChatFilter() *ChatFilter {
	return &ChatFilter{}
}

// IsGroup: групповой чат (обычная группа или супергруппа с темами).
func IsGroup(chat telego.Chat) bool {
	return chat.Type == chatTypeGroup || chat.Type == chatTypeSupergroup
}

// AllowMessage пропускает сообщения людей в группах.
func (f *ChatFilter) AllowMessage(message *telego.Message) bool {
	if message == nil {
		return false
	}

	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
		"chat_type": message.Chat.Type,
	})

	if message.From == nil {
		logger.Debug("deny: nil message.From (service/channel message?)")
		return false
	}
	if message.From.IsBot {
		logger.WithField("user_id", message.From.ID).Debug("deny: message from bot")
		return false
	}
	if !IsGroup(message.Chat) {
		logger.Debug("deny: not a group")
		return false
	}
	return true
}

// AllowReaction пропускает реакции людей в группах.
// Анонимные реакции (от имени чата) не засчитываются: их автора не отличить от владельца поста.
func (f *ChatFilter) AllowReaction(reaction *telego.MessageReactionUpdated) bool {
	if reaction == nil {
		return false
	}

	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   reaction.Chat.ID,
		"chat_type": reaction.Chat.Type,
	})

	if reaction.User == nil {
		logger.Debug("deny: anonymous reaction")
		return false
	}
	if reaction.User.IsBot {
		logger.WithField("user_id", reaction.User.ID).Debug("deny: reaction from bot")
		return false
	}
	if !IsGroup(reaction.Chat) {
		logger.Debug("deny: not a group")
		return false
	}
	return true
}
