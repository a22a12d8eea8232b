// Package bot: updates.go переводит апдейты Telegram в события учёта и команды.
package bot

import (
	"strings"

	"github.com/mymmrac/telego"

	"serotonyl.ru/repost-bot/internal/common"
	"serotonyl.ru/repost-bot/internal/features/scoring"
)

// messageEvent собирает событие «новое сообщение».
func messageEvent(message *telego.Message) scoring.MessageEvent {
	ev := scoring.MessageEvent{
		ChatID:    message.Chat.ID,
		MessageID: int64(message.MessageID),
		Text:      message.Text,
		Caption:   message.Caption,
	}
	// message_thread_id у обычной группы приходит и для ответов, тема: только при IsTopicMessage
	if message.IsTopicMessage {
		ev.ThreadID = int64(message.MessageThreadID)
	}
	if message.From != nil {
		ev.AuthorID = message.From.ID
		ev.AuthorUsername = message.From.Username
	}
	return ev
}

// reactionEvent собирает событие «новые реакции».
func reactionEvent(reaction *telego.MessageReactionUpdated) scoring.ReactionEvent {
	ev := scoring.ReactionEvent{
		ChatID:    reaction.Chat.ID,
		MessageID: int64(reaction.MessageID),
		Emojis:    reactionEmojis(reaction.NewReaction),
	}
	if reaction.User != nil {
		ev.ReactorID = reaction.User.ID
		ev.ReactorUsername = reaction.User.Username
	}
	return ev
}

// reactionEmojis оставляет только обычные эмодзи: кастомные и платные реакции не считаются.
func reactionEmojis(reactions []telego.ReactionType) []string {
	var out []string
	for _, r := range reactions {
		if emoji, ok := r.(*telego.ReactionTypeEmoji); ok && emoji.Emoji != "" {
			out = append(out, emoji.Emoji)
		}
	}
	return out
}

// newCommand собирает команду вместе с контекстом сообщения.
func newCommand(message *telego.Message, name string, args []string) common.Command {
	cmd := common.Command{
		Name:      name,
		Args:      args,
		ChatID:    message.Chat.ID,
		ChatTitle: message.Chat.Title,
		IsPrivate: message.Chat.Type == "private",
		MessageID: message.MessageID,
	}
	if message.IsTopicMessage {
		cmd.ThreadID = int64(message.MessageThreadID)
	}
	if message.From != nil {
		cmd.UserID = message.From.ID
		cmd.Username = message.From.Username
	}
	return cmd
}

// CommandParser разбирает команды вида /name@bot arg1 arg2.
type CommandParser struct {
	validPrefixes []string
	botUsername   string
}

// NewCommandParser создаёт парсер. botUsername нужен, чтобы отличать
// свои команды от команд других ботов в той же группе.
func NewCommandParser(botUsername string) *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"/"},
		botUsername:   strings.ToLower(botUsername),
	}
}

// ParseCommand разбирает текст на команду и аргументы.
// Команда, адресованная другому боту (/stats@other_bot), не считается командой.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	if !hasPrefix {
		return "", nil, false
	}

	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	if name, target, found := strings.Cut(command, "@"); found {
		if p.botUsername != "" && target != p.botUsername {
			return "", nil, false
		}
		command = name
	}
	if command == "" {
		return "", nil, false
	}

	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	return command, args, true
}
