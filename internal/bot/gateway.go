// Package bot: gateway.go обёртка над Telegram Bot API (telego).
// Реализует common.Sender (ответы) и admins.Platform (права в чате).
package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Статусы участника, дающие права на настройку учёта.
const (
	statusCreator       = "creator"
	statusAdministrator = "administrator"
)

// Gateway: доступ к Telegram для сервисов.
type Gateway struct {
	api *telego.Bot
}

// NewGateway создаёт шлюз.
func NewGateway(api *telego.Bot) *Gateway {
	return &Gateway{api: api}
}

// SendText отправляет сообщение в чат или в личку.
func (g *Gateway) SendText(ctx context.Context, chatID int64, text string) error {
	if _, err := g.api.SendMessage(ctx, tu.Message(tu.ID(chatID), text)); err != nil {
		return fmt.Errorf("sendMessage (chat_id=%d): %w", chatID, err)
	}
	return nil
}

// ReplyText отвечает на сообщение. Если его уже удалили: отправляет просто в чат.
func (g *Gateway) ReplyText(ctx context.Context, chatID int64, replyTo int, text string) error {
	params := tu.Message(tu.ID(chatID), text)
	if replyTo != 0 {
		params.ReplyParameters = &telego.ReplyParameters{
			MessageID:                replyTo,
			AllowSendingWithoutReply: true,
		}
	}
	if _, err := g.api.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("sendMessage (chat_id=%d, reply_to=%d): %w", chatID, replyTo, err)
	}
	return nil
}

// DeleteMessage удаляет сообщение.
func (g *Gateway) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	err := g.api.DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    tu.ID(chatID),
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("deleteMessage (chat_id=%d, message_id=%d): %w", chatID, messageID, err)
	}
	return nil
}

// IsChatAdmin: живая проверка через getChatMember.
func (g *Gateway) IsChatAdmin(ctx context.Context, chatID, userID int64) (bool, error) {
	member, err := g.api.GetChatMember(ctx, &telego.GetChatMemberParams{
		ChatID: tu.ID(chatID),
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("getChatMember (chat_id=%d, user_id=%d): %w", chatID, userID, err)
	}
	return isAdminStatus(member.MemberStatus()), nil
}

// ChatAdminIDs: текущий список админов (getChatAdministrators). Боты пропускаются.
func (g *Gateway) ChatAdminIDs(ctx context.Context, chatID int64) ([]int64, error) {
	members, err := g.api.GetChatAdministrators(ctx, &telego.GetChatAdministratorsParams{
		ChatID: tu.ID(chatID),
	})
	if err != nil {
		return nil, fmt.Errorf("getChatAdministrators (chat_id=%d): %w", chatID, err)
	}
	return adminIDs(members), nil
}

func isAdminStatus(status string) bool {
	return status == statusCreator || status == statusAdministrator
}

func adminIDs(members []telego.ChatMember) []int64 {
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		if !isAdminStatus(m.MemberStatus()) {
			continue
		}
		user := m.MemberUser()
		if user.IsBot {
			continue
		}
		ids = append(ids, user.ID)
	}
	return ids
}
