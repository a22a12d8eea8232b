// Package users: handlers.go обрабатывает /setweight @username вес.
// Подтверждение уходит админу в личку, команда в группе удаляется.
package users

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/repost-bot/internal/common"
)

const setWeightUsage = "❌ Формат: /setweight @username вес\nНапример: /setweight @john 1.5"

// Authorizer пропускает команды настройки только админам настроенного чата.
// Отказ он сообщает в чат сам.
type Authorizer interface {
	Authorize(ctx context.Context, cmd common.Command) bool
}

// Handler обрабатывает команды реестра пользователей.
type Handler struct {
	service *Service
	auth    Authorizer
	sender  common.Sender
}

// NewHandler создаёт обработчик.
func NewHandler(service *Service, auth Authorizer, sender common.Sender) *Handler {
	return &Handler{service: service, auth: auth, sender: sender}
}

// HandleSetWeight: /setweight @username 1.5. Вес действует на будущие реакции в этом чате.
func (h *Handler) HandleSetWeight(ctx context.Context, cmd common.Command) {
	if !h.auth.Authorize(ctx, cmd) {
		return
	}

	if len(cmd.Args) < 2 || common.NormalizeUsername(cmd.Arg(0)) == "" {
		h.respond(ctx, cmd, setWeightUsage)
		return
	}
	weight, err := ParseWeight(cmd.Arg(1))
	if err != nil {
		h.respond(ctx, cmd, "❌ "+common.ErrInvalidWeight.Error()+"\n\n"+setWeightUsage)
		return
	}

	user, err := h.service.SetWeight(ctx, cmd.ChatID, cmd.Arg(0), weight)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUserNotFound):
			h.respond(ctx, cmd, fmt.Sprintf("❌ Пользователь %s не найден. Он должен хотя бы раз написать в чат",
				common.DisplayName(cmd.Arg(0), 0)))
		case errors.Is(err, common.ErrInvalidWeight):
			h.respond(ctx, cmd, "❌ "+err.Error())
		default:
			log.WithError(err).WithField("chat_id", cmd.ChatID).Error("Ошибка установки веса")
			h.respond(ctx, cmd, "❌ Ошибка установки веса")
		}
		return
	}

	h.respond(ctx, cmd, fmt.Sprintf("✅ Вес %s: %s", user.DisplayName(), common.FormatWeight(weight)))
}

func (h *Handler) respond(ctx context.Context, cmd common.Command, text string) {
	common.ReplyPrivately(ctx, h.sender, cmd, text, "")
}
