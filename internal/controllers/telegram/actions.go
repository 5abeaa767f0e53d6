package telegram

import (
	"context"
	"fmt"
	"strings"

	"restaurant-system/internal/entities"
	"restaurant-system/internal/notifications"
	tgapi "restaurant-system/pkg/telegram"

	"go.uber.org/zap"
)

type callbackHandler func(c *StaffBotController, ctx context.Context, actor callbackActor, cb notifications.Callback, query *tgapi.CallbackQuery) (string, error)

// callbackActor - кто нажал кнопку: сотрудник или администратор в операционном чате.
type callbackActor struct {
	employee *entities.Employee
	admin    entities.Actor
}

var callbackHandlers = map[string]callbackHandler{
	notifications.ActionSetStatus: (*StaffBotController).onSetStatus,
	notifications.ActionReady:     (*StaffBotController).onReady,
	notifications.ActionAccept:    (*StaffBotController).onAccept,
}

func (c *StaffBotController) handleCallback(ctx context.Context, query *tgapi.CallbackQuery) {
	answer := func(text string) {
		if err := c.bot.AnswerCallbackQuery(ctx, query.ID, text); err != nil {
			c.logger.Warn("Не удалось ответить на callback", zap.Error(err))
		}
	}

	cb, err := notifications.ParseCallback(query.Data)
	if err != nil {
		c.logger.Warn("Неизвестный callback", zap.String("data", query.Data), zap.Error(err))
		answer("Кнопка застаріла.")
		return
	}

	actor, ok, err := c.resolveActor(ctx, query)
	if err != nil {
		c.logger.Error("Не удалось определить автора нажатия", zap.Error(err))
		answer("Внутрішня помилка.")
		return
	}
	if !ok {
		answer("Ви не авторизовані. Натисніть /start")
		return
	}

	text, err := callbackHandlers[cb.Action](c, ctx, actor, cb, query)
	if err != nil {
		if userText, known := userMessage(err); known {
			answer(userText)
			return
		}
		c.logger.Error("Ошибка обработки callback",
			zap.String("data", query.Data),
			zap.Int64("userID", query.From.ID),
			zap.Error(err),
		)
		answer("Внутрішня помилка.")
		return
	}
	answer(text)
}

// resolveActor: сотрудник по чату; в операционном чате незнакомый пользователь - администратор.
func (c *StaffBotController) resolveActor(ctx context.Context, query *tgapi.CallbackQuery) (callbackActor, bool, error) {
	employee, err := c.employees.FindByChat(ctx, query.From.ID)
	if err == nil {
		return callbackActor{employee: employee}, true, nil
	}
	if _, known := userMessage(err); !known {
		return callbackActor{}, false, err
	}
	if query.Message != nil && c.cfg.AdminChatID != 0 && query.Message.Chat.ID == c.cfg.AdminChatID {
		name := strings.TrimSpace(query.From.FirstName)
		if query.From.Username != "" {
			name = fmt.Sprintf("%s (@%s)", name, query.From.Username)
		}
		return callbackActor{admin: entities.SystemActor("Адміністратор: " + name)}, true, nil
	}
	return callbackActor{}, false, nil
}

func (c *StaffBotController) onSetStatus(ctx context.Context, actor callbackActor, cb notifications.Callback, _ *tgapi.CallbackQuery) (string, error) {
	var err error
	if actor.employee != nil {
		_, err = c.orders.ChangeStatusByEmployee(ctx, cb.OrderID, cb.StatusID, *actor.employee)
	} else {
		_, err = c.orders.ChangeStatus(ctx, cb.OrderID, cb.StatusID, actor.admin)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Статус замовлення #%d змінено.", cb.OrderID), nil
}

func (c *StaffBotController) onReady(ctx context.Context, actor callbackActor, cb notifications.Callback, _ *tgapi.CallbackQuery) (string, error) {
	if actor.employee == nil {
		return "⛔ Ця дія недоступна для вашої ролі.", nil
	}
	_, repeated, err := c.orders.AcknowledgeReady(ctx, cb.OrderID, cb.Area, *actor.employee)
	if err != nil {
		return "", err
	}
	if repeated {
		return fmt.Sprintf("✅ %s: замовлення #%d вже було готове, офіціанту повідомлено.", cb.Area.Title(), cb.OrderID), nil
	}
	return fmt.Sprintf("✅ Замовлення #%d готове.", cb.OrderID), nil
}

func (c *StaffBotController) onAccept(ctx context.Context, actor callbackActor, cb notifications.Callback, query *tgapi.CallbackQuery) (string, error) {
	if actor.employee == nil {
		return "⛔ Ця дія недоступна для вашої ролі.", nil
	}
	if _, err := c.orders.AcceptByWaiter(ctx, cb.OrderID, *actor.employee); err != nil {
		return "", err
	}
	c.closeAcceptCard(ctx, query.Message, actor.employee.FullName)
	return fmt.Sprintf("🙋 Замовлення #%d ваше.", cb.OrderID), nil
}

// closeAcceptCard убирает кнопку "Прийняти" с карточки и дописывает, кто взял заказ.
func (c *StaffBotController) closeAcceptCard(ctx context.Context, card *tgapi.Message, waiterName string) {
	if card == nil || card.MessageID == 0 {
		return
	}
	text := tgapi.EscapeHTML(card.Text) + "\n\n✅ Прийняв: <b>" + tgapi.EscapeHTML(waiterName) + "</b>"
	if err := c.bot.EditMessageText(ctx, card.Chat.ID, card.MessageID, text, tgapi.WithHTML()); err != nil {
		c.logger.Warn("Не удалось обновить карточку заказа", zap.Int("messageID", card.MessageID), zap.Error(err))
	}
}
