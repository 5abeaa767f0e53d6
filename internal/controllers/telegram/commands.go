package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-system/internal/entities"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"
	tgapi "restaurant-system/pkg/telegram"

	"go.uber.org/zap"
)

const (
	btnStartShift = "▶️ Почати зміну"
	btnEndShift   = "⏹ Завершити зміну"
	btnLogout     = "🚪 Вийти"
	btnSendPhone  = "📱 Надіслати номер"
)

type textHandler func(c *StaffBotController, ctx context.Context, msg *tgapi.Message) error

// Кнопки меню смены.
var menuHandlers = map[string]textHandler{
	"/start":      (*StaffBotController).handleStart,
	btnStartShift: (*StaffBotController).handleStartShift,
	btnEndShift:   (*StaffBotController).handleEndShift,
	btnLogout:     (*StaffBotController).handleLogout,
}

func (c *StaffBotController) handleMessage(ctx context.Context, msg *tgapi.Message) {
	text := strings.TrimSpace(msg.Text)

	var err error
	switch handler, ok := menuHandlers[text]; {
	case ok:
		err = handler(c, ctx, msg)
	case msg.Contact != nil:
		err = c.handlePhone(ctx, msg, msg.Contact.PhoneNumber)
	default:
		if capability, isRole := entities.CapabilityByTitle(text); isRole {
			err = c.handleRoleChoice(ctx, msg.Chat.ID, capability)
		} else {
			err = c.handlePhone(ctx, msg, text)
		}
	}

	if err != nil {
		c.logger.Error("Ошибка обработки сообщения бота", zap.Int64("chatID", msg.Chat.ID), zap.Error(err))
		c.send(ctx, msg.Chat.ID, "❌ Внутрішня помилка. Спробуйте пізніше.")
	}
}

func (c *StaffBotController) handleStart(ctx context.Context, msg *tgapi.Message) error {
	employee, err := c.employees.FindByChat(ctx, msg.Chat.ID)
	if err == nil {
		c.sendShiftMenu(ctx, msg.Chat.ID, fmt.Sprintf("👋 Вітаємо, %s!", tgapi.EscapeHTML(employee.FullName)), employee.IsOnShift)
		return nil
	}
	if !errors.Is(err, apperrors.ErrTelegramNotLinked) {
		return err
	}
	_ = c.cache.Del(ctx, stateKey(msg.Chat.ID))
	c.sendRoleChoice(ctx, msg.Chat.ID)
	return nil
}

// handleRoleChoice запоминает выбранную роль до ввода телефона.
func (c *StaffBotController) handleRoleChoice(ctx context.Context, chatID int64, capability entities.Capability) error {
	if err := c.cache.Set(ctx, stateKey(chatID), string(capability), stateExpiration); err != nil {
		return err
	}
	c.send(ctx, chatID,
		fmt.Sprintf("Роль: <b>%s</b>\nНадішліть свій номер телефону кнопкою нижче або введіть його.", capability.Title()),
		tgapi.WithReplyKeyboard([][]tgapi.ReplyKeyboardButton{{{Text: btnSendPhone, RequestContact: true}}}),
	)
	return nil
}

func (c *StaffBotController) handlePhone(ctx context.Context, msg *tgapi.Message, phone string) error {
	chatID := msg.Chat.ID
	raw, err := c.cache.Get(ctx, stateKey(chatID))
	if errors.Is(err, repositories.ErrCacheMiss) {
		c.send(ctx, chatID, "Не зрозумів. Натисніть /start")
		return nil
	}
	if err != nil {
		return err
	}
	capability := entities.Capability(raw)
	if !capability.Valid() {
		_ = c.cache.Del(ctx, stateKey(chatID))
		c.sendRoleChoice(ctx, chatID)
		return nil
	}

	// Чужой контакт не принимаем.
	if msg.Contact != nil && msg.Contact.UserID != 0 && msg.Contact.UserID != msg.From.ID {
		c.send(ctx, chatID, "⚠️ Надішліть власний номер телефону.")
		return nil
	}

	employee, err := c.employees.Login(ctx, chatID, phone, capability)
	if err != nil {
		if text, ok := userMessage(err); ok {
			c.send(ctx, chatID, text)
			return nil
		}
		return err
	}

	_ = c.cache.Del(ctx, stateKey(chatID))
	c.sendShiftMenu(ctx, chatID,
		fmt.Sprintf("✅ Ви увійшли як <b>%s</b> (%s).", tgapi.EscapeHTML(employee.FullName), tgapi.EscapeHTML(employee.Role.Name)),
		employee.IsOnShift)
	return nil
}

func (c *StaffBotController) handleStartShift(ctx context.Context, msg *tgapi.Message) error {
	employee, err := c.employees.StartShift(ctx, msg.Chat.ID)
	if err != nil {
		return c.replyError(ctx, msg.Chat.ID, err)
	}
	c.sendShiftMenu(ctx, msg.Chat.ID, "🟢 Зміну розпочато. Ви будете отримувати замовлення.", employee.IsOnShift)
	return nil
}

func (c *StaffBotController) handleEndShift(ctx context.Context, msg *tgapi.Message) error {
	employee, err := c.employees.EndShift(ctx, msg.Chat.ID)
	if err != nil {
		return c.replyError(ctx, msg.Chat.ID, err)
	}
	c.sendShiftMenu(ctx, msg.Chat.ID, "🔴 Зміну завершено.", employee.IsOnShift)
	return nil
}

func (c *StaffBotController) handleLogout(ctx context.Context, msg *tgapi.Message) error {
	if err := c.employees.Logout(ctx, msg.Chat.ID); err != nil {
		return c.replyError(ctx, msg.Chat.ID, err)
	}
	c.send(ctx, msg.Chat.ID, "👋 Ви вийшли. Щоб увійти знову, натисніть /start", tgapi.WithRemoveKeyboard())
	return nil
}

func (c *StaffBotController) replyError(ctx context.Context, chatID int64, err error) error {
	if text, ok := userMessage(err); ok {
		c.send(ctx, chatID, text)
		return nil
	}
	return err
}

func (c *StaffBotController) sendRoleChoice(ctx context.Context, chatID int64) {
	var rows [][]tgapi.ReplyKeyboardButton
	for _, capability := range entities.AllCapabilities {
		rows = append(rows, []tgapi.ReplyKeyboardButton{{Text: capability.Title()}})
	}
	c.send(ctx, chatID, "Оберіть вашу роль:", tgapi.WithReplyKeyboard(rows))
}

func (c *StaffBotController) sendShiftMenu(ctx context.Context, chatID int64, text string, onShift bool) {
	shiftButton := btnStartShift
	if onShift {
		shiftButton = btnEndShift
	}
	c.send(ctx, chatID, text, tgapi.WithReplyKeyboard([][]tgapi.ReplyKeyboardButton{
		{{Text: shiftButton}},
		{{Text: btnLogout}},
	}))
}

// Ответы пользователю на ожидаемые ошибки. Остальное - внутренняя ошибка.
var errorTexts = []struct {
	err  error
	text string
}{
	{apperrors.ErrTelegramNotLinked, "Ви не авторизовані. Натисніть /start"},
	{apperrors.ErrWrongRole, "⛔ Ця дія недоступна для вашої ролі."},
	{apperrors.ErrNotOnShift, "⏸ Спочатку розпочніть зміну."},
	{apperrors.ErrAlreadyAccepted, "Це замовлення вже прийняв інший офіціант."},
	{apperrors.ErrStatusUnchanged, "Замовлення вже має цей статус."},
	{apperrors.ErrNotFound, "Не знайдено. Перевірте дані."},
	{apperrors.ErrConflict, "Замовлення вже закрите."},
}

func userMessage(err error) (string, bool) {
	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return "⚠️ Невірні дані: " + tgapi.EscapeHTML(inputErr.Message), true
	}
	for _, item := range errorTexts {
		if errors.Is(err, item.err) {
			return item.text, true
		}
	}
	return "", false
}
