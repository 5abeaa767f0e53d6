package notifications

import (
	"context"
	"time"

	"restaurant-system/pkg/telegram"

	"go.uber.org/zap"
)

// TelegramSender отправляет сообщения через одного бота.
type TelegramSender struct {
	bot telegram.ServiceInterface
}

func NewTelegramSender(bot telegram.ServiceInterface) *TelegramSender {
	return &TelegramSender{bot: bot}
}

func (s *TelegramSender) Send(ctx context.Context, msg Message) error {
	opts := []telegram.MessageOption{telegram.WithHTML()}
	if len(msg.Buttons) > 0 {
		opts = append(opts, telegram.WithKeyboard(msg.Buttons))
	}
	return s.bot.SendMessageEx(ctx, msg.ChatID, msg.Text, opts...)
}

// Broadcaster - дашборд администраторов (websocket hub).
type Broadcaster interface {
	Broadcast(payload interface{}, messageType string) error
}

// DashboardPayload - копия уведомления для дашборда.
type DashboardPayload struct {
	Kind       Kind      `json:"kind"`
	OrderID    uint64    `json:"order_id,omitempty"`
	EmployeeID uint64    `json:"employee_id,omitempty"`
	ChatID     int64     `json:"chat_id"`
	Area       string    `json:"area,omitempty"`
	Text       string    `json:"text"`
	Delivered  bool      `json:"delivered"`
	SentAt     time.Time `json:"sent_at"`
}

// MirrorSender отправляет через основной канал и дублирует результат на дашборд.
type MirrorSender struct {
	primary Sender
	mirror  Broadcaster
	logger  *zap.Logger
}

func NewMirrorSender(primary Sender, mirror Broadcaster, logger *zap.Logger) *MirrorSender {
	return &MirrorSender{primary: primary, mirror: mirror, logger: logger}
}

func (s *MirrorSender) Send(ctx context.Context, msg Message) error {
	err := s.primary.Send(ctx, msg)

	payload := DashboardPayload{
		Kind:       msg.Kind,
		OrderID:    msg.OrderID,
		EmployeeID: msg.EmployeeID,
		ChatID:     msg.ChatID,
		Area:       string(msg.Area),
		Text:       msg.Text,
		Delivered:  err == nil,
		SentAt:     time.Now().UTC(),
	}
	if mirrorErr := s.mirror.Broadcast(payload, "notification"); mirrorErr != nil {
		s.logger.Warn("Не удалось отправить уведомление на дашборд", zap.Error(mirrorErr))
	}
	return err
}
