package listeners

import (
	"context"
	"fmt"

	"restaurant-system/internal/entities"
	"restaurant-system/internal/events"
	"restaurant-system/internal/notifications"
	"restaurant-system/pkg/eventbus"

	"go.uber.org/zap"
)

// NotificationDispatcher - то, что слушателю нужно от notifications.Dispatcher.
type NotificationDispatcher interface {
	OnOrderCreated(ctx context.Context, order entities.Order, status entities.OrderStatus) notifications.DeliveryReport
	OnStatusChange(ctx context.Context, t notifications.Transition) notifications.DeliveryReport
	OnReadyRepeated(ctx context.Context, order entities.Order, area entities.PrepArea) notifications.DeliveryReport
	OnWaiterAccepted(ctx context.Context, order entities.Order, waiter entities.Employee) notifications.DeliveryReport
	OnCourierAssigned(ctx context.Context, order entities.Order, status entities.OrderStatus, courier entities.Employee) notifications.DeliveryReport
}

// NotificationListener переводит события заказов в рассылки. Ошибки доставки
// только логируются: заказ к этому моменту уже сохранён.
type NotificationListener struct {
	dispatcher NotificationDispatcher
	logger     *zap.Logger
}

func NewNotificationListener(dispatcher NotificationDispatcher, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{dispatcher: dispatcher, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderCreatedName, l.handleOrderCreated)
	bus.Subscribe(events.StatusChangedName, l.handleStatusChanged)
	bus.Subscribe(events.ReadyRepeatedName, l.handleReadyRepeated)
	bus.Subscribe(events.WaiterAcceptedName, l.handleWaiterAccepted)
	bus.Subscribe(events.CourierAssignedName, l.handleCourierAssigned)
	l.logger.Info("NotificationListener подписан на события заказов")
}

func (l *NotificationListener) handleOrderCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderCreated)
	if !ok {
		return unexpected(event)
	}
	l.logReport(event, e.Order.ID, l.dispatcher.OnOrderCreated(ctx, e.Order, e.Status))
	return nil
}

func (l *NotificationListener) handleStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.StatusChanged)
	if !ok {
		return unexpected(event)
	}
	report := l.dispatcher.OnStatusChange(ctx, notifications.Transition{
		Order:     e.Order,
		OldStatus: e.OldStatus,
		NewStatus: e.NewStatus,
		Actor:     e.Actor,
	})
	l.logReport(event, e.Order.ID, report)
	return nil
}

func (l *NotificationListener) handleReadyRepeated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ReadyRepeated)
	if !ok {
		return unexpected(event)
	}
	l.logReport(event, e.Order.ID, l.dispatcher.OnReadyRepeated(ctx, e.Order, e.Area))
	return nil
}

func (l *NotificationListener) handleWaiterAccepted(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WaiterAccepted)
	if !ok {
		return unexpected(event)
	}
	l.logReport(event, e.Order.ID, l.dispatcher.OnWaiterAccepted(ctx, e.Order, e.Waiter))
	return nil
}

func (l *NotificationListener) handleCourierAssigned(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.CourierAssigned)
	if !ok {
		return unexpected(event)
	}
	l.logReport(event, e.Order.ID, l.dispatcher.OnCourierAssigned(ctx, e.Order, e.Status, e.Courier))
	return nil
}

func (l *NotificationListener) logReport(event eventbus.Event, orderID uint64, report notifications.DeliveryReport) {
	fields := []zap.Field{
		zap.String("event", event.Name()),
		zap.Uint64("orderID", orderID),
		zap.Int("planned", report.Planned),
		zap.Int("delivered", report.Delivered),
		zap.Int("failed", report.Failed),
	}
	if report.Failed > 0 {
		l.logger.Warn("Рассылка выполнена с ошибками", fields...)
		return
	}
	l.logger.Debug("Рассылка выполнена", fields...)
}

func unexpected(event eventbus.Event) error {
	return fmt.Errorf("неожиданный тип события %T для %s", event, event.Name())
}
