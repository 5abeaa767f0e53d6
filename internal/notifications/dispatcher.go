package notifications

import (
	"context"

	"restaurant-system/internal/entities"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/telegram"

	"go.uber.org/zap"
)

// Config - параметры диспетчера, передаются из pkg/config.
type Config struct {
	AdminChatID     int64
	ReadyStatusCode string
}

// Transition - смена статуса заказа. OldStatus = nil для нового заказа.
type Transition struct {
	Order     entities.Order
	OldStatus *entities.OrderStatus
	NewStatus entities.OrderStatus
	Actor     entities.Actor
}

// Dispatcher решает, кому и что отправить при событиях заказа, и отправляет.
type Dispatcher struct {
	cfg        Config
	roster     Roster
	catalog    StatusCatalog
	production *ProductionRouter
	senders    map[Channel]Sender
	logger     *zap.Logger
}

// NewDispatcher собирает диспетчер. customer может быть nil: клиентский бот не настроен.
func NewDispatcher(
	cfg Config,
	roster Roster,
	areas AreaLookup,
	catalog StatusCatalog,
	staff Sender,
	customer Sender,
	logger *zap.Logger,
) *Dispatcher {
	senders := map[Channel]Sender{ChannelStaff: staff}
	if customer != nil {
		senders[ChannelCustomer] = customer
	}
	return &Dispatcher{
		cfg:        cfg,
		roster:     roster,
		catalog:    catalog,
		production: NewProductionRouter(roster, areas, logger),
		senders:    senders,
		logger:     logger,
	}
}

// OnStatusChange - рассылка после смены статуса. Статус уже зафиксирован в БД.
func (d *Dispatcher) OnStatusChange(ctx context.Context, t Transition) DeliveryReport {
	return d.Deliver(ctx, d.PlanStatusChange(ctx, t))
}

// PlanStatusChange применяет правила по порядку и возвращает список сообщений.
func (d *Dispatcher) PlanStatusChange(ctx context.Context, t Transition) []Message {
	var plan []Message

	// 1. Журнал в операционный чат.
	plan = append(plan, d.adminMessage(KindTransitionLog, t.Order.ID, transitionLogText(t), nil)...)

	// 2. Тикеты в цеха.
	if t.NewStatus.RequiresKitchenNotify {
		plan = append(plan, d.production.Tickets(ctx, t.Order)...)
	}

	// 3. Готово: официант и/или курьер, иначе операторы.
	ready := d.isReady(t.NewStatus)
	if ready {
		plan = append(plan, d.readyMessages(ctx, t.Order)...)
	}

	// 4. Курьер.
	if !ready && t.Order.CourierID != nil && t.NewStatus.VisibleToCourier {
		if courier := d.reachableEmployee(ctx, *t.Order.CourierID); courier != nil && !t.Actor.Is(courier.ID) {
			plan = append(plan, Message{
				Channel:    ChannelStaff,
				ChatID:     courier.TelegramUserID,
				EmployeeID: courier.ID,
				Kind:       KindCourierUpdate,
				OrderID:    t.Order.ID,
				Text:       statusUpdateText(t.Order, t.NewStatus, t.Actor),
				Buttons:    d.statusButtons(ctx, t.Order.ID, t.NewStatus.ID, entities.CapabilityBeAssigned),
			})
		}
	}

	// 5. Официант, принявший заказ (не доставка).
	if !ready && !t.Order.IsDelivery() && t.Order.AcceptedByWaiterID != nil && t.NewStatus.VisibleToWaiter {
		if waiter := d.reachableEmployee(ctx, *t.Order.AcceptedByWaiterID); waiter != nil && !t.Actor.Is(waiter.ID) {
			plan = append(plan, Message{
				Channel:    ChannelStaff,
				ChatID:     waiter.TelegramUserID,
				EmployeeID: waiter.ID,
				Kind:       KindWaiterUpdate,
				OrderID:    t.Order.ID,
				Text:       statusUpdateText(t.Order, t.NewStatus, t.Actor),
				Buttons:    d.statusButtons(ctx, t.Order.ID, t.NewStatus.ID, entities.CapabilityServeTables),
			})
		}
	}

	// 6. Клиент.
	if t.NewStatus.NotifyCustomer && t.Order.CustomerChatID != 0 {
		if _, ok := d.senders[ChannelCustomer]; ok {
			plan = append(plan, Message{
				Channel: ChannelCustomer,
				ChatID:  t.Order.CustomerChatID,
				Kind:    KindCustomerUpdate,
				OrderID: t.Order.ID,
				Text:    customerText(t.Order, t.NewStatus),
			})
		}
	}

	return plan
}

// OnReadyRepeated - повторное "готово" от другого цеха: статус не меняется, сообщаем тем же получателям.
func (d *Dispatcher) OnReadyRepeated(ctx context.Context, order entities.Order, area entities.PrepArea) DeliveryReport {
	recipients := d.readyRecipients(ctx, order)
	plan := make([]Message, 0, len(recipients))
	for _, r := range recipients {
		plan = append(plan, Message{
			Channel:    ChannelStaff,
			ChatID:     r.TelegramUserID,
			EmployeeID: r.ID,
			Kind:       KindReadyRepeated,
			OrderID:    order.ID,
			Area:       area,
			Text:       readyRepeatedText(order, area),
		})
	}
	return d.Deliver(ctx, plan)
}

// OnOrderCreated - карточка нового заказа администратору, операторам и официантам столика.
func (d *Dispatcher) OnOrderCreated(ctx context.Context, order entities.Order, status entities.OrderStatus) DeliveryReport {
	buttons := d.statusButtons(ctx, order.ID, status.ID, entities.CapabilityManageOrders)
	text := orderCardText(order, status)

	plan := d.adminMessage(KindNewOrder, order.ID, text, buttons)
	seen := map[int64]bool{d.cfg.AdminChatID: true}

	operators, err := d.roster.OnShift(ctx, entities.CapabilityManageOrders)
	if err != nil {
		d.logger.Error("Не удалось получить операторов на смене", zap.Uint64("orderID", order.ID), zap.Error(err))
	}
	for _, op := range reachable(operators) {
		if seen[op.TelegramUserID] {
			continue
		}
		seen[op.TelegramUserID] = true
		plan = append(plan, Message{
			Channel:    ChannelStaff,
			ChatID:     op.TelegramUserID,
			EmployeeID: op.ID,
			Kind:       KindNewOrder,
			OrderID:    order.ID,
			Text:       text,
			Buttons:    buttons,
		})
	}

	if order.OrderType == entities.OrderTypeInHouse && order.TableID != nil {
		accept := [][]telegram.InlineKeyboardButton{{{Text: "🙋 Прийняти", CallbackData: AcceptCallback(order.ID)}}}
		for _, w := range d.tableWaiters(ctx, *order.TableID) {
			plan = append(plan, Message{
				Channel:    ChannelStaff,
				ChatID:     w.TelegramUserID,
				EmployeeID: w.ID,
				Kind:       KindTableOrder,
				OrderID:    order.ID,
				Text:       tableOrderText(order),
				Buttons:    accept,
			})
		}
	}

	// заказ столика уходит в цеха сразу, не дожидаясь официанта
	if status.RequiresKitchenNotify || order.OrderType == entities.OrderTypeInHouse {
		plan = append(plan, d.production.Tickets(ctx, order)...)
	}

	return d.Deliver(ctx, plan)
}

// OnWaiterAccepted - остальные официанты столика и администратор узнают, кто взял заказ.
func (d *Dispatcher) OnWaiterAccepted(ctx context.Context, order entities.Order, waiter entities.Employee) DeliveryReport {
	text := waiterAcceptedText(order, waiter)
	plan := d.adminMessage(KindWaiterAccepted, order.ID, text, nil)
	if order.TableID != nil {
		for _, w := range d.tableWaiters(ctx, *order.TableID) {
			if w.ID == waiter.ID {
				continue
			}
			plan = append(plan, Message{
				Channel:    ChannelStaff,
				ChatID:     w.TelegramUserID,
				EmployeeID: w.ID,
				Kind:       KindWaiterAccepted,
				OrderID:    order.ID,
				Text:       text,
			})
		}
	}
	return d.Deliver(ctx, plan)
}

// OnCourierAssigned - курьер получает карточку заказа с кнопками своих статусов.
func (d *Dispatcher) OnCourierAssigned(ctx context.Context, order entities.Order, status entities.OrderStatus, courier entities.Employee) DeliveryReport {
	plan := d.adminMessage(KindCourierAssigned, order.ID, courierAssignedLogText(order, courier), nil)
	if courier.Reachable() {
		plan = append(plan, Message{
			Channel:    ChannelStaff,
			ChatID:     courier.TelegramUserID,
			EmployeeID: courier.ID,
			Kind:       KindCourierAssigned,
			OrderID:    order.ID,
			Text:       courierAssignedText(order, status),
			Buttons:    d.statusButtons(ctx, order.ID, status.ID, entities.CapabilityBeAssigned),
		})
	}
	return d.Deliver(ctx, plan)
}

// NotifyTableCall - вызов официанта или просьба о счёте. Если некому отправить - ErrNoRecipients.
func (d *Dispatcher) NotifyTableCall(ctx context.Context, table entities.Table, kind CallKind, billMethod string) (DeliveryReport, error) {
	text := tableCallText(table, kind, billMethod)

	var plan []Message
	for _, w := range d.tableWaiters(ctx, table.ID) {
		plan = append(plan, Message{
			Channel:    ChannelStaff,
			ChatID:     w.TelegramUserID,
			EmployeeID: w.ID,
			Kind:       KindTableCall,
			Text:       text,
		})
	}
	if len(plan) == 0 {
		plan = d.adminMessage(KindTableCall, 0, text, nil)
	}
	if len(plan) == 0 {
		return DeliveryReport{}, apperrors.ErrNoRecipients
	}
	return d.Deliver(ctx, plan), nil
}

// Deliver отправляет сообщения по очереди. Ошибка одного получателя не мешает остальным.
func (d *Dispatcher) Deliver(ctx context.Context, plan []Message) DeliveryReport {
	report := DeliveryReport{Planned: len(plan)}
	for _, msg := range plan {
		sender, ok := d.senders[msg.Channel]
		if !ok {
			report.Failed++
			d.logger.Warn("Канал уведомлений не настроен",
				zap.String("channel", string(msg.Channel)),
				zap.String("kind", string(msg.Kind)),
			)
			continue
		}
		if err := sender.Send(ctx, msg); err != nil {
			report.Failed++
			d.logger.Error("Не удалось доставить уведомление",
				zap.String("channel", string(msg.Channel)),
				zap.String("kind", string(msg.Kind)),
				zap.Int64("chatID", msg.ChatID),
				zap.Uint64("orderID", msg.OrderID),
				zap.Error(err),
			)
			continue
		}
		report.Delivered++
	}
	return report
}

func (d *Dispatcher) isReady(status entities.OrderStatus) bool {
	return d.cfg.ReadyStatusCode != "" && status.Code == d.cfg.ReadyStatusCode
}

func (d *Dispatcher) readyMessages(ctx context.Context, order entities.Order) []Message {
	recipients := d.readyRecipients(ctx, order)
	plan := make([]Message, 0, len(recipients))
	for _, r := range recipients {
		plan = append(plan, Message{
			Channel:    ChannelStaff,
			ChatID:     r.TelegramUserID,
			EmployeeID: r.ID,
			Kind:       KindReady,
			OrderID:    order.ID,
			Text:       readyText(order, readyTail(order, r)),
		})
	}
	return plan
}

// readyRecipients - официант и/или курьер заказа на смене, иначе все операторы на смене.
func (d *Dispatcher) readyRecipients(ctx context.Context, order entities.Order) []entities.Employee {
	var recipients []entities.Employee
	if order.AcceptedByWaiterID != nil {
		if w := d.reachableEmployee(ctx, *order.AcceptedByWaiterID); w != nil {
			recipients = append(recipients, *w)
		}
	}
	if order.CourierID != nil {
		if c := d.reachableEmployee(ctx, *order.CourierID); c != nil && (len(recipients) == 0 || recipients[0].ID != c.ID) {
			recipients = append(recipients, *c)
		}
	}
	if len(recipients) > 0 {
		return recipients
	}

	operators, err := d.roster.OnShift(ctx, entities.CapabilityManageOrders)
	if err != nil {
		d.logger.Error("Не удалось получить операторов на смене", zap.Uint64("orderID", order.ID), zap.Error(err))
		return nil
	}
	return reachable(operators)
}

func readyTail(order entities.Order, recipient entities.Employee) string {
	switch {
	case order.AcceptedByWaiterID != nil && *order.AcceptedByWaiterID == recipient.ID:
		return "Заберіть замовлення на видачі."
	case order.CourierID != nil && *order.CourierID == recipient.ID:
		return "Можна забирати на доставку."
	default:
		return "Офіціант чи кур'єр не на зміні, видайте замовлення."
	}
}

func (d *Dispatcher) reachableEmployee(ctx context.Context, id uint64) *entities.Employee {
	e, err := d.roster.FindEmployee(ctx, id)
	if err != nil {
		d.logger.Warn("Сотрудник для уведомления не найден", zap.Uint64("employeeID", id), zap.Error(err))
		return nil
	}
	if e == nil || !e.Reachable() {
		return nil
	}
	return e
}

func (d *Dispatcher) tableWaiters(ctx context.Context, tableID uint64) []entities.Employee {
	waiters, err := d.roster.TableWaiters(ctx, tableID)
	if err != nil {
		d.logger.Error("Не удалось получить официантов столика", zap.Uint64("tableID", tableID), zap.Error(err))
		return nil
	}
	var result []entities.Employee
	for _, w := range reachable(waiters) {
		if w.Role.Has(entities.CapabilityServeTables) {
			result = append(result, w)
		}
	}
	return result
}

func (d *Dispatcher) statusButtons(ctx context.Context, orderID, current uint64, viewer entities.Capability) [][]telegram.InlineKeyboardButton {
	if d.catalog == nil {
		return nil
	}
	statuses, err := d.catalog.ListStatuses(ctx)
	if err != nil {
		d.logger.Warn("Каталог статусов недоступен, сообщение без кнопок", zap.Error(err))
		return nil
	}
	return statusButtons(orderID, current, statuses, viewer)
}

func (d *Dispatcher) adminMessage(kind Kind, orderID uint64, text string, buttons [][]telegram.InlineKeyboardButton) []Message {
	if d.cfg.AdminChatID == 0 {
		return nil
	}
	return []Message{{
		Channel: ChannelStaff,
		ChatID:  d.cfg.AdminChatID,
		Kind:    kind,
		OrderID: orderID,
		Text:    text,
		Buttons: buttons,
	}}
}

func reachable(employees []entities.Employee) []entities.Employee {
	var result []entities.Employee
	for _, e := range employees {
		if e.Reachable() {
			result = append(result, e)
		}
	}
	return result
}
