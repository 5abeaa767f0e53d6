package notifications

import (
	"fmt"
	"strings"

	"restaurant-system/internal/entities"
	"restaurant-system/pkg/telegram"
)

var esc = telegram.EscapeHTML

func transitionLogText(t Transition) string {
	oldName := "—"
	if t.OldStatus != nil {
		oldName = t.OldStatus.Name
	}
	return fmt.Sprintf("🔄 Замовлення <b>#%d</b>: %s → <b>%s</b>\n👤 %s",
		t.Order.ID, esc(oldName), esc(t.NewStatus.Name), esc(t.Actor.Description))
}

func orderCardText(order entities.Order, status entities.OrderStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 <b>Замовлення #%d</b> (%s)\n", order.ID, order.OrderType.Title())
	fmt.Fprintf(&b, "Статус: <b>%s</b>\n", esc(status.Name))
	if order.TableName != "" {
		fmt.Fprintf(&b, "Стіл: %s\n", esc(order.TableName))
	}
	if order.CustomerName != "" {
		fmt.Fprintf(&b, "Клієнт: %s\n", esc(order.CustomerName))
	}
	if order.Phone != "" {
		fmt.Fprintf(&b, "Телефон: %s\n", esc(order.Phone))
	}
	if order.IsDelivery() && order.Address != "" {
		fmt.Fprintf(&b, "Адреса: %s\n", esc(order.Address))
	}
	if order.DeliveryTime != "" {
		fmt.Fprintf(&b, "Час: %s\n", esc(order.DeliveryTime))
	}
	b.WriteString("\n")
	b.WriteString(lineList(order.LineItems()))
	fmt.Fprintf(&b, "\n<b>Сума: %s грн</b>", order.TotalPrice.StringFixed(2))
	return b.String()
}

func lineList(items []entities.LineItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "• %s x %d\n", esc(item.Name), item.Quantity)
	}
	return b.String()
}

func ticketText(order entities.Order, area entities.PrepArea, items []entities.LineItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | <b>Замовлення #%d</b>\n", area.Title(), order.ID)
	fmt.Fprintf(&b, "%s", order.OrderType.Title())
	if order.TableName != "" {
		fmt.Fprintf(&b, ", стіл %s", esc(order.TableName))
	}
	b.WriteString("\n\n")
	b.WriteString(lineList(items))
	return b.String()
}

func readyText(order entities.Order, tail string) string {
	text := fmt.Sprintf("✅ Замовлення <b>#%d</b> готове!", order.ID)
	if order.TableName != "" {
		text += fmt.Sprintf("\nСтіл: %s", esc(order.TableName))
	}
	return text + "\n" + tail
}

func readyRepeatedText(order entities.Order, area entities.PrepArea) string {
	return fmt.Sprintf("✅ %s: частина замовлення <b>#%d</b> теж готова.", area.Title(), order.ID)
}

func statusUpdateText(order entities.Order, status entities.OrderStatus, actor entities.Actor) string {
	return fmt.Sprintf("ℹ️ Замовлення <b>#%d</b>: новий статус <b>%s</b>\n👤 %s",
		order.ID, esc(status.Name), esc(actor.Description))
}

func customerText(order entities.Order, status entities.OrderStatus) string {
	return fmt.Sprintf("Ваше замовлення #%d: статус змінено на «%s».", order.ID, esc(status.Name))
}

func tableOrderText(order entities.Order) string {
	return fmt.Sprintf("🍽 Нове замовлення <b>#%d</b> за столиком <b>%s</b>\n\n%s\n<b>Сума: %s грн</b>",
		order.ID, esc(order.TableName), lineList(order.LineItems()), order.TotalPrice.StringFixed(2))
}

func waiterAcceptedText(order entities.Order, waiter entities.Employee) string {
	return fmt.Sprintf("👌 Замовлення <b>#%d</b> (стіл %s) прийняв(ла) %s.",
		order.ID, esc(order.TableName), esc(waiter.FullName))
}

func courierAssignedText(order entities.Order, status entities.OrderStatus) string {
	return "🛵 Вам призначено замовлення.\n\n" + orderCardText(order, status)
}

func courierAssignedLogText(order entities.Order, courier entities.Employee) string {
	return fmt.Sprintf("🛵 Замовлення <b>#%d</b>: призначено кур'єра %s.", order.ID, esc(courier.FullName))
}

// CallKind - тип виклику з меню столика.
type CallKind string

const (
	CallWaiter  CallKind = "call_waiter"
	RequestBill CallKind = "request_bill"
)

var billMethodTitles = map[string]string{
	"cash": "готівка",
	"card": "картка",
}

func tableCallText(table entities.Table, kind CallKind, billMethod string) string {
	if kind == RequestBill {
		method, ok := billMethodTitles[billMethod]
		if !ok {
			method = billMethod
		}
		return fmt.Sprintf("💳 Стіл <b>%s</b> просить рахунок (%s).", esc(table.Name), esc(method))
	}
	return fmt.Sprintf("🔔 Стіл <b>%s</b> викликає офіціанта.", esc(table.Name))
}

// statusButtons - кнопки перехода в статусы, видимые данной роли, кроме текущего.
func statusButtons(orderID uint64, current uint64, statuses []entities.OrderStatus, viewer entities.Capability) [][]telegram.InlineKeyboardButton {
	var rows [][]telegram.InlineKeyboardButton
	var row []telegram.InlineKeyboardButton
	for _, s := range statuses {
		if s.ID == current || !s.VisibleTo(viewer) {
			continue
		}
		row = append(row, telegram.InlineKeyboardButton{Text: s.Name, CallbackData: StatusCallback(orderID, s.ID)})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
