package notifications

import (
	"context"

	"restaurant-system/internal/entities"
	"restaurant-system/pkg/telegram"

	"go.uber.org/zap"
)

// ProductionRouter делит заказ по цехам и отправляет каждому цеху только его позиции.
type ProductionRouter struct {
	roster Roster
	areas  AreaLookup
	logger *zap.Logger
}

func NewProductionRouter(roster Roster, areas AreaLookup, logger *zap.Logger) *ProductionRouter {
	return &ProductionRouter{roster: roster, areas: areas, logger: logger}
}

// Split группирует позиции по цехам. Блюда без настроенного цеха идут на кухню.
func (p *ProductionRouter) Split(ctx context.Context, items []entities.LineItem) map[entities.PrepArea][]entities.LineItem {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	areaByName, err := p.areas.AreasByProductNames(ctx, names)
	if err != nil {
		p.logger.Error("Не удалось определить цеха блюд, всё уходит на кухню", zap.Error(err))
		areaByName = nil
	}

	split := make(map[entities.PrepArea][]entities.LineItem)
	for _, item := range items {
		area, ok := areaByName[item.Name]
		if !ok || !area.Valid() {
			area = entities.AreaKitchen
		}
		split[area] = append(split[area], item)
	}
	return split
}

// Tickets строит тикеты для всех сотрудников на смене в каждом цехе, где есть позиции.
func (p *ProductionRouter) Tickets(ctx context.Context, order entities.Order) []Message {
	items := order.LineItems()
	if len(items) == 0 {
		return nil
	}
	split := p.Split(ctx, items)

	var plan []Message
	for _, area := range entities.PrepAreas {
		areaItems := split[area]
		if len(areaItems) == 0 {
			continue
		}
		capability, _ := entities.CapabilityForArea(area)
		staff, err := p.roster.OnShift(ctx, capability)
		if err != nil {
			p.logger.Error("Не удалось получить персонал цеха",
				zap.String("area", string(area)), zap.Uint64("orderID", order.ID), zap.Error(err))
			continue
		}
		var recipients []entities.Employee
		for _, e := range reachable(staff) {
			if e.Role.Has(capability) {
				recipients = append(recipients, e)
			}
		}
		if len(recipients) == 0 {
			p.logger.Warn("В цехе нет сотрудников на смене, тикет не отправлен",
				zap.String("area", string(area)), zap.Uint64("orderID", order.ID))
			continue
		}

		text := ticketText(order, area, areaItems)
		button := [][]telegram.InlineKeyboardButton{{{Text: "✅ Готово", CallbackData: ReadyCallback(area, order.ID)}}}
		for _, e := range recipients {
			plan = append(plan, Message{
				Channel:    ChannelStaff,
				ChatID:     e.TelegramUserID,
				EmployeeID: e.ID,
				Kind:       KindProductionTicket,
				OrderID:    order.ID,
				Area:       area,
				Text:       text,
				Buttons:    button,
			})
		}
	}
	return plan
}
