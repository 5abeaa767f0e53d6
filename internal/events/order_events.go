package events

import (
	"strconv"

	"restaurant-system/internal/entities"
)

const (
	OrderCreatedName    = "order.created"
	StatusChangedName   = "order.status.changed"
	ReadyRepeatedName   = "order.ready.repeated"
	WaiterAcceptedName  = "order.waiter.accepted"
	CourierAssignedName = "order.courier.assigned"
)

// события одного заказа доходят до слушателей в порядке публикации
func orderKey(id uint64) string { return "order:" + strconv.FormatUint(id, 10) }

// OrderCreated - заказ и первая запись истории зафиксированы.
type OrderCreated struct {
	Order  entities.Order
	Status entities.OrderStatus
}

func (e OrderCreated) Name() string        { return OrderCreatedName }
func (e OrderCreated) OrderingKey() string { return orderKey(e.Order.ID) }

// StatusChanged публикуется только после коммита транзакции смены статуса.
type StatusChanged struct {
	Order     entities.Order
	OldStatus *entities.OrderStatus
	NewStatus entities.OrderStatus
	Actor     entities.Actor
}

func (e StatusChanged) Name() string        { return StatusChangedName }
func (e StatusChanged) OrderingKey() string { return orderKey(e.Order.ID) }

// ReadyRepeated - ещё один цех отметил готовность, статус уже READY.
type ReadyRepeated struct {
	Order entities.Order
	Area  entities.PrepArea
}

func (e ReadyRepeated) Name() string        { return ReadyRepeatedName }
func (e ReadyRepeated) OrderingKey() string { return orderKey(e.Order.ID) }

type WaiterAccepted struct {
	Order  entities.Order
	Waiter entities.Employee
}

func (e WaiterAccepted) Name() string        { return WaiterAcceptedName }
func (e WaiterAccepted) OrderingKey() string { return orderKey(e.Order.ID) }

type CourierAssigned struct {
	Order   entities.Order
	Status  entities.OrderStatus
	Courier entities.Employee
}

func (e CourierAssigned) Name() string        { return CourierAssignedName }
func (e CourierAssigned) OrderingKey() string { return orderKey(e.Order.ID) }
