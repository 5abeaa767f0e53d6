package notifications

import (
	"context"

	"restaurant-system/internal/entities"
	"restaurant-system/pkg/telegram"
)

// Channel - через какого бота уходит сообщение.
type Channel string

const (
	ChannelStaff    Channel = "staff"
	ChannelCustomer Channel = "customer"
)

// Kind - назначение сообщения, для логов, дашборда и тестов.
type Kind string

const (
	KindTransitionLog    Kind = "transition_log"
	KindProductionTicket Kind = "production_ticket"
	KindReady            Kind = "ready"
	KindReadyRepeated    Kind = "ready_repeated"
	KindCourierUpdate    Kind = "courier_update"
	KindWaiterUpdate     Kind = "waiter_update"
	KindCustomerUpdate   Kind = "customer_update"
	KindNewOrder         Kind = "new_order"
	KindTableOrder       Kind = "table_order"
	KindWaiterAccepted   Kind = "waiter_accepted"
	KindCourierAssigned  Kind = "courier_assigned"
	KindTableCall        Kind = "table_call"
)

// Message - одно сообщение одному получателю.
type Message struct {
	Channel    Channel
	ChatID     int64
	EmployeeID uint64
	Kind       Kind
	OrderID    uint64
	Area       entities.PrepArea
	Text       string
	Buttons    [][]telegram.InlineKeyboardButton
}

// Sender доставляет сообщение в свой канал.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// DeliveryReport - итог рассылки. Вызывающий код его только логирует.
type DeliveryReport struct {
	Planned   int
	Delivered int
	Failed    int
}

// Roster - состав персонала. Возвращает всех подходящих, фильтр по смене делает диспетчер.
type Roster interface {
	OnShift(ctx context.Context, capability entities.Capability) ([]entities.Employee, error)
	FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error)
	TableWaiters(ctx context.Context, tableID uint64) ([]entities.Employee, error)
}

// AreaLookup - цех приготовления для каждого названия блюда.
type AreaLookup interface {
	AreasByProductNames(ctx context.Context, names []string) (map[string]entities.PrepArea, error)
}

// StatusCatalog - каталог статусов для кнопок смены статуса.
type StatusCatalog interface {
	ListStatuses(ctx context.Context) ([]entities.OrderStatus, error)
}
