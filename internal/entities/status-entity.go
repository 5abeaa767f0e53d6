package entities

import "time"

// OrderStatus - запись каталога статусов с флагами видимости и поведения.
type OrderStatus struct {
	ID                    uint64    `json:"id"`
	Name                  string    `json:"name"`
	Code                  string    `json:"code"`
	NotifyCustomer        bool      `json:"notify_customer"`
	VisibleToOperator     bool      `json:"visible_to_operator"`
	VisibleToCourier      bool      `json:"visible_to_courier"`
	VisibleToWaiter       bool      `json:"visible_to_waiter"`
	VisibleToChef         bool      `json:"visible_to_chef"`
	VisibleToBartender    bool      `json:"visible_to_bartender"`
	RequiresKitchenNotify bool      `json:"requires_kitchen_notify"`
	IsCompletedStatus     bool      `json:"is_completed_status"`
	IsCancelledStatus     bool      `json:"is_cancelled_status"`
	CreatedAt             time.Time `json:"created_at"`
}

// IsTerminal - заказ в этом статусе завершён или отменён.
func (s OrderStatus) IsTerminal() bool {
	return s.IsCompletedStatus || s.IsCancelledStatus
}

// VisibleTo сообщает, видит ли сотрудник с данной возможностью этот статус.
func (s OrderStatus) VisibleTo(c Capability) bool {
	flag, ok := statusVisibility[c]
	return ok && flag(s)
}
