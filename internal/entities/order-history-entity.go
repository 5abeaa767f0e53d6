package entities

import "time"

// OrderStatusHistory - запись журнала смены статусов. Только добавляется.
type OrderStatusHistory struct {
	ID         uint64    `json:"id"`
	OrderID    uint64    `json:"order_id"`
	StatusID   uint64    `json:"status_id"`
	StatusName string    `json:"status_name"`
	ActorInfo  string    `json:"actor_info"`
	CreatedAt  time.Time `json:"created_at"`
}
