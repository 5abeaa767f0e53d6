package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
	OrderTypeInHouse  OrderType = "in_house"
)

var orderTypeTitles = map[OrderType]string{
	OrderTypeDelivery: "🚚 Доставка",
	OrderTypePickup:   "🏃 Самовивіз",
	OrderTypeInHouse:  "🍽 В закладі",
}

func (t OrderType) Valid() bool {
	_, ok := orderTypeTitles[t]
	return ok
}

func (t OrderType) Title() string {
	if title, ok := orderTypeTitles[t]; ok {
		return title
	}
	return string(t)
}

type Order struct {
	ID                   uint64          `json:"id"`
	Products             string          `json:"products"`
	TotalPrice           decimal.Decimal `json:"total_price"`
	CustomerName         string          `json:"customer_name"`
	Phone                string          `json:"phone"`
	Address              string          `json:"address"`
	OrderType            OrderType       `json:"order_type"`
	DeliveryTime         string          `json:"delivery_time"`
	TableID              *uint64         `json:"table_id"`
	TableName            string          `json:"table_name"`
	StatusID             uint64          `json:"status_id"`
	CourierID            *uint64         `json:"courier_id"`
	CompletedByCourierID *uint64         `json:"completed_by_courier_id"`
	AcceptedByWaiterID   *uint64         `json:"accepted_by_waiter_id"`
	CustomerChatID       int64           `json:"customer_chat_id"`
	CreatedAt            time.Time       `json:"created_at"`
}

func (o Order) IsDelivery() bool {
	return o.OrderType == OrderTypeDelivery
}

// LineItems разбирает плоский список позиций заказа.
func (o Order) LineItems() []LineItem {
	return ParseLineItems(o.Products)
}
