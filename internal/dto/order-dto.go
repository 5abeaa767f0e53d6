package dto

import (
	"time"

	"restaurant-system/internal/entities"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

type OrderItemDTO struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}

// CreateWebOrderDTO - заказ с сайта: доставка или самовывоз.
type CreateWebOrderDTO struct {
	Items        []OrderItemDTO `json:"items" validate:"required,min=1,dive"`
	CustomerName string         `json:"customer_name" validate:"required,max=100"`
	Phone        string         `json:"phone" validate:"required,phone"`
	OrderType    string         `json:"order_type" validate:"required,order_type,ne=in_house"`
	Address      string         `json:"address" validate:"required_if=OrderType delivery,max=500"`
	DeliveryTime string         `json:"delivery_time" validate:"max=50"`

	// initData мини-приложения клиентского бота; chat id контроллер берёт только из них
	TelegramInitData string `json:"telegram_init_data" validate:"max=4096"`
	CustomerChatID   int64  `json:"-"`
}

// CreateTableOrderDTO - заказ из меню столика.
type CreateTableOrderDTO struct {
	Items []OrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

type ChangeStatusDTO struct {
	StatusID uint64 `json:"status_id" validate:"required"`
}

type AssignCourierDTO struct {
	CourierID uint64 `json:"courier_id" validate:"required"`
}

type OrderDTO struct {
	ID                   uint64          `json:"id"`
	Products             string          `json:"products"`
	TotalPrice           decimal.Decimal `json:"total_price"`
	CustomerName         string          `json:"customer_name"`
	Phone                string          `json:"phone"`
	Address              string          `json:"address"`
	OrderType            string          `json:"order_type"`
	DeliveryTime         string          `json:"delivery_time"`
	TableID              null.Uint64     `json:"table_id"`
	TableName            null.String     `json:"table_name"`
	StatusID             uint64          `json:"status_id"`
	CourierID            null.Uint64     `json:"courier_id"`
	CompletedByCourierID null.Uint64     `json:"completed_by_courier_id"`
	AcceptedByWaiterID   null.Uint64     `json:"accepted_by_waiter_id"`
	CreatedAt            time.Time       `json:"created_at"`
}

func NewOrderDTO(o entities.Order) OrderDTO {
	return OrderDTO{
		ID:                   o.ID,
		Products:             o.Products,
		TotalPrice:           o.TotalPrice,
		CustomerName:         o.CustomerName,
		Phone:                o.Phone,
		Address:              o.Address,
		OrderType:            string(o.OrderType),
		DeliveryTime:         o.DeliveryTime,
		TableID:              null.Uint64FromPtr(o.TableID),
		TableName:            null.NewString(o.TableName, o.TableName != ""),
		StatusID:             o.StatusID,
		CourierID:            null.Uint64FromPtr(o.CourierID),
		CompletedByCourierID: null.Uint64FromPtr(o.CompletedByCourierID),
		AcceptedByWaiterID:   null.Uint64FromPtr(o.AcceptedByWaiterID),
		CreatedAt:            o.CreatedAt,
	}
}

type OrderHistoryDTO struct {
	ID         uint64    `json:"id"`
	StatusID   uint64    `json:"status_id"`
	StatusName string    `json:"status_name"`
	ActorInfo  string    `json:"actor_info"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewOrderHistoryDTOs(items []entities.OrderStatusHistory) []OrderHistoryDTO {
	result := make([]OrderHistoryDTO, 0, len(items))
	for _, h := range items {
		result = append(result, OrderHistoryDTO{
			ID:         h.ID,
			StatusID:   h.StatusID,
			StatusName: h.StatusName,
			ActorInfo:  h.ActorInfo,
			CreatedAt:  h.CreatedAt,
		})
	}
	return result
}
