package dto

import (
	"restaurant-system/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateStatusDTO struct {
	Name                  string `json:"name" validate:"required,max=100"`
	Code                  string `json:"code" validate:"required,max=50"`
	NotifyCustomer        bool   `json:"notify_customer"`
	VisibleToOperator     bool   `json:"visible_to_operator"`
	VisibleToCourier      bool   `json:"visible_to_courier"`
	VisibleToWaiter       bool   `json:"visible_to_waiter"`
	VisibleToChef         bool   `json:"visible_to_chef"`
	VisibleToBartender    bool   `json:"visible_to_bartender"`
	RequiresKitchenNotify bool   `json:"requires_kitchen_notify"`
	IsCompletedStatus     bool   `json:"is_completed_status"`
	IsCancelledStatus     bool   `json:"is_cancelled_status"`
}

func (d CreateStatusDTO) ToEntity() entities.OrderStatus {
	return entities.OrderStatus{
		Name:                  d.Name,
		Code:                  d.Code,
		NotifyCustomer:        d.NotifyCustomer,
		VisibleToOperator:     d.VisibleToOperator,
		VisibleToCourier:      d.VisibleToCourier,
		VisibleToWaiter:       d.VisibleToWaiter,
		VisibleToChef:         d.VisibleToChef,
		VisibleToBartender:    d.VisibleToBartender,
		RequiresKitchenNotify: d.RequiresKitchenNotify,
		IsCompletedStatus:     d.IsCompletedStatus,
		IsCancelledStatus:     d.IsCancelledStatus,
	}
}

// UpdateStatusDTO - частичное обновление: неуказанные поля не трогаем.
type UpdateStatusDTO struct {
	Name                  null.String `json:"name" validate:"omitempty,max=100"`
	Code                  null.String `json:"code" validate:"omitempty,max=50"`
	NotifyCustomer        null.Bool   `json:"notify_customer"`
	VisibleToOperator     null.Bool   `json:"visible_to_operator"`
	VisibleToCourier      null.Bool   `json:"visible_to_courier"`
	VisibleToWaiter       null.Bool   `json:"visible_to_waiter"`
	VisibleToChef         null.Bool   `json:"visible_to_chef"`
	VisibleToBartender    null.Bool   `json:"visible_to_bartender"`
	RequiresKitchenNotify null.Bool   `json:"requires_kitchen_notify"`
	IsCompletedStatus     null.Bool   `json:"is_completed_status"`
	IsCancelledStatus     null.Bool   `json:"is_cancelled_status"`
}

func (d UpdateStatusDTO) Apply(s *entities.OrderStatus) {
	if d.Name.Valid {
		s.Name = d.Name.String
	}
	if d.Code.Valid {
		s.Code = d.Code.String
	}
	flags := []struct {
		value  null.Bool
		target *bool
	}{
		{d.NotifyCustomer, &s.NotifyCustomer},
		{d.VisibleToOperator, &s.VisibleToOperator},
		{d.VisibleToCourier, &s.VisibleToCourier},
		{d.VisibleToWaiter, &s.VisibleToWaiter},
		{d.VisibleToChef, &s.VisibleToChef},
		{d.VisibleToBartender, &s.VisibleToBartender},
		{d.RequiresKitchenNotify, &s.RequiresKitchenNotify},
		{d.IsCompletedStatus, &s.IsCompletedStatus},
		{d.IsCancelledStatus, &s.IsCancelledStatus},
	}
	for _, f := range flags {
		if f.value.Valid {
			*f.target = f.value.Bool
		}
	}
}
