package dto

import (
	"restaurant-system/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateEmployeeDTO struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,phone"`
	RoleID   uint64 `json:"role_id" validate:"required"`
}

type SetShiftDTO struct {
	OnShift bool `json:"on_shift"`
}

type EmployeeDTO struct {
	ID             uint64      `json:"id"`
	FullName       string      `json:"full_name"`
	Phone          string      `json:"phone"`
	RoleID         uint64      `json:"role_id"`
	RoleName       string      `json:"role_name"`
	TelegramUserID null.Int64  `json:"telegram_user_id"`
	IsOnShift      bool        `json:"is_on_shift"`
	CurrentOrderID null.Uint64 `json:"current_order_id"`
}

func NewEmployeeDTO(e entities.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             e.ID,
		FullName:       e.FullName,
		Phone:          e.Phone,
		RoleID:         e.RoleID,
		RoleName:       e.Role.Name,
		TelegramUserID: null.NewInt64(e.TelegramUserID, e.TelegramUserID != 0),
		IsOnShift:      e.IsOnShift,
		CurrentOrderID: null.Uint64FromPtr(e.CurrentOrderID),
	}
}

func NewEmployeeDTOs(items []entities.Employee) []EmployeeDTO {
	result := make([]EmployeeDTO, 0, len(items))
	for _, e := range items {
		result = append(result, NewEmployeeDTO(e))
	}
	return result
}

type RoleDTO struct {
	ID           uint64                `json:"id"`
	Name         string                `json:"name"`
	Capabilities []entities.Capability `json:"capabilities"`
}

func NewRoleDTOs(roles []entities.Role) []RoleDTO {
	result := make([]RoleDTO, 0, len(roles))
	for _, r := range roles {
		caps := r.Capabilities()
		if caps == nil {
			caps = []entities.Capability{}
		}
		result = append(result, RoleDTO{ID: r.ID, Name: r.Name, Capabilities: caps})
	}
	return result
}
