package entities

type Employee struct {
	ID             uint64  `json:"id"`
	FullName       string  `json:"full_name"`
	Phone          string  `json:"phone"`
	RoleID         uint64  `json:"role_id"`
	Role           Role    `json:"role"`
	TelegramUserID int64   `json:"telegram_user_id"`
	IsOnShift      bool    `json:"is_on_shift"`
	CurrentOrderID *uint64 `json:"current_order_id"`
}

// Reachable - сотрудник на смене и привязан к Telegram, ему можно писать.
func (e Employee) Reachable() bool {
	return e.IsOnShift && e.TelegramUserID != 0
}
