package entities

// Role - роль сотрудника с флагами возможностей.
type Role struct {
	ID                      uint64 `json:"id"`
	Name                    string `json:"name"`
	CanManageOrders         bool   `json:"can_manage_orders"`
	CanBeAssigned           bool   `json:"can_be_assigned"`
	CanServeTables          bool   `json:"can_serve_tables"`
	CanReceiveKitchenOrders bool   `json:"can_receive_kitchen_orders"`
	CanReceiveBarOrders     bool   `json:"can_receive_bar_orders"`
}

func (r Role) Has(c Capability) bool {
	flag, ok := roleCapabilities[c]
	return ok && flag(r)
}

// Capabilities возвращает возможности роли в порядке AllCapabilities.
func (r Role) Capabilities() []Capability {
	var caps []Capability
	for _, c := range AllCapabilities {
		if r.Has(c) {
			caps = append(caps, c)
		}
	}
	return caps
}
