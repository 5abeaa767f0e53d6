package entities

// Capability - возможность роли. Все ветвления по ролям идут через таблицы ниже.
type Capability string

const (
	CapabilityManageOrders  Capability = "manage_orders"
	CapabilityBeAssigned    Capability = "be_assigned"
	CapabilityServeTables   Capability = "serve_tables"
	CapabilityKitchenOrders Capability = "kitchen_orders"
	CapabilityBarOrders     Capability = "bar_orders"
)

var AllCapabilities = []Capability{
	CapabilityManageOrders,
	CapabilityBeAssigned,
	CapabilityServeTables,
	CapabilityKitchenOrders,
	CapabilityBarOrders,
}

var roleCapabilities = map[Capability]func(Role) bool{
	CapabilityManageOrders:  func(r Role) bool { return r.CanManageOrders },
	CapabilityBeAssigned:    func(r Role) bool { return r.CanBeAssigned },
	CapabilityServeTables:   func(r Role) bool { return r.CanServeTables },
	CapabilityKitchenOrders: func(r Role) bool { return r.CanReceiveKitchenOrders },
	CapabilityBarOrders:     func(r Role) bool { return r.CanReceiveBarOrders },
}

var statusVisibility = map[Capability]func(OrderStatus) bool{
	CapabilityManageOrders:  func(s OrderStatus) bool { return s.VisibleToOperator },
	CapabilityBeAssigned:    func(s OrderStatus) bool { return s.VisibleToCourier },
	CapabilityServeTables:   func(s OrderStatus) bool { return s.VisibleToWaiter },
	CapabilityKitchenOrders: func(s OrderStatus) bool { return s.VisibleToChef },
	CapabilityBarOrders:     func(s OrderStatus) bool { return s.VisibleToBartender },
}

var areaCapabilities = map[PrepArea]Capability{
	AreaKitchen: CapabilityKitchenOrders,
	AreaBar:     CapabilityBarOrders,
}

var capabilityTitles = map[Capability]string{
	CapabilityManageOrders:  "Оператор",
	CapabilityBeAssigned:    "Кур'єр",
	CapabilityServeTables:   "Офіціант",
	CapabilityKitchenOrders: "Кухар",
	CapabilityBarOrders:     "Бармен",
}

func (c Capability) Valid() bool {
	_, ok := roleCapabilities[c]
	return ok
}

func (c Capability) Title() string {
	if title, ok := capabilityTitles[c]; ok {
		return title
	}
	return string(c)
}

// CapabilityForArea - какая возможность нужна, чтобы получать тикеты цеха.
func CapabilityForArea(a PrepArea) (Capability, bool) {
	c, ok := areaCapabilities[a]
	return c, ok
}

// CapabilityByTitle ищет возможность по подписи кнопки выбора роли.
func CapabilityByTitle(title string) (Capability, bool) {
	for c, t := range capabilityTitles {
		if t == title {
			return c, true
		}
	}
	return "", false
}
